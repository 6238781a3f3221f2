package dbs_cc

import (
	"fmt"
	"strings"

	"github.com/aqlanhadi/pbsm/extractor/common"
)

// linesPerTransaction is the date, description and amount triple.
const linesPerTransaction = 3

// Parse decodes a bounded credit-card section. Amounts carry no sign token
// and are recorded as positive debits. The first bad date or amount stops
// the loop; records before it are returned together with a *common.ParseError.
func Parse(section []string, sctx common.StatementContext) ([]common.Transaction, error) {
	transactions := []common.Transaction{}

	for i := 0; i < len(section); i += linesPerTransaction {
		date, _, err := common.LeadingDate(section[i], sctx.Year())
		if err != nil {
			return transactions, &common.ParseError{Line: i + 1, Text: section[i], Err: fmt.Errorf("invalid date: %w", err)}
		}
		if i+2 >= len(section) {
			return transactions, &common.ParseError{Line: i + 1, Text: section[i], Err: fmt.Errorf("incomplete transaction")}
		}

		amount, err := common.ParseAmount(section[i+2])
		if err != nil {
			return transactions, &common.ParseError{Line: i + 3, Text: section[i+2], Err: fmt.Errorf("invalid amount: %w", err)}
		}

		transactions = append(transactions, common.Transaction{
			Sequence:    len(transactions) + 1,
			Date:        date,
			Description: strings.TrimSpace(section[i+1]),
			Sign:        common.SignDebit,
			Amount:      amount,
			Source:      sctx.Source,
		})
	}

	return transactions, nil
}
