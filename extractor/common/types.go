package common

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatementType identifies which transaction grammar applies to a file.
type StatementType string

const (
	Unknown       StatementType = "UnknownStatement"
	DBSCashback   StatementType = "DBSCashbackStatement"
	DBSCreditCard StatementType = "DBSCreditCardStatement"
	DBSPaylah     StatementType = "DBSPaylahStatement"
	DBSAccount    StatementType = "DBSAccountsStatement"
	UOBCreditCard StatementType = "UOBCreditCardStatement"
	UOBAccount    StatementType = "UOBAccountsStatement"
)

var statementTypeAliases = map[string]StatementType{
	"paylah":      DBSPaylah,
	"cc":          DBSCreditCard,
	"cashback":    DBSCashback,
	"account":     DBSAccount,
	"uob_cc":      UOBCreditCard,
	"uob_account": UOBAccount,
}

// StatementTypes lists every known type except Unknown.
var StatementTypes = []StatementType{DBSCashback, DBSCreditCard, DBSPaylah, DBSAccount, UOBCreditCard, UOBAccount}

// ParseStatementType accepts either the full type name or one of the short
// aliases used on the command line. Anything else yields Unknown.
func ParseStatementType(s string) StatementType {
	s = strings.TrimSpace(s)
	if t, ok := statementTypeAliases[strings.ToLower(s)]; ok {
		return t
	}
	for _, t := range StatementTypes {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return Unknown
}

// Sign is the resolved credit/debit direction of a transaction.
type Sign string

const (
	SignCredit  Sign = "credit"
	SignDebit   Sign = "debit"
	SignUnknown Sign = "unknown"
)

// SignFromToken maps the two-letter suffix printed after an amount.
func SignFromToken(token string) Sign {
	switch strings.TrimSpace(token) {
	case "DB":
		return SignDebit
	case "CR":
		return SignCredit
	}
	return SignUnknown
}

// Multiplier returns +1 for credits, -1 for debits and 0 when the sign could
// not be resolved.
func (s Sign) Multiplier() decimal.Decimal {
	switch s {
	case SignCredit:
		return decimal.NewFromInt(1)
	case SignDebit:
		return decimal.NewFromInt(-1)
	}
	return decimal.Zero
}

// Transaction is one parsed statement line item.
//
// Wallet amounts carry their sign (debits are negative). Credit-card
// statements print no sign token, so card records are SignDebit with a
// positive Amount; use Sign rather than the amount's sign to tell
// directions apart across statement types.
type Transaction struct {
	Sequence    int             `json:"sequence"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Sign        Sign            `json:"sign"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"ref"`
	Source      string          `json:"source"`
}

// StatementContext is resolved once per file before parsing starts.
type StatementContext struct {
	StatementDate time.Time
	Identifier    string
	Source        string
}

func (c StatementContext) Year() int {
	return c.StatementDate.Year()
}

type Statement struct {
	Source        string          `json:"source"`
	Type          StatementType   `json:"statement_type"`
	StatementDate *time.Time      `json:"statement_date,omitempty"`
	Identifier    string          `json:"identifier,omitempty"`
	Transactions  []Transaction   `json:"transactions"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	Nett          decimal.Decimal `json:"nett"`
}

// Summarize fills in the totals from the statement's transactions. Totals
// keep the amounts as recorded, so TotalDebit is negative for wallets and
// positive for credit cards.
func (s *Statement) Summarize() {
	s.TotalCredit = decimal.Zero
	s.TotalDebit = decimal.Zero
	for _, tx := range s.Transactions {
		switch tx.Sign {
		case SignCredit:
			s.TotalCredit = s.TotalCredit.Add(tx.Amount)
		case SignDebit:
			s.TotalDebit = s.TotalDebit.Add(tx.Amount)
		}
	}
	s.Nett = s.TotalCredit.Add(s.TotalDebit)
}

// Row is one row of a page table; each element is a cell.
type Row []string

// Cell returns the trimmed cell at i, or "" when the row is narrower.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Geometry is a page region given as fractions of the page size, plus
// optional column boundaries as fractions of the page width.
type Geometry struct {
	Top     float64
	Left    float64
	Bottom  float64
	Right   float64
	Columns []float64
}

// GeometryFromPercent converts an area in percent ([top, left, bottom,
// right]) and column boundaries in percent into a Geometry.
func GeometryFromPercent(area []float64, columns []float64) Geometry {
	g := Geometry{Top: 0, Left: 0, Bottom: 1, Right: 1}
	if len(area) == 4 {
		g.Top, g.Left, g.Bottom, g.Right = area[0]/100, area[1]/100, area[2]/100, area[3]/100
	}
	for _, c := range columns {
		g.Columns = append(g.Columns, c/100)
	}
	return g
}
