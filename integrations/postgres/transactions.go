package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/jackc/pgx/v5"
)

var spaceRegex = regexp.MustCompile(`\s+`)

// normalizeDescription collapses whitespace and uppercases; the result is
// stored as match_key.
func normalizeDescription(description string) string {
	return strings.ToUpper(strings.TrimSpace(spaceRegex.ReplaceAllString(description, " ")))
}

const insertTransaction = `
	INSERT INTO transactions (
		statement_id, sequence, date, description, match_key, sign, amount, reference, source
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// CreateTransactions inserts a statement's transactions in one batch.
func (db *DB) CreateTransactions(ctx context.Context, statementID string, transactions []common.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tx := range transactions {
		batch.Queue(insertTransaction,
			statementID, tx.Sequence, tx.Date, tx.Description, normalizeDescription(tx.Description),
			string(tx.Sign), tx.Amount, tx.Reference, tx.Source,
		)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for _, tx := range transactions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", tx.Sequence, err)
		}
	}
	return nil
}
