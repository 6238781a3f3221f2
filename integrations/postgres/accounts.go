package postgres

import (
	"context"
	"fmt"

	"github.com/aqlanhadi/pbsm/extractor/common"
)

// GetOrCreateAccount returns the id of the account holding identifier,
// creating it on first sight.
func (db *DB) GetOrCreateAccount(ctx context.Context, identifier string, statementType common.StatementType) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO accounts (identifier, statement_type)
		VALUES ($1, $2)
		ON CONFLICT (identifier) DO UPDATE
		SET statement_type = EXCLUDED.statement_type, updated_at = NOW()
		RETURNING id
	`, identifier, string(statementType)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert account: %w", err)
	}
	return id, nil
}
