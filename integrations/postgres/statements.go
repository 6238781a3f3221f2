package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StatementExists checks if a statement already exists using natural key
func (db *DB) StatementExists(ctx context.Context, accountID string, statementDate time.Time) (bool, string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM statements
		WHERE account_id = $1 AND statement_date = $2
	`, accountID, statementDate).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("failed to check statement: %w", err)
	}
	return true, id, nil
}

// CreateStatement inserts a new statement tagged with the import batch.
func (db *DB) CreateStatement(ctx context.Context, accountID string, batch uuid.UUID, stmt common.Statement) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO statements (
			account_id, source, statement_type, statement_date,
			total_credit, total_debit, nett, import_batch
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		accountID, stmt.Source, string(stmt.Type), stmt.StatementDate,
		stmt.TotalCredit, stmt.TotalDebit, stmt.Nett, batch.String(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create statement: %w", err)
	}
	return id, nil
}

// DeleteStatement removes a statement and its transactions (cascade)
func (db *DB) DeleteStatement(ctx context.Context, statementID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM statements WHERE id = $1`, statementID)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	return nil
}
