package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- One row per wallet or card
CREATE TABLE IF NOT EXISTS accounts (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    identifier VARCHAR(50) NOT NULL,
    statement_type VARCHAR(50) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(identifier)
);

-- Statements table with natural key (account_id, statement_date)
CREATE TABLE IF NOT EXISTS statements (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    source VARCHAR(255) NOT NULL,
    statement_type VARCHAR(50) NOT NULL,
    statement_date DATE NOT NULL,
    total_credit NUMERIC(18,2) NOT NULL,
    total_debit NUMERIC(18,2) NOT NULL,
    nett NUMERIC(18,2) NOT NULL,
    import_batch UUID NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(account_id, statement_date)
);

CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    statement_id UUID NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
    sequence INTEGER NOT NULL,
    date DATE NOT NULL,
    description TEXT NOT NULL,
    match_key TEXT NOT NULL,
    sign VARCHAR(10) NOT NULL,
    amount NUMERIC(18,2) NOT NULL,
    reference VARCHAR(255) DEFAULT '',
    source VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(statement_id, sequence)
);

CREATE INDEX IF NOT EXISTS idx_statements_account_id ON statements(account_id);
CREATE INDEX IF NOT EXISTS idx_statements_date ON statements(statement_date);
CREATE INDEX IF NOT EXISTS idx_statements_import_batch ON statements(import_batch);
CREATE INDEX IF NOT EXISTS idx_transactions_statement_id ON transactions(statement_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);

-- Wallet references are unique within a statement
CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_unique_reference
ON transactions(statement_id, reference) WHERE reference != '';
`

// EnsureSchema creates tables if they don't exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
