package postgres

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	BatchID   uuid.UUID
	Processed int
	Skipped   int
	Failed    int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Force         bool                 // Replace statements that already exist
	StatementType common.StatementType // Override auto-detection
	Config        config.Config
}

// Outcome of importing one file
type Outcome int

const (
	Imported Outcome = iota
	Skipped
	Failed
)

// importable reports why a parsed statement cannot be stored, if it can't.
func importable(statement common.Statement) error {
	if statement.Identifier == "" {
		return fmt.Errorf("no account identifier")
	}
	if statement.StatementDate == nil {
		return fmt.Errorf("no statement date")
	}
	return nil
}

// ImportFile extracts one PDF and stores its statement under batch.
func (db *DB) ImportFile(ctx context.Context, filePath string, batch uuid.UUID, opts ImportOptions) (Outcome, error) {
	fileName := filepath.Base(filePath)
	fileLog := log.With().Str("source", fileName).Str("batch", batch.String()).Logger()

	statement, err := extractor.ProcessFile(filePath, opts.Config, opts.StatementType)
	if extractor.Skipped(err) {
		fileLog.Info().Err(err).Msg("skip")
		return Skipped, nil
	}
	if err != nil {
		return Failed, err
	}
	if err := importable(statement); err != nil {
		return Failed, fmt.Errorf("%s: %w", fileName, err)
	}

	accountID, err := db.GetOrCreateAccount(ctx, statement.Identifier, statement.Type)
	if err != nil {
		return Failed, fmt.Errorf("%s: account error: %w", fileName, err)
	}

	exists, existingID, err := db.StatementExists(ctx, accountID, *statement.StatementDate)
	if err != nil {
		return Failed, fmt.Errorf("%s: check error: %w", fileName, err)
	}
	if exists && !opts.Force {
		fileLog.Info().Msg("skip, already imported")
		return Skipped, nil
	}
	if exists {
		if err := db.DeleteStatement(ctx, existingID); err != nil {
			return Failed, fmt.Errorf("%s: delete error: %w", fileName, err)
		}
	}

	statementID, err := db.CreateStatement(ctx, accountID, batch, statement)
	if err != nil {
		return Failed, fmt.Errorf("%s: statement error: %w", fileName, err)
	}

	if err := db.CreateTransactions(ctx, statementID, statement.Transactions); err != nil {
		// Rollback by deleting the statement
		_ = db.DeleteStatement(ctx, statementID)
		return Failed, fmt.Errorf("%s: transactions error: %w", fileName, err)
	}

	fileLog.Info().Int("transactions", len(statement.Transactions)).Msg("imported")
	return Imported, nil
}

// Import handles both file and directory imports. Every statement stored by
// one call shares a fresh batch id.
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	files, err := extractor.PDFFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	result := &ImportResult{BatchID: uuid.New()}
	log.Info().Str("path", path).Int("files", len(files)).Str("batch", result.BatchID.String()).Msg("importing")

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		o, err := db.ImportFile(ctx, filePath, result.BatchID, opts)
		switch o {
		case Imported:
			result.Processed++
		case Skipped:
			result.Skipped++
		case Failed:
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			log.Error().Err(err).Str("source", filepath.Base(filePath)).Msg("import failed")
		}
	}

	return result, nil
}
