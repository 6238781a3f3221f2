package extractor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/aqlanhadi/pbsm/extractor/dbs_cc"
	"github.com/aqlanhadi/pbsm/extractor/dbs_paylah"
	"github.com/aqlanhadi/pbsm/logger"
	"github.com/rs/zerolog/log"
)

var (
	// ErrUnknownStatement means no classifier rule matched; the file is skipped.
	ErrUnknownStatement = errors.New("unknown statement type")
	// ErrNotImplemented means the type is recognised but has no grammar yet.
	ErrNotImplemented = errors.New("statement type not implemented")
)

// FileError records which file and statement type were active when
// processing failed.
type FileError struct {
	Source string
	Type   common.StatementType
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Source, e.Type, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Skipped reports whether err only signals a file without a grammar.
func Skipped(err error) bool {
	return errors.Is(err, ErrUnknownStatement) || errors.Is(err, ErrNotImplemented)
}

// Result is the outcome of one file of a batch.
type Result struct {
	Path      string
	Statement common.Statement
	Err       error
}

// ProcessSource classifies src, unless override names a type, and parses it
// with that type's grammar. Errors are returned as *FileError.
func ProcessSource(name string, src common.Source, cfg config.Config, override common.StatementType) (common.Statement, error) {
	statementType := override
	if statementType == "" || statementType == common.Unknown {
		var err error
		statementType, err = ClassifySource(name, src, cfg.Classifier)
		if err != nil {
			return common.Statement{Source: name, Type: common.Unknown}, &FileError{Source: name, Type: common.Unknown, Err: err}
		}
	}

	fileLog := logger.ForFile(log.Logger, name, string(statementType))
	fileLog.Debug().Msg("classified")

	var (
		statement common.Statement
		err       error
	)
	switch statementType {
	case common.DBSPaylah:
		statement, err = dbs_paylah.Extract(name, src, cfg.Paylah)
	case common.DBSCreditCard:
		statement, err = dbs_cc.Extract(name, src, cfg)
	case common.Unknown:
		err = ErrUnknownStatement
	default:
		err = ErrNotImplemented
	}

	if err != nil {
		return common.Statement{Source: name, Type: statementType}, &FileError{Source: name, Type: statementType, Err: err}
	}
	return statement, nil
}

// ProcessReader reads a whole PDF from reader and processes it under name.
func ProcessReader(reader io.Reader, name string, cfg config.Config, override common.StatementType) (common.Statement, error) {
	src, err := common.NewPDFSource(reader)
	if err != nil {
		return common.Statement{Source: name}, &FileError{Source: name, Type: override, Err: fmt.Errorf("error opening pdf: %w", err)}
	}
	return ProcessSource(name, src, cfg, override)
}

func ProcessFile(path string, cfg config.Config, override common.StatementType) (common.Statement, error) {
	name := filepath.Base(path)
	src, err := common.OpenPDF(path)
	if err != nil {
		return common.Statement{Source: name}, &FileError{Source: name, Type: override, Err: fmt.Errorf("error opening pdf: %w", err)}
	}
	return ProcessSource(name, src, cfg, override)
}

// PDFFiles lists path itself, or the .pdf files directly inside it when it
// is a directory, in name order.
func PDFFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

// ExecuteAgainstPath processes a file, or every PDF in a directory, one at a
// time. A failing file is logged and does not stop the batch.
func ExecuteAgainstPath(path string, cfg config.Config, override common.StatementType) (*Table, []Result, error) {
	files, err := PDFFiles(path)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("path", path).Int("files", len(files)).Msg("scanning")

	table := NewTable()
	results := make([]Result, 0, len(files))
	for _, file := range files {
		statement, err := ProcessFile(file, cfg, override)
		results = append(results, Result{Path: file, Statement: statement, Err: err})

		fileLog := logger.ForFile(log.Logger, statement.Source, string(statement.Type))
		switch {
		case err == nil:
			table.Append(statement)
			fileLog.Info().Int("transactions", len(statement.Transactions)).Msg("extracted")
		case Skipped(err):
			fileLog.Warn().Err(err).Msg("skipping")
		default:
			fileLog.Error().Err(err).Msg("failed")
		}
	}

	return table, results, nil
}

// CreateFinalOutput shapes a statement for JSON output. transactionOnly
// yields just the records; statementOnly drops them.
func CreateFinalOutput(statement common.Statement, transactionOnly, statementOnly bool) interface{} {
	if transactionOnly {
		return statement.Transactions
	}

	output := map[string]interface{}{
		"source":         statement.Source,
		"statement_type": statement.Type,
		"total_credit":   statement.TotalCredit,
		"total_debit":    statement.TotalDebit,
		"nett":           statement.Nett,
	}
	if statement.StatementDate != nil {
		output["statement_date"] = statement.StatementDate.Format("2006-01-02")
	}
	if statement.Identifier != "" {
		output["identifier"] = statement.Identifier
	}
	if !statementOnly {
		output["transactions"] = statement.Transactions
	}
	return output
}
