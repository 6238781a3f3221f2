package dbs_paylah

import (
	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/aqlanhadi/pbsm/extractor/section"
	"github.com/aqlanhadi/pbsm/logger"
	"github.com/rs/zerolog/log"
)

// minTableColumns is the width ParseTable indexes into.
const minTableColumns = 3

// ResolveContext checks the wallet number and finds the statement date, first
// in the header region of page one and then anywhere in its text.
func ResolveContext(name string, src common.Source, cfg config.Paylah) (common.StatementContext, error) {
	if cfg.WalletNumber == "" {
		return common.StatementContext{}, &common.ConfigError{Key: "paylah.wallet_number", Reason: "PAYLAH_WALLET_NUMBER is not set"}
	}
	if src.NumPages() == 0 {
		return common.StatementContext{}, &common.StructuralError{Page: -1, Reason: "document has no pages"}
	}

	sctx := common.StatementContext{Identifier: cfg.WalletNumber, Source: name}

	if len(cfg.HeaderArea) == 4 {
		rows, err := src.PageTable(0, common.GeometryFromPercent(cfg.HeaderArea, nil))
		if err != nil {
			log.Debug().Err(err).Str("source", name).Msg("header region unreadable")
		} else if len(rows) > 1 {
			if dt, ok := common.FindStatementDate(rows[1].Cell(0)); ok {
				sctx.StatementDate = dt
				return sctx, nil
			}
		}
	}

	lines, err := src.PageText(0)
	if err != nil {
		return common.StatementContext{}, err
	}
	dt, ok := common.FindStatementDate(lines...)
	if !ok {
		return common.StatementContext{}, &common.StructuralError{Page: 0, Reason: "no statement date found"}
	}
	sctx.StatementDate = dt
	return sctx, nil
}

// Extract parses a wallet statement with the configured method.
func Extract(name string, src common.Source, cfg config.Paylah) (common.Statement, error) {
	sctx, err := ResolveContext(name, src, cfg)
	if err != nil {
		return common.Statement{}, err
	}

	rules := NewRules(cfg)
	fileLog := logger.ForFile(log.Logger, name, string(common.DBSPaylah))

	var transactions []common.Transaction
	switch cfg.Method {
	case "table":
		result, err := section.Tables(src, section.TableOptions{
			FirstPage:    common.GeometryFromPercent(cfg.FirstPageArea, cfg.Columns),
			Continuation: common.GeometryFromPercent(cfg.ContinuationArea, cfg.Columns),
			EndMarker:    cfg.TableEnd,
			MinColumns:   minTableColumns,
		})
		if err != nil {
			return common.Statement{}, err
		}
		if !result.Terminated {
			fileLog.Warn().Str("marker", cfg.TableEnd).Msg("no table terminator found, keeping every row")
		}
		transactions = ParseTable(result.Rows, sctx, rules)
	default:
		pages, err := common.AllPageText(src)
		if err != nil {
			return common.Statement{}, err
		}
		lines := section.Text(pages, cfg.StarterLine(), section.TextOptions{
			TransactionsStart: cfg.TransactionsStart,
			TransactionsEnd:   cfg.TransactionsEnd,
		})
		if lines == nil {
			fileLog.Warn().Str("starter", cfg.StarterLine()).Msg("wallet starter line not found")
		}
		transactions = ParseText(lines, sctx, rules)
	}

	date := sctx.StatementDate
	statement := common.Statement{
		Source:        name,
		Type:          common.DBSPaylah,
		StatementDate: &date,
		Identifier:    sctx.Identifier,
		Transactions:  transactions,
	}
	statement.Summarize()

	if len(transactions) == 0 {
		fileLog.Warn().Msg("empty transactions")
	}
	fileLog.Debug().Int("count", len(transactions)).Str("nett", statement.Nett.String()).Msg("parsed")

	return statement, nil
}
