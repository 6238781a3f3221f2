package dbs_cc

import (
	"errors"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/aqlanhadi/pbsm/extractor/section"
	"github.com/aqlanhadi/pbsm/logger"
	"github.com/rs/zerolog/log"
)

// ResolveContext checks the configured card number and reads the statement
// date from page one.
func ResolveContext(name string, src common.Source, cardNumber string) (common.StatementContext, error) {
	if cardNumber == "" {
		return common.StatementContext{}, &common.ConfigError{Key: "classifier.credit_card_number", Reason: "POSB_CREDIT_CARD_NUMBER is not set"}
	}
	if src.NumPages() == 0 {
		return common.StatementContext{}, &common.StructuralError{Page: -1, Reason: "document has no pages"}
	}

	lines, err := src.PageText(0)
	if err != nil {
		return common.StatementContext{}, err
	}
	dt, ok := common.FindStatementDate(lines...)
	if !ok {
		return common.StatementContext{}, &common.StructuralError{Page: 0, Reason: "no statement date found"}
	}

	return common.StatementContext{StatementDate: dt, Identifier: cardNumber, Source: name}, nil
}

func Extract(name string, src common.Source, cfg config.Config) (common.Statement, error) {
	sctx, err := ResolveContext(name, src, cfg.Classifier.CreditCardNumber)
	if err != nil {
		return common.Statement{}, err
	}

	pages, err := common.AllPageText(src)
	if err != nil {
		return common.Statement{}, err
	}

	fileLog := logger.ForFile(log.Logger, name, string(common.DBSCreditCard))

	lines := section.Bounded(section.Flatten(pages), cfg.CreditCard.TransactionsStart, cfg.CreditCard.TransactionsEnd)
	transactions, err := Parse(lines, sctx)
	var perr *common.ParseError
	switch {
	case errors.As(err, &perr):
		fileLog.Warn().Err(perr).Int("kept", len(transactions)).Msg("transaction loop stopped early")
	case err != nil:
		return common.Statement{}, err
	}

	date := sctx.StatementDate
	statement := common.Statement{
		Source:        name,
		Type:          common.DBSCreditCard,
		StatementDate: &date,
		Identifier:    sctx.Identifier,
		Transactions:  transactions,
	}
	statement.Summarize()

	if len(transactions) == 0 {
		fileLog.Warn().Msg("empty transactions")
	}

	return statement, nil
}
