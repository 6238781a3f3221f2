package dbs_paylah

import (
	"fmt"
	"strings"
	"time"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Rules are the literals and widths of the wallet grammar.
type Rules struct {
	ReferencePrefix       string
	ReferenceWidths       []config.ReferenceWidth
	DefaultReferenceWidth int
	Disclaimer            string
}

func NewRules(cfg config.Paylah) Rules {
	return Rules{
		ReferencePrefix:       cfg.ReferencePrefix,
		ReferenceWidths:       cfg.ReferenceWidths,
		DefaultReferenceWidth: cfg.DefaultReferenceWidth,
		Disclaimer:            cfg.Disclaimer,
	}
}

// ReferenceWidth is the width of a reference glued to its amount, chosen by
// the first configured prefix the reference starts with.
func (r Rules) ReferenceWidth(ref string) int {
	for _, w := range r.ReferenceWidths {
		if w.Prefix != "" && strings.HasPrefix(ref, w.Prefix) {
			return w.Width
		}
	}
	return r.DefaultReferenceWidth
}

// stripPrefix removes the reference prefix when the line starts with it.
func (r Rules) stripPrefix(text string) string {
	text = strings.TrimSpace(text)
	if r.ReferencePrefix != "" {
		text = strings.TrimPrefix(text, r.ReferencePrefix)
	}
	return strings.TrimSpace(text)
}

// ParseReferenceLine decodes "REF NO:. <reference><amount> <sign>". When the
// reference and amount are separated by a space the space splits them;
// otherwise the reference is cut at its configured width.
func (r Rules) ParseReferenceLine(line string) (string, decimal.Decimal, common.Sign, error) {
	body, sign, err := common.SplitSignToken(r.stripPrefix(line))
	if err != nil {
		return "", decimal.Zero, common.SignUnknown, err
	}

	var ref, amountText string
	if i := strings.LastIndex(body, " "); i >= 0 {
		ref, amountText = strings.TrimSpace(body[:i]), body[i+1:]
	} else {
		width := r.ReferenceWidth(body)
		if width <= 0 || len(body) <= width {
			return "", decimal.Zero, common.SignUnknown, fmt.Errorf("reference %q has no amount after %d characters", body, width)
		}
		ref, amountText = body[:width], body[width:]
	}

	amount, err := common.ParseAmount(amountText)
	if err != nil {
		return "", decimal.Zero, common.SignUnknown, fmt.Errorf("invalid amount %q: %w", amountText, err)
	}
	return ref, amount.Mul(sign.Multiplier()), sign, nil
}

type parseState int

const (
	awaitingDate parseState = iota
	awaitingReference
)

// pending holds the date half of a transaction until its reference arrives.
type pending struct {
	date        time.Time
	description string
	amount      decimal.Decimal
	sign        common.Sign
}

// ParseText decodes the text section of a wallet statement. The first line
// is the header and is skipped. Each transaction is a date line
// ("15 Jan Groceries") followed by a reference line carrying the amount.
func ParseText(section []string, sctx common.StatementContext, rules Rules) []common.Transaction {
	transactions := []common.Transaction{}
	if len(section) < 2 {
		return transactions
	}

	state := awaitingDate
	var tx pending

	for i, line := range section[1:] {
		switch state {
		case awaitingDate:
			date, rest, err := common.LeadingDate(line, sctx.Year())
			if err != nil {
				log.Debug().Str("source", sctx.Source).Int("line", i+1).Str("text", line).Msg("skipping non-date line")
				continue
			}
			tx = pending{date: date, description: strings.TrimSpace(rest)}
			state = awaitingReference

		case awaitingReference:
			state = awaitingDate
			ref, amount, sign, err := rules.ParseReferenceLine(line)
			if err != nil {
				log.Warn().Str("source", sctx.Source).
					Err(&common.ParseError{Line: i + 1, Text: line, Err: err}).
					Msg("abandoning transaction")
				continue
			}
			transactions = append(transactions, common.Transaction{
				Sequence:    len(transactions) + 1,
				Date:        tx.date,
				Description: tx.description,
				Sign:        sign,
				Amount:      amount,
				Reference:   ref,
				Source:      sctx.Source,
			})
		}
	}

	if state == awaitingReference {
		log.Debug().Str("source", sctx.Source).Str("description", tx.description).Msg("section ended before reference line")
	}
	return transactions
}

// ParseTable decodes the stitched transaction table of a wallet statement.
// A date row carries date, description and signed amount; the row after it,
// with a blank first cell, carries the reference.
func ParseTable(rows []common.Row, sctx common.StatementContext, rules Rules) []common.Transaction {
	transactions := []common.Transaction{}

	if rules.Disclaimer != "" {
		for _, row := range rows {
			if strings.Contains(row.Cell(1), rules.Disclaimer) {
				log.Warn().Str("source", sctx.Source).Msg("table holds only the wallet disclaimer")
				return transactions
			}
		}
	}

	state := awaitingDate
	var tx pending

	for i, row := range rows {
		first := row.Cell(0)

		if first == "" {
			if state != awaitingReference {
				continue
			}
			transactions = append(transactions, common.Transaction{
				Sequence:    len(transactions) + 1,
				Date:        tx.date,
				Description: tx.description,
				Sign:        tx.sign,
				Amount:      tx.amount,
				Reference:   rules.stripPrefix(row.Cell(1)),
				Source:      sctx.Source,
			})
			state = awaitingDate
			continue
		}

		date, err := common.ParseDayMonth(first, sctx.Year())
		if err != nil {
			log.Debug().Str("source", sctx.Source).Int("row", i+1).Str("cell", first).Msg("skipping non-date row")
			continue
		}
		if state == awaitingReference {
			log.Warn().Str("source", sctx.Source).Int("row", i+1).Str("description", tx.description).Msg("date row without reference, abandoning transaction")
		}

		amount, sign, err := common.SignedAmount(row.Cell(2))
		if err != nil {
			log.Warn().Str("source", sctx.Source).
				Err(&common.ParseError{Line: i + 1, Text: row.Cell(2), Err: err}).
				Msg("abandoning transaction")
			state = awaitingDate
			continue
		}

		tx = pending{date: date, description: row.Cell(1), amount: amount, sign: sign}
		state = awaitingReference
	}

	return transactions
}
