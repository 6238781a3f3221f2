package dbs_paylah

import (
	"testing"
	"time"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	ReferencePrefix:       "REF NO:.",
	ReferenceWidths:       []config.ReferenceWidth{{Prefix: "MB", Width: 19}},
	DefaultReferenceWidth: 23,
	Disclaimer:            "INFORMATION ON YOUR DBS PAYLAH!",
}

func testContext(year int) common.StatementContext {
	return common.StatementContext{
		StatementDate: time.Date(year, 1, 31, 0, 0, 0, 0, time.Local),
		Identifier:    "88881234",
		Source:        "PDF文档1.pdf",
	}
}

func TestParseReferenceLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		ref    string
		amount string
		sign   common.Sign
	}{
		{"mb glued credit", "REF NO:. MB1234567890123456712.50 CR", "MB12345678901234567", "12.5", common.SignCredit},
		{"mb glued debit", "REF NO:. MB1234567890123456745.00 DB", "MB12345678901234567", "-45", common.SignDebit},
		{"other glued credit", "REF NO:. 016899999903291033904924.50 CR", "01689999990329103390492", "4.5", common.SignCredit},
		{"other glued debit", "REF NO:. 01689999990329103390492200.00 DB", "01689999990329103390492", "-200", common.SignDebit},
		{"ips glued debit", "REF NO:. IPS69330326152174285000030.00 DB", "IPS69330326152174285000", "-30", common.SignDebit},
		{"spaced reference", "REF NO:. MB1234567890123456789 45.00 DB", "MB1234567890123456789", "-45", common.SignDebit},
		{"unknown sign", "REF NO:. MB1234567890123456710.00 XX", "MB12345678901234567", "0", common.SignUnknown},
		{"without prefix", "MB12345678901234567 1,200.00 CR", "MB12345678901234567", "1200", common.SignCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, amount, sign, err := testRules.ParseReferenceLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.ref, ref)
			assert.Equal(t, tt.amount, amount.String())
			assert.Equal(t, tt.sign, sign)
		})
	}
}

func TestParseReferenceLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"REF NO:.",
		"REF NO:. MB12345 DB",
		"REF NO:. MB12345678901234567abc DB",
		"GRAB FOOD",
	} {
		_, _, _, err := testRules.ParseReferenceLine(line)
		assert.Error(t, err, line)
	}
}

func TestStripPrefix_OnlyAtStart(t *testing.T) {
	assert.Equal(t, "MB12345678901234567", testRules.stripPrefix("  REF NO:. MB12345678901234567 "))
	assert.Equal(t, "MB12345678901234567", testRules.stripPrefix("MB12345678901234567"))
	assert.Equal(t, "TOP UP REF NO:. 123", testRules.stripPrefix("TOP UP REF NO:. 123"))
	assert.Equal(t, "REF NO:. 123", Rules{}.stripPrefix(" REF NO:. 123"))
}

func TestReferenceWidth(t *testing.T) {
	assert.Equal(t, 19, testRules.ReferenceWidth("MB0000"))
	assert.Equal(t, 23, testRules.ReferenceWidth("0168"))
	assert.Equal(t, 23, testRules.ReferenceWidth(""))
}

func TestParseText_SingleTransaction(t *testing.T) {
	section := []string{
		"31 Jan 2024",
		"15 Jan Groceries",
		"REF NO:. MB1234567890123456789 45.00 DB",
	}

	txs := ParseText(section, testContext(2024), testRules)

	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, 1, tx.Sequence)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), tx.Date)
	assert.Equal(t, "Groceries", tx.Description)
	assert.Equal(t, "-45", tx.Amount.String())
	assert.Equal(t, common.SignDebit, tx.Sign)
	assert.Equal(t, "MB1234567890123456789", tx.Reference)
	assert.Equal(t, "PDF文档1.pdf", tx.Source)
}

func TestParseText_UsesStatementYear(t *testing.T) {
	section := []string{"", "29 Feb TOP UP", "REF NO:. 01689999990329103390492200.00 CR"}

	txs := ParseText(section, testContext(2020), testRules)

	require.Len(t, txs, 1)
	assert.Equal(t, 2020, txs[0].Date.Year())
	assert.Equal(t, time.February, txs[0].Date.Month())
}

func TestParseText_SkipsAndAbandons(t *testing.T) {
	section := []string{
		"header",
		"Page 2 of 3",
		"15 Jan Lunch",
		"garbage",
		"16 Jan Top Up",
		"REF NO:. 01689999990329103390492200.00 CR",
		"17 Jan Coffee",
		"REF NO:. MB1234567890123456710.00 XX",
		"18 Jan Dangling",
	}

	txs := ParseText(section, testContext(2024), testRules)

	require.Len(t, txs, 2)
	assert.Equal(t, "Top Up", txs[0].Description)
	assert.Equal(t, "200", txs[0].Amount.String())
	assert.Equal(t, common.SignCredit, txs[0].Sign)
	assert.Equal(t, 2, txs[1].Sequence)
	assert.Equal(t, common.SignUnknown, txs[1].Sign)
	assert.True(t, txs[1].Amount.IsZero())
}

func TestParseText_HeaderOnly(t *testing.T) {
	txs := ParseText([]string{"header"}, testContext(2024), testRules)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)

	assert.Empty(t, ParseText(nil, testContext(2024), testRules))
}

func row(cells ...string) common.Row { return common.Row(cells) }

func TestParseTable_Pairs(t *testing.T) {
	rows := []common.Row{
		row("Date", "Description", "Amount"),
		row("15 Jan", "GRAB FOOD", "45.00 DB"),
		row("", "REF NO:. MB1234567890123456789", ""),
		row("16 Jan", "TOP UP", "1,100.00 CR"),
		row("", "REF NO:.01689999990329103390492", ""),
		row("17 Jan", "ODD", "3.00 ZZ"),
		row("", "REF NO:. X1", ""),
	}

	txs := ParseTable(rows, testContext(2024), testRules)

	require.Len(t, txs, 3)
	assert.Equal(t, "GRAB FOOD", txs[0].Description)
	assert.Equal(t, "-45", txs[0].Amount.String())
	assert.Equal(t, "MB1234567890123456789", txs[0].Reference)
	assert.Equal(t, "1100", txs[1].Amount.String())
	assert.Equal(t, "01689999990329103390492", txs[1].Reference)
	assert.Equal(t, common.SignUnknown, txs[2].Sign)
	assert.True(t, txs[2].Amount.IsZero())
	assert.Equal(t, 3, txs[2].Sequence)
}

func TestParseTable_NewDateAbandonsPending(t *testing.T) {
	rows := []common.Row{
		row("15 Jan", "A", "1.00 DB"),
		row("16 Jan", "B", "2.00 CR"),
		row("", "REF NO:. X1", ""),
		row("", "REF NO:. ORPHAN", ""),
	}

	txs := ParseTable(rows, testContext(2024), testRules)

	require.Len(t, txs, 1)
	assert.Equal(t, "B", txs[0].Description)
	assert.Equal(t, "X1", txs[0].Reference)
}

func TestParseTable_BadAmount(t *testing.T) {
	rows := []common.Row{
		row("15 Jan", "A", "abc"),
		row("", "REF NO:. X1", ""),
	}
	assert.Empty(t, ParseTable(rows, testContext(2024), testRules))
}

func TestParseTable_Disclaimer(t *testing.T) {
	rows := []common.Row{
		row("15 Jan", "A", "1.00 DB"),
		row("", "REF NO:. X1", ""),
		row("", "IMPORTANT INFORMATION ON YOUR DBS PAYLAH! ACCOUNT", ""),
	}

	txs := ParseTable(rows, testContext(2024), testRules)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}
