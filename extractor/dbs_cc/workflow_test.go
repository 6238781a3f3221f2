package dbs_cc

import (
	"errors"
	"testing"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Classifier.CreditCardNumber = "4119-1100-2233-4455"
	return *cfg
}

func statementPages() [][]string {
	return [][]string{
		{
			"POSB everyday CARD NO.: 4119-1100-2233-4455",
			"STATEMENT DATE 15 Mar 2024",
			"PREVIOUS BALANCE",
			"NEW TRANSACTIONS JOHN TAN",
			"01 Mar",
			"NTUC FAIRPRICE",
			"45.20",
		},
		{
			"02 Mar",
			"BUS/MRT 12345",
			"3.10",
			"SUB-TOTAL: 48.30",
			"03 Mar",
			"NOT IN SECTION",
			"9.99",
		},
	}
}

func TestExtract(t *testing.T) {
	src := &common.StaticSource{Pages: statementPages()}

	statement, err := Extract("cc.pdf", src, testConfig(t))
	require.NoError(t, err)

	require.Len(t, statement.Transactions, 2)
	assert.Equal(t, "BUS/MRT 12345", statement.Transactions[1].Description)
	assert.Equal(t, 2024, statement.Transactions[1].Date.Year())
	assert.Equal(t, common.DBSCreditCard, statement.Type)
	assert.Equal(t, "48.3", statement.TotalDebit.String())
	assert.Equal(t, "4119-1100-2233-4455", statement.Identifier)
}

func TestExtract_NoStartMarker(t *testing.T) {
	src := &common.StaticSource{Pages: [][]string{{"STATEMENT DATE 15 Mar 2024", "01 Mar", "A", "1.00"}}}

	statement, err := Extract("cc.pdf", src, testConfig(t))
	require.NoError(t, err)
	assert.Empty(t, statement.Transactions)
}

func TestExtract_PartialSection(t *testing.T) {
	pages := statementPages()
	pages[1][2] = "3.1O"

	statement, err := Extract("cc.pdf", &common.StaticSource{Pages: pages}, testConfig(t))
	require.NoError(t, err)
	assert.Len(t, statement.Transactions, 1)
}

func TestExtract_MissingCardNumber(t *testing.T) {
	cfg := testConfig(t)
	cfg.Classifier.CreditCardNumber = ""

	_, err := Extract("cc.pdf", &common.StaticSource{Pages: statementPages()}, cfg)
	var cerr *common.ConfigError
	assert.True(t, errors.As(err, &cerr))
}
