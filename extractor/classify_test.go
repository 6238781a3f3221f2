package extractor

import (
	"strings"
	"testing"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierConfig(t *testing.T) config.Classifier {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Classifier.CreditCardNumber = "4119-1100-2233-4455"
	return cfg.Classifier
}

func TestClassify(t *testing.T) {
	cfg := classifierConfig(t)

	tests := []struct {
		name     string
		filename string
		text     string
		want     common.StatementType
	}{
		{"wallet filename", "PDF文档20240131.pdf", "", common.DBSPaylah},
		{"wallet filename in directory", "/tmp/in/PDF文档.pdf", "POSB Cashback Bonus Statement", common.DBSPaylah},
		{"cashback", "a.pdf", "POSB Cashback Bonus Statement", common.DBSCashback},
		{"cashback beats wallet", "a.pdf", "PayLah! ... POSB Cashback Bonus Statement", common.DBSCashback},
		{"cashback regardless of order", "a.pdf", "POSB Cashback Bonus Statement PayLah!", common.DBSCashback},
		{"credit card", "a.pdf", "POSB everyday CARD NO.: 4119-1100-2233-4455", common.DBSCreditCard},
		{"other card", "a.pdf", "POSB everyday CARD NO.: 9999-0000-0000-0000", common.Unknown},
		{"accounts", "a.pdf", "Current and Savings Account", common.DBSAccount},
		{"wallet content", "a.pdf", "DBS PayLah! Statement", common.DBSPaylah},
		{"nothing", "a.pdf", "Hello", common.Unknown},
		{"glob needs pdf suffix", "PDF文档1.txt", "", common.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.filename, tt.text, cfg))
		})
	}
}

func TestClassify_CardNumberNotConfigured(t *testing.T) {
	cfg := classifierConfig(t)
	cfg.CreditCardNumber = ""

	got := Classify("a.pdf", "POSB everyday CARD NO.: 4119-1100-2233-4455 PayLah!", cfg)
	assert.Equal(t, common.DBSPaylah, got)
}

func TestClassify_OnlyPrefixIsSearched(t *testing.T) {
	cfg := classifierConfig(t)
	text := strings.Repeat("文", 1000) + "POSB Cashback Bonus Statement"

	assert.Equal(t, common.Unknown, Classify("a.pdf", text, cfg))

	cfg.PrefixLength = 2000
	assert.Equal(t, common.DBSCashback, Classify("a.pdf", text, cfg))
}

func TestClassifySource(t *testing.T) {
	cfg := classifierConfig(t)

	got, err := ClassifySource("a.pdf", &common.StaticSource{Pages: [][]string{{"Current and", "Savings"}, {"PayLah!"}}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, common.Unknown, got)

	got, err = ClassifySource("a.pdf", &common.StaticSource{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, common.Unknown, got)
}
