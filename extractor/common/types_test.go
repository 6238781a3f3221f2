package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_SignConventions(t *testing.T) {
	wallet := Statement{Transactions: []Transaction{
		{Sign: SignDebit, Amount: decimal.RequireFromString("-45.00")},
		{Sign: SignCredit, Amount: decimal.RequireFromString("100.00")},
		{Sign: SignUnknown, Amount: decimal.Zero},
	}}
	wallet.Summarize()
	assert.Equal(t, "-45", wallet.TotalDebit.String())
	assert.Equal(t, "100", wallet.TotalCredit.String())
	assert.Equal(t, "55", wallet.Nett.String())

	card := Statement{Transactions: []Transaction{
		{Sign: SignDebit, Amount: decimal.RequireFromString("12.30")},
		{Sign: SignDebit, Amount: decimal.RequireFromString("36.00")},
	}}
	card.Summarize()
	assert.Equal(t, "48.3", card.TotalDebit.String())
	assert.True(t, card.TotalCredit.IsZero())
	assert.Equal(t, "48.3", card.Nett.String())
}

func TestSignFromToken(t *testing.T) {
	assert.Equal(t, SignDebit, SignFromToken("DB"))
	assert.Equal(t, SignCredit, SignFromToken(" CR "))
	assert.Equal(t, SignUnknown, SignFromToken("db"))
	assert.True(t, SignUnknown.Multiplier().IsZero())
}
