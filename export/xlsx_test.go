package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func records() []common.Transaction {
	return []common.Transaction{
		{
			Sequence:    1,
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
			Description: "Groceries",
			Sign:        common.SignDebit,
			Amount:      decimal.RequireFromString("-45.00"),
			Reference:   "MB1234567890123456789",
			Source:      "PDF文档1.pdf",
		},
		{
			Sequence:    2,
			Date:        time.Date(2024, 1, 16, 0, 0, 0, 0, time.Local),
			Description: "Top up",
			Sign:        common.SignCredit,
			Amount:      decimal.RequireFromString("100"),
			Reference:   "01689999990329103390492",
			Source:      "PDF文档1.pdf",
		},
	}
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, records()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Description", "Amount", "Reference", "Source", "Sign"}, rows[0])
	assert.Equal(t, []string{"2024-01-15", "Groceries", "-45", "MB1234567890123456789", "PDF文档1.pdf", "debit"}, rows[1])
	assert.Equal(t, "credit", rows[2][5])
}

func TestWriteXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
