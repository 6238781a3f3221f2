// Package export writes assembled transaction records to a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Transactions"

// Header is the first row of the exported sheet.
var Header = []interface{}{"Date", "Description", "Amount", "Reference", "Source", "Sign"}

func build(records []common.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, tx := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			tx.Amount.InexactFloat64(),
			tx.Reference,
			tx.Source,
			string(tx.Sign),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return f, nil
}

// XLSX writes records as a workbook to w.
func XLSX(w io.Writer, records []common.Transaction) error {
	f, err := build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteXLSX saves records as a workbook at path.
func WriteXLSX(path string, records []common.Transaction) error {
	f, err := build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
