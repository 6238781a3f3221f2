package section

import (
	"fmt"
	"strings"

	"github.com/aqlanhadi/pbsm/extractor/common"
)

// TableOptions describes where the transaction table sits on each page.
type TableOptions struct {
	FirstPage    common.Geometry
	Continuation common.Geometry
	// EndMarker is looked for in the description column; the first row
	// containing it and everything after are dropped.
	EndMarker string
	// MinColumns is the narrowest row the wallet grammar can index.
	MinColumns int
}

// TableResult is the concatenated body of the transaction table.
type TableResult struct {
	Rows []common.Row
	// Terminated reports whether the end marker was found.
	Terminated bool
}

// Tables extracts the table region of every page, page one with the
// first-page geometry and later pages with the continuation geometry, and
// concatenates the rows up to the end marker. Pages after the one holding
// the marker are not read.
func Tables(src common.Source, opts TableOptions) (TableResult, error) {
	var result TableResult

	for no := 0; no < src.NumPages(); no++ {
		g := opts.Continuation
		if no == 0 {
			g = opts.FirstPage
		}

		rows, err := src.PageTable(no, g)
		if err != nil {
			return TableResult{}, err
		}

		for i, row := range rows {
			if opts.MinColumns > 0 && len(row) < opts.MinColumns {
				return TableResult{}, &common.StructuralError{
					Page:   no,
					Reason: fmt.Sprintf("row %d has %d columns, want at least %d", i+1, len(row), opts.MinColumns),
				}
			}
			if opts.EndMarker != "" && strings.Contains(row.Cell(1), opts.EndMarker) {
				result.Terminated = true
				break
			}
			result.Rows = append(result.Rows, row)
		}

		if result.Terminated {
			break
		}
	}

	return result, nil
}
