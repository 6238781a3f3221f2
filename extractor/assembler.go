package extractor

import (
	"slices"

	"github.com/aqlanhadi/pbsm/extractor/common"
)

// Table accumulates the records of every processed file in processing
// order. Records of one file keep their document order.
type Table struct {
	records []common.Transaction
}

func NewTable() *Table {
	return &Table{records: []common.Transaction{}}
}

func (t *Table) Append(statement common.Statement) {
	t.records = append(t.records, statement.Transactions...)
}

// Records returns a copy of the assembled records.
func (t *Table) Records() []common.Transaction {
	return slices.Clone(t.records)
}

func (t *Table) Len() int {
	return len(t.records)
}
