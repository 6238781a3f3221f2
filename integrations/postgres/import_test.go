package postgres

import (
	"testing"
	"time"

	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/stretchr/testify/assert"
)

func TestImportable(t *testing.T) {
	date := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)

	assert.NoError(t, importable(common.Statement{Identifier: "88881234", StatementDate: &date}))
	assert.EqualError(t, importable(common.Statement{StatementDate: &date}), "no account identifier")
	assert.EqualError(t, importable(common.Statement{Identifier: "88881234"}), "no statement date")
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Grab  food", "GRAB FOOD"},
		{"  TOP\tUP\n", "TOP UP"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeDescription(tt.in))
	}
}
