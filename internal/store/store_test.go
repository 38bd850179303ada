package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"data-agent/internal/answer"
)

func TestCellValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     any
		dbType string
		want   answer.Value
	}{
		{"null", nil, "TEXT", answer.Null()},
		{"int8", int64(42), "INT8", answer.Number(42)},
		{"int4", int32(7), "INT4", answer.Number(7)},
		{"float8", 2.5, "FLOAT8", answer.Number(2.5)},
		{"numeric text", "1234.50", "NUMERIC", answer.Number(1234.5)},
		{"numeric bytes", []byte("10"), "NUMERIC", answer.Number(10)},
		{"plain text", "East", "TEXT", answer.String("East")},
		{"numeric-looking text stays text", "007", "VARCHAR", answer.String("007")},
		{"bool", true, "BOOL", answer.String("true")},
		{"timestamp", ts, "TIMESTAMPTZ", answer.String("2024-03-01T12:00:00Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellValue(tt.in, tt.dbType))
		})
	}
}

func TestNumericColumns(t *testing.T) {
	records := [][]string{
		{"East", "3", "9.99", ""},
		{"West", "", "1e3", ""},
		{"North", "x", "4", ""},
	}
	assert.Equal(t, []bool{false, false, true, false}, numericColumns(4, records))
}

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL("sales", []string{"region", "unit price"}, []bool{false, true})
	assert.Equal(t, `CREATE TABLE "sales" ("region" TEXT, "unit price" DOUBLE PRECISION)`, got)
}

func TestCopyArgs(t *testing.T) {
	args := copyArgs([]string{"East", " 3 ", ""}, 4, []bool{false, true, true, false})
	assert.Equal(t, []any{"East", float64(3), nil, nil}, args)
}
