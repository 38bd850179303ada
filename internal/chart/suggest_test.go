package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"data-agent/internal/answer"
)

func TestSuggest(t *testing.T) {
	cols := []string{"region", "revenue"}
	row := func(region string, revenue answer.Value) answer.Row {
		return answer.NewRow(cols, []answer.Value{answer.String(region), revenue})
	}

	tests := []struct {
		name    string
		columns []string
		rows    []answer.Row
		want    *answer.Chart
	}{
		{
			name:    "label and number",
			columns: cols,
			rows:    []answer.Row{row("East", answer.Number(100)), row("West", answer.String("200"))},
			want:    &answer.Chart{Type: "bar", X: "region", Y: "revenue"},
		},
		{
			name:    "non-numeric second column",
			columns: cols,
			rows:    []answer.Row{row("East", answer.String("lots"))},
		},
		{
			name:    "null value",
			columns: cols,
			rows:    []answer.Row{row("East", answer.Null())},
		},
		{
			name:    "no rows",
			columns: cols,
		},
		{
			name:    "three columns",
			columns: []string{"a", "b", "c"},
			rows:    []answer.Row{answer.NewRow([]string{"a", "b", "c"}, []answer.Value{answer.Number(1), answer.Number(2), answer.Number(3)})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.columns, tt.rows))
		})
	}
}
