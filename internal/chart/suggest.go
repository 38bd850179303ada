package chart

import (
	"math"

	"data-agent/internal/answer"
)

// Suggest picks a chart hint for a query result: a bar chart when there
// are exactly two columns and every value in the second is numeric.
// Anything else gets no hint.
func Suggest(columns []string, rows []answer.Row) *answer.Chart {
	if len(columns) != 2 || len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		v, ok := row.Get(columns[1])
		if !ok || math.IsNaN(v.Float()) {
			return nil
		}
	}
	return &answer.Chart{Type: answer.ChartBar, X: columns[0], Y: columns[1]}
}
