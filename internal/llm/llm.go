package llm

import "context"

// Translation is a question turned into SQL plus a one-line summary.
type Translation struct {
	SQL     string
	Summary string
}

// Translator turns a natural-language question into SQL over schema.
type Translator interface {
	Translate(ctx context.Context, question, schema string) (Translation, error)
}

const (
	demoSQL     = "SELECT region, SUM(quantity * unit_price) AS revenue FROM sales GROUP BY region;"
	demoSummary = "Here is the revenue grouped by region."
)

// Demo answers every question with revenue by region. It needs no model
// and is the default provider.
type Demo struct{}

func (Demo) Translate(_ context.Context, _, _ string) (Translation, error) {
	return Translation{SQL: demoSQL, Summary: demoSummary}, nil
}
