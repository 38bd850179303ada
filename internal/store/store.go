package store

import (
	"context"

	"data-agent/internal/answer"
)

// Table describes one queryable table for prompting.
type Table struct {
	Name    string
	Columns []string
}

// Result is a query's column list and ordered rows.
type Result struct {
	Columns []string
	Rows    []answer.Row
}

// Store runs read-only queries against the analytics database.
type Store interface {
	Schema(ctx context.Context) ([]Table, error)
	Query(ctx context.Context, sql string) (Result, error)
}
