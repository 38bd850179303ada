package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Loader replaces whole tables from tabular text data using COPY. It goes
// through lib/pq because COPY FROM STDIN is driven by pq.CopyIn.
type Loader struct {
	db *sql.DB
}

func NewLoader(dsn string) (*Loader, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Loader{db: db}, nil
}

func (l *Loader) Close() error { return l.db.Close() }

// ReplaceTable drops table, recreates it from header and loads records.
// Columns whose non-empty cells all parse as numbers become DOUBLE
// PRECISION, the rest TEXT. Empty cells load as NULL.
func (l *Loader) ReplaceTable(ctx context.Context, table string, header []string, records [][]string) (int, error) {
	if len(header) == 0 {
		return 0, fmt.Errorf("no columns in header")
	}
	numeric := numericColumns(len(header), records)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(table)); err != nil {
		return 0, fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(table, header, numeric)); err != nil {
		return 0, fmt.Errorf("create %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, header...))
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, copyArgs(rec, len(header), numeric)...); err != nil {
			_ = stmt.Close()
			return 0, fmt.Errorf("copy row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return 0, fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

func createTableSQL(table string, header []string, numeric []bool) string {
	cols := make([]string, len(header))
	for i, h := range header {
		typ := "TEXT"
		if numeric[i] {
			typ = "DOUBLE PRECISION"
		}
		cols[i] = pq.QuoteIdentifier(h) + " " + typ
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pq.QuoteIdentifier(table), strings.Join(cols, ", "))
}

func numericColumns(n int, records [][]string) []bool {
	numeric := make([]bool, n)
	seen := make([]bool, n)
	for i := range numeric {
		numeric[i] = true
	}
	for _, rec := range records {
		for i := 0; i < n && i < len(rec); i++ {
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				continue
			}
			seen[i] = true
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric[i] = false
			}
		}
	}
	for i := range numeric {
		numeric[i] = numeric[i] && seen[i]
	}
	return numeric
}

func copyArgs(rec []string, n int, numeric []bool) []any {
	args := make([]any, n)
	for i := 0; i < n; i++ {
		if i >= len(rec) {
			continue
		}
		cell := strings.TrimSpace(rec[i])
		if cell == "" {
			continue
		}
		if numeric[i] {
			f, _ := strconv.ParseFloat(cell, 64)
			args[i] = f
			continue
		}
		args[i] = rec[i]
	}
	return args
}
