package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"data-agent/internal/answer"
	"data-agent/internal/retry"
)

const (
	pingAttempts = 5
	pingBackoff  = 250 * time.Millisecond
	pingTimeout  = 15 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// ping waits for the database to accept connections, backing off between
// tries so the service can start alongside its database.
func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	err := retry.Do(ctx, pingAttempts, pingBackoff, func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

// Schema lists the tables and columns of the public schema.
func (s *PostgresStore) Schema(ctx context.Context) ([]Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name, array_agg(column_name::text ORDER BY ordinal_position)
		FROM information_schema.columns
		WHERE table_schema = 'public'
		GROUP BY table_name
		ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Name, pq.Array(&t.Columns)); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// Query runs sql in a read-only transaction and returns every row.
func (s *PostgresStore) Query(ctx context.Context, query string) (Result, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return Result{}, err
	}
	cols := make([]string, len(types))
	for i, ct := range types {
		cols[i] = ct.Name()
	}

	out := Result{Columns: cols, Rows: []answer.Row{}}
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, err
		}
		values := make([]answer.Value, len(cols))
		for i, v := range raw {
			values[i] = cellValue(v, types[i].DatabaseTypeName())
		}
		out.Rows = append(out.Rows, answer.NewRow(cols, values))
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	return out, nil
}

// cellValue maps a scanned driver value onto the answer variant. NUMERIC
// arrives as text and is parsed back into a number.
func cellValue(v any, dbType string) answer.Value {
	switch x := v.(type) {
	case nil:
		return answer.Null()
	case int64:
		return answer.Number(float64(x))
	case int32:
		return answer.Number(float64(x))
	case int16:
		return answer.Number(float64(x))
	case float64:
		return answer.Number(x)
	case float32:
		return answer.Number(float64(x))
	case bool:
		return answer.String(strconv.FormatBool(x))
	case time.Time:
		return answer.String(x.Format(time.RFC3339))
	case []byte:
		return textValue(string(x), dbType)
	case string:
		return textValue(x, dbType)
	default:
		return answer.String(fmt.Sprint(x))
	}
}

func textValue(s, dbType string) answer.Value {
	switch strings.ToUpper(dbType) {
	case "NUMERIC", "DECIMAL":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return answer.Number(f)
		}
	}
	return answer.String(s)
}
