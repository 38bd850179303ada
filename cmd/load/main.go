package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"data-agent/internal/app"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: load <csv_file> <table>")
		os.Exit(1)
	}
	path, table := os.Args[1], os.Args[2]

	if err := run(path, table); err != nil {
		slog.Default().Error("load failed", "file", path, "table", table, "err", err)
		os.Exit(1)
	}
}

func run(path, table string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, records, err := readCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	deps, err := app.BuildLoader()
	if err != nil {
		return err
	}
	defer deps.Loader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := deps.Loader.ReplaceTable(ctx, table, header, records)
	if err != nil {
		return err
	}
	deps.Log.Info("table loaded", "table", table, "rows", n, "columns", len(header))
	return nil
}

// readCSV splits a CSV document into its header and data records. Header
// names are trimmed; short rows are allowed and load their missing cells as NULL.
func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if header[i] == "" {
			return nil, nil, fmt.Errorf("column %d has no name", i+1)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, records, nil
}
