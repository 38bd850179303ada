// Package export turns an answer into downloadable artifacts.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"data-agent/internal/answer"
)

const (
	FileName = "results.csv"
	MIMEType = "text/csv"
)

// Artifact is a named document ready to be offered for download.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// CSV builds the results.csv artifact. It reports false, and builds
// nothing, when the response has no rows.
//
// The header is the column names joined by commas. Every data field is
// wrapped in double quotes with embedded quotes doubled; null and missing
// cells are empty. Lines are joined with "\n" and there is no trailing
// newline. Newlines inside a value are left as-is within the quotes.
func CSV(resp answer.Response) (Artifact, bool) {
	if !resp.HasRows() {
		return Artifact{}, false
	}
	cols := resp.ColumnNames()

	lines := make([]string, 0, len(resp.Rows)+1)
	lines = append(lines, strings.Join(cols, ","))
	for _, row := range resp.Rows {
		fields := make([]string, len(cols))
		for i, c := range cols {
			v, _ := row.Get(c)
			fields[i] = quote(v.Text())
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return Artifact{
		Name:     FileName,
		MIMEType: MIMEType,
		Data:     []byte(strings.Join(lines, "\n")),
	}, true
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteFile saves the artifact under dir and returns the path written.
func WriteFile(dir string, a Artifact) (string, error) {
	path := filepath.Join(dir, a.Name)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
