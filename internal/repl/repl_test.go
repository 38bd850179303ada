package repl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"data-agent/internal/client"
	"data-agent/internal/clipboard"
)

const revenueAnswer = `{
	"summary": "Here is the revenue grouped by region.",
	"sql": "SELECT region, SUM(quantity * unit_price) AS revenue FROM sales GROUP BY region;",
	"columns": ["region", "revenue"],
	"rows": [{"region": "East", "revenue": 100}, {"region": "West", "revenue": "200"}]
}`

type fakeService struct {
	mu      sync.Mutex
	queries []string
	status  int
	body    string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)
	f.mu.Lock()
	f.queries = append(f.queries, payload.Query)
	f.mu.Unlock()
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = w.Write([]byte(f.body))
}

func newTestREPL(t *testing.T, svc *fakeService, input string) (*REPL, *bytes.Buffer, *clipboard.MockWriter) {
	t.Helper()
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cb := new(clipboard.MockWriter)
	out := new(bytes.Buffer)
	return &REPL{
		Client:    client.New(srv.URL, log),
		Clipboard: cb,
		Log:       log,
		Dir:       t.TempDir(),
		In:        strings.NewReader(input),
		Out:       out,
	}, out, cb
}

func TestRunAsksAndExports(t *testing.T) {
	svc := &fakeService{body: revenueAnswer}
	r, out, cb := newTestREPL(t, svc, "revenue by region\n/copy\n/csv\n/quit\nnever sent\n")
	cb.On("WriteAll", "SELECT region, SUM(quantity * unit_price) AS revenue FROM sales GROUP BY region;").Return(nil).Once()

	r.Run(context.Background())

	assert.Equal(t, []string{"revenue by region"}, svc.queries)
	assert.Contains(t, out.String(), "Here is the revenue grouped by region.")
	assert.Contains(t, out.String(), clipboard.Confirmation)
	cb.AssertExpectations(t)

	data, err := os.ReadFile(filepath.Join(r.Dir, "results.csv"))
	require.NoError(t, err)
	assert.Equal(t, "region,revenue\n\"East\",\"100\"\n\"West\",\"200\"", string(data))
}

func TestRunSkipsBlankLines(t *testing.T) {
	svc := &fakeService{body: `{}`}
	r, _, _ := newTestREPL(t, svc, "\n   \n\t\n")

	r.Run(context.Background())

	assert.Empty(t, svc.queries)
}

func TestRunExampleCommand(t *testing.T) {
	svc := &fakeService{body: `{"rows":[]}`}
	r, _, _ := newTestREPL(t, svc, "/example\n")

	r.Run(context.Background())

	assert.Equal(t, []string{ExampleQuestion}, svc.queries)
}

func TestAskShowsServerError(t *testing.T) {
	svc := &fakeService{status: http.StatusInternalServerError, body: `{"detail":"boom"}`}
	r, out, _ := newTestREPL(t, svc, "")

	ok := r.Ask(context.Background(), "anything")

	assert.False(t, ok)
	assert.Contains(t, out.String(), "Error: Server returned 500")
}

func TestCopyAndCSVWithoutDataAreNoOps(t *testing.T) {
	svc := &fakeService{body: `{"summary":"no sql, no rows","rows":[]}`}
	r, out, cb := newTestREPL(t, svc, "")

	require.True(t, r.Ask(context.Background(), "q"))
	out.Reset()

	r.CopySQL()
	r.ExportCSV()

	assert.Empty(t, out.String())
	cb.AssertNotCalled(t, "WriteAll", mock.Anything)
	_, err := os.Stat(filepath.Join(r.Dir, "results.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestCopyBeforeAnyAnswer(t *testing.T) {
	r, out, cb := newTestREPL(t, &fakeService{}, "")

	r.CopySQL()
	r.ExportCSV()

	assert.Empty(t, out.String())
	cb.AssertNotCalled(t, "WriteAll", mock.Anything)
}

func TestUnknownCommand(t *testing.T) {
	r, out, _ := newTestREPL(t, &fakeService{}, "/frobnicate\n")

	r.Run(context.Background())

	assert.Contains(t, out.String(), "unknown command")
}
