// Package web serves the query client as a server-rendered page.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"data-agent/internal/answer"
	"data-agent/internal/chart"
	"data-agent/internal/client"
	"data-agent/internal/clipboard"
	"data-agent/internal/export"
	"data-agent/internal/httputil"
)

// ExampleQuestion is submitted by the Example button.
const ExampleQuestion = "Show me total revenue by region"

//go:embed templates/page.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/page.html"))

// Server renders the client's state and forwards form posts to it.
type Server struct {
	client *client.Client
	clip   clipboard.Writer
	log    *slog.Logger

	mu     sync.Mutex
	query  string
	notice string
}

func New(c *client.Client, clip clipboard.Writer, log *slog.Logger) *Server {
	return &Server{client: c, clip: clip, log: log}
}

// Routes mounts the page handlers on a router with the shared middleware.
func (s *Server) Routes() chi.Router {
	r := httputil.NewRouter(s.log)
	r.Get("/", s.index)
	r.Post("/ask", s.ask)
	r.Post("/copy", s.copySQL)
	r.Get("/"+export.FileName, s.download)
	r.Get("/healthz", httputil.HealthHandler(s.log))
	return r
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := pageData{
		Backend: s.client.BaseURL(),
		Query:   s.query,
		Example: ExampleQuestion,
		Notice:  s.notice,
	}
	s.notice = ""
	s.mu.Unlock()

	switch st := s.client.State().(type) {
	case client.Busy:
		data.Busy = true
	case client.Failed:
		data.Error = st.Message
	case client.Succeeded:
		view := newAnswerView(st.Response)
		data.Answer = &view
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		s.log.Error("render page failed", "err", err)
	}
}

// ask blocks until the answer service replies, then redirects to the page.
func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.Fail(s.log, w, "invalid form", err, http.StatusBadRequest)
		return
	}
	query := r.PostFormValue("query")

	s.mu.Lock()
	s.query = query
	s.mu.Unlock()

	if _, err := s.client.Submit(r.Context(), query); err != nil && !errors.Is(err, client.ErrEmptyQuery) {
		s.log.Warn("question failed", "err", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) copySQL(w http.ResponseWriter, r *http.Request) {
	if resp, ok := client.Current(s.client.State()); ok {
		clipboard.CopySQL(s.clip, resp, func(msg string) {
			s.mu.Lock()
			s.notice = msg
			s.mu.Unlock()
		}, s.log)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	resp, ok := client.Current(s.client.State())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	artifact, ok := export.CSV(resp)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	if _, err := w.Write(artifact.Data); err != nil {
		s.log.Warn("csv download write failed", "err", err)
	}
}

type pageData struct {
	Backend string
	Query   string
	Example string
	Notice  string
	Busy    bool
	Error   string
	Answer  *answerView
}

type answerView struct {
	Summary string
	SQL     string
	HasRows bool
	Columns []string
	Rows    [][]string
	Chart   chart.View

	// ShowChart is false when there is no hint or no rows.
	ShowChart bool
	Line      bool
	Bars      []barView
	Slices    []sliceView
}

type barView struct {
	Label string
	Value string

	// Width is a percentage of the widest bar. Empty bars have no value.
	Width float64
	Empty bool
}

type sliceView struct {
	Name    string
	Color   string
	Value   string
	Percent float64
}

func newAnswerView(resp answer.Response) answerView {
	v := answerView{
		Summary: resp.Summary,
		SQL:     resp.SQL,
		HasRows: resp.HasRows(),
		Columns: resp.ColumnNames(),
		Chart:   chart.Render(resp),
	}
	v.ShowChart = v.Chart.Kind != chart.KindNone
	v.Line = v.Chart.Kind == chart.KindLine
	if v.Summary == "" {
		v.Summary = "—"
	}

	for _, row := range resp.Rows {
		cols := resp.Columns
		if cols == nil {
			cols = row.Keys()
		}
		cells := make([]string, len(cols))
		for i, c := range cols {
			val, _ := row.Get(c)
			cells[i] = val.Text()
		}
		v.Rows = append(v.Rows, cells)
	}

	top := v.Chart.Max()
	for _, p := range v.Chart.Points {
		b := barView{Label: p.Label, Value: formatValue(p.Value)}
		switch {
		case math.IsNaN(p.Value):
			b.Empty = true
		case top > 0 && p.Value > 0:
			b.Width = math.Round(p.Value/top*1000) / 10
		}
		v.Bars = append(v.Bars, b)
	}

	total := v.Chart.Total()
	for _, sl := range v.Chart.Slices {
		pv := sliceView{Name: sl.Name, Color: sl.Color, Value: formatValue(sl.Value)}
		if total > 0 && !math.IsNaN(sl.Value) && sl.Value > 0 {
			pv.Percent = math.Round(sl.Value/total*1000) / 10
		}
		v.Slices = append(v.Slices, pv)
	}
	return v
}

func formatValue(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
