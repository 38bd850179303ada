package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"data-agent/internal/client"
	"data-agent/internal/clipboard"
	"data-agent/internal/export"
	"data-agent/internal/render"
)

// ExampleQuestion is asked by /example.
const ExampleQuestion = "Show me total revenue by region"

// REPL provides an interactive loop around the query client.
type REPL struct {
	Client    *client.Client
	Clipboard clipboard.Writer
	Log       *slog.Logger
	// Dir is where /csv writes results.csv.
	Dir string
	In  io.Reader
	Out io.Writer
}

// New constructs a REPL on stdin/stdout writing exports to the working directory.
func New(c *client.Client, log *slog.Logger) *REPL {
	return &REPL{Client: c, Clipboard: clipboard.System{}, Log: log, Dir: ".", In: os.Stdin, Out: os.Stdout}
}

// Run starts the interactive loop. It returns when input ends, on /quit,
// or when ctx is cancelled between questions.
func (r *REPL) Run(ctx context.Context) {
	render.Banner(r.Out, r.Client.BaseURL())
	scanner := bufio.NewScanner(r.In)
	for {
		if ctx.Err() != nil {
			return
		}
		io.WriteString(r.Out, "> ")
		if !scanner.Scan() {
			break
		}
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if r.handleCommand(ctx, line) {
				break
			}
			continue
		}
		r.Ask(ctx, raw)
	}
	if err := scanner.Err(); err != nil {
		render.Info(r.Out, "Error: "+err.Error())
	}
}

func (r *REPL) handleCommand(ctx context.Context, line string) bool {
	cmd := strings.TrimPrefix(strings.Fields(line)[0], "/")

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		render.Help(r.Out)
	case "example":
		render.Info(r.Out, "> "+ExampleQuestion)
		r.Ask(ctx, ExampleQuestion)
	case "copy":
		r.CopySQL()
	case "csv":
		r.ExportCSV()
	case "backend":
		render.Info(r.Out, "Backend: "+r.Client.BaseURL())
	default:
		render.Info(r.Out, "unknown command, type /help")
	}
	return false
}

// Ask submits one question and prints the resulting state. It reports
// whether the answer succeeded.
func (r *REPL) Ask(ctx context.Context, question string) bool {
	render.Busy(r.Out)
	_, err := r.Client.Submit(ctx, question)
	if errors.Is(err, client.ErrEmptyQuery) {
		return false
	}
	render.State(r.Out, r.Client.State())
	return err == nil
}

// CopySQL copies the displayed SQL, if any.
func (r *REPL) CopySQL() {
	resp, ok := client.Current(r.Client.State())
	if !ok {
		return
	}
	clipboard.CopySQL(r.Clipboard, resp, func(msg string) { render.Info(r.Out, msg) }, r.Log)
}

// ExportCSV writes results.csv for the displayed rows, if any.
func (r *REPL) ExportCSV() {
	resp, ok := client.Current(r.Client.State())
	if !ok {
		return
	}
	artifact, ok := export.CSV(resp)
	if !ok {
		return
	}
	path, err := export.WriteFile(r.Dir, artifact)
	if err != nil {
		render.Info(r.Out, "Error: "+err.Error())
		return
	}
	render.Info(r.Out, "Saved "+path)
}
