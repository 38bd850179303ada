// Package render prints the query client's state to a terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"data-agent/internal/answer"
	"data-agent/internal/chart"
	"data-agent/internal/client"
)

const barWidth = 40

// Banner shows startup info.
func Banner(out io.Writer, baseURL string) {
	fmt.Fprintln(out, "AI Data Agent — Demo")
	fmt.Fprintln(out, "Type a business question and get a natural-language answer, SQL, table and chart.")
	fmt.Fprintf(out, "Backend: %s\n", baseURL)
	fmt.Fprintln(out, "Type /help for commands.")
}

// Help prints command list.
func Help(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  <question>     Ask the answer service")
	fmt.Fprintln(out, "  /example       Ask \"Show me total revenue by region\"")
	fmt.Fprintln(out, "  /copy          Copy the SQL to the clipboard")
	fmt.Fprintln(out, "  /csv           Save the rows to results.csv")
	fmt.Fprintln(out, "  /backend       Show the answer service URL")
	fmt.Fprintln(out, "  /help          Show commands")
	fmt.Fprintln(out, "  /exit | /quit  Exit")
}

// Info prints a one-line notice.
func Info(out io.Writer, msg string) {
	fmt.Fprintln(out, msg)
}

// Busy prints the in-flight marker.
func Busy(out io.Writer) {
	fmt.Fprintln(out, "Thinking...")
}

// State prints whatever the client currently shows.
func State(out io.Writer, s client.State) {
	switch st := s.(type) {
	case client.Busy:
		Busy(out)
	case client.Failed:
		fmt.Fprintf(out, "Error: %s\n", st.Message)
	case client.Succeeded:
		Answer(out, st.Response)
	}
}

// Answer prints summary, SQL, chart and table.
func Answer(out io.Writer, resp answer.Response) {
	summary := resp.Summary
	if summary == "" {
		summary = "—"
	}
	fmt.Fprintln(out, "Answer")
	fmt.Fprintf(out, "  %s\n\n", summary)

	fmt.Fprintln(out, "SQL")
	for _, line := range strings.Split(resp.SQL, "\n") {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Chart")
	Chart(out, chart.Render(resp))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Table")
	Table(out, resp)
}

// Chart draws a view with text bars. NaN values print as a gap.
func Chart(out io.Writer, v chart.View) {
	switch v.Kind {
	case chart.KindBar, chart.KindLine:
		mark := "#"
		if v.Kind == chart.KindLine {
			mark = "*"
		}
		fmt.Fprintf(out, "  %s by %s (%s)\n", v.Y, v.X, v.Type)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		top := v.Max()
		for _, p := range v.Points {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Label, bar(p.Value, top, mark, v.Kind == chart.KindLine), number(p.Value))
		}
		_ = tw.Flush()
	case chart.KindPie:
		fmt.Fprintf(out, "  %s by %s (pie)\n", v.Y, v.X)
		total := v.Total()
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range v.Slices {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", s.Color, s.Name, percent(s.Value, total), number(s.Value))
		}
		_ = tw.Flush()
	case chart.KindUnsupported:
		fmt.Fprintf(out, "  %s\n", v.Notice)
	}
}

// Table prints the rows with a header. Cells follow the declared columns,
// or each row's own keys when none were declared.
func Table(out io.Writer, resp answer.Response) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.Join(resp.ColumnNames(), "\t"))
	for _, row := range resp.Rows {
		cols := resp.Columns
		if cols == nil {
			cols = row.Keys()
		}
		cells := make([]string, len(cols))
		for i, c := range cols {
			v, _ := row.Get(c)
			cells[i] = v.Text()
		}
		fmt.Fprintf(tw, "  %s\n", strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

func bar(value, top float64, mark string, line bool) string {
	if math.IsNaN(value) {
		return ""
	}
	n := 0
	if top > 0 && value > 0 {
		n = int(math.Round(value / top * barWidth))
	}
	if line {
		if n == 0 {
			return mark
		}
		return strings.Repeat(" ", n-1) + mark
	}
	return strings.Repeat(mark, n)
}

func number(f float64) string {
	if math.IsNaN(f) {
		return "(n/a)"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func percent(value, total float64) string {
	if math.IsNaN(value) || total <= 0 || value < 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", value/total*100)
}
