// Package chart derives a drawable view from an answer's chart hint.
package chart

import (
	"fmt"
	"math"

	"data-agent/internal/answer"
)

type Kind int

const (
	KindNone Kind = iota
	KindBar
	KindLine
	KindPie
	KindUnsupported
)

// Palette colours pie slices by row index, cycling every five.
var Palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#AF19FF"}

// Point is one x/y pair of a bar or line chart. Value is NaN when the
// y cell is not numeric; renderers draw a gap.
type Point struct {
	Label string
	Value float64
}

// Slice is one segment of a pie chart.
type Slice struct {
	Name  string
	Value float64
	Color string
}

// View is everything a renderer needs to draw the chart.
type View struct {
	Kind   Kind
	Type   string
	X, Y   string
	Points []Point
	Slices []Slice
	Notice string
}

// Render applies the chart policy: nothing without a hint or rows, points
// for bar and line, coloured slices for pie, and a visible notice for any
// other type.
func Render(resp answer.Response) View {
	if resp.Chart == nil || !resp.HasRows() {
		return View{Kind: KindNone}
	}
	hint := resp.Chart
	cols := resp.ColumnNames()
	x, y := hint.X, hint.Y
	if x == "" && len(cols) > 0 {
		x = cols[0]
	}
	if y == "" && len(cols) > 1 {
		y = cols[1]
	}
	view := View{Type: hint.Type, X: x, Y: y}

	switch hint.Type {
	case answer.ChartBar, answer.ChartLine:
		view.Kind = KindBar
		if hint.Type == answer.ChartLine {
			view.Kind = KindLine
		}
		view.Points = make([]Point, len(resp.Rows))
		for i, row := range resp.Rows {
			label, _ := row.Get(x)
			value, _ := row.Get(y)
			view.Points[i] = Point{Label: label.Text(), Value: value.Float()}
		}
	case answer.ChartPie:
		view.Kind = KindPie
		view.Slices = make([]Slice, len(resp.Rows))
		for i, row := range resp.Rows {
			name, _ := row.Get(x)
			value, _ := row.Get(y)
			view.Slices[i] = Slice{
				Name:  name.Text(),
				Value: value.Float(),
				Color: Palette[i%len(Palette)],
			}
		}
	default:
		view.Kind = KindUnsupported
		view.Notice = fmt.Sprintf("Chart type %s not supported by the frontend yet.", hint.Type)
	}
	return view
}

// Max returns the largest finite value in the view, or 0.
func (v View) Max() float64 {
	top := 0.0
	for _, p := range v.Points {
		if !math.IsNaN(p.Value) && p.Value > top {
			top = p.Value
		}
	}
	for _, s := range v.Slices {
		if !math.IsNaN(s.Value) && s.Value > top {
			top = s.Value
		}
	}
	return top
}

// Total sums the finite slice values of a pie.
func (v View) Total() float64 {
	total := 0.0
	for _, s := range v.Slices {
		if !math.IsNaN(s.Value) && s.Value > 0 {
			total += s.Value
		}
	}
	return total
}
