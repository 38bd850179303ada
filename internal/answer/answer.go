package answer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Chart types the presentation layer knows how to draw.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"
)

// Response is the payload returned by the Answer Service for one question.
type Response struct {
	Summary string   `json:"summary,omitempty"`
	SQL     string   `json:"sql,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Rows    []Row    `json:"rows"`
	Chart   *Chart   `json:"chart,omitempty"`
}

// Chart is the backend's hint for how to plot the rows.
type Chart struct {
	Type string `json:"type"`
	X    string `json:"x,omitempty"`
	Y    string `json:"y,omitempty"`
}

// Decode parses a service response body.
func Decode(data []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// ColumnNames returns the declared columns or, when none were sent, the
// keys of the first row in document order.
func (r Response) ColumnNames() []string {
	if r.Columns != nil {
		return r.Columns
	}
	if len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[0].Keys()
}

// HasRows reports whether there is anything to tabulate or export.
func (r Response) HasRows() bool { return len(r.Rows) > 0 }

// Row is a mapping from column name to value that remembers key order.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow builds a row from parallel key and value slices.
func NewRow(keys []string, values []Value) Row {
	var row Row
	for i, k := range keys {
		v := Null()
		if i < len(values) {
			v = values[i]
		}
		row.Set(k, v)
	}
	return row
}

// Set assigns v to key. A repeated key keeps its first position.
func (r *Row) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value for key; missing keys read as null.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the column names in the order they were set.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

var errRowNotObject = errors.New("row is not a JSON object")

func (r *Row) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*r = Row{}
		return nil
	}
	if !res.IsObject() {
		return errRowNotObject
	}
	var row Row
	res.ForEach(func(key, value gjson.Result) bool {
		row.Set(key.String(), valueOf(value))
		return true
	})
	*r = row
	return nil
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
