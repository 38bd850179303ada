package answer

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsRowKeyOrder(t *testing.T) {
	body := `{
		"summary": "Here is the revenue grouped by region.",
		"sql": "SELECT 1",
		"rows": [{"zone": "East", "revenue": 100, "note": null}]
	}`

	resp, err := Decode([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "Here is the revenue grouped by region.", resp.Summary)
	assert.Nil(t, resp.Columns)
	assert.Equal(t, []string{"zone", "revenue", "note"}, resp.ColumnNames())

	v, ok := resp.Rows[0].Get("revenue")
	require.True(t, ok)
	assert.Equal(t, KindNumber, v.Kind())
	assert.Equal(t, "100", v.Text())

	note, _ := resp.Rows[0].Get("note")
	assert.True(t, note.IsNull())
}

func TestColumnNames(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"declared columns win", `{"columns":["b","a"],"rows":[{"a":1,"b":2}]}`, []string{"b", "a"}},
		{"empty declared columns are kept", `{"columns":[],"rows":[{"a":1}]}`, []string{}},
		{"derived from first row", `{"rows":[{"a":1,"b":2},{"c":3}]}`, []string{"a", "b"}},
		{"no rows no columns", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Decode([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.ColumnNames())
		})
	}
}

func TestDecodeMissingRowsIsEmpty(t *testing.T) {
	resp, err := Decode([]byte(`{"summary":"nothing"}`))
	require.NoError(t, err)
	assert.False(t, resp.HasRows())
}

func TestDecodeRejectsNonObjectRow(t *testing.T) {
	_, err := Decode([]byte(`{"rows":[1,2]}`))
	assert.Error(t, err)
}

func TestDecodeChart(t *testing.T) {
	resp, err := Decode([]byte(`{"rows":[],"chart":{"type":"pie","x":"region"}}`))
	require.NoError(t, err)
	require.NotNil(t, resp.Chart)
	assert.Equal(t, ChartPie, resp.Chart.Type)
	assert.Equal(t, "region", resp.Chart.X)
	assert.Empty(t, resp.Chart.Y)
}

func TestValueCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		wantNum  float64
	}{
		{"integer", `100`, "100", 100},
		{"decimal", `12.5`, "12.5", 12.5},
		{"numeric string", `"200"`, "200", 200},
		{"padded numeric string", `" 7 "`, " 7 ", 7},
		{"word", `"East"`, "East", math.NaN()},
		{"empty string", `""`, "", math.NaN()},
		{"null", `null`, "", math.NaN()},
		{"bool", `true`, "true", math.NaN()},
		{"nested", `{"a":1}`, `{"a":1}`, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.wantText, v.Text())
			if math.IsNaN(tt.wantNum) {
				assert.True(t, math.IsNaN(v.Float()), "expected NaN, got %v", v.Float())
			} else {
				assert.Equal(t, tt.wantNum, v.Float())
			}
		})
	}
}

func TestRowMarshalPreservesOrder(t *testing.T) {
	row := NewRow([]string{"region", "revenue", "missing"}, []Value{String("East"), Number(1.5)})

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"region":"East","revenue":1.5,"missing":null}`, string(data))
}

func TestRowSetKeepsFirstPosition(t *testing.T) {
	var row Row
	row.Set("a", Number(1))
	row.Set("b", Number(2))
	row.Set("a", Number(3))

	assert.Equal(t, []string{"a", "b"}, row.Keys())
	v, _ := row.Get("a")
	assert.Equal(t, float64(3), v.Float())
}

func TestNaNMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Number(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
