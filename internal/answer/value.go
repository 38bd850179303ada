package answer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind enumerates the variants a cell value can hold.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a single cell: a string, a number or null.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Null returns the null value. The zero Value is also null.
func Null() Value { return Value{} }

// String wraps s as a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f as a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Text is the display and CSV form: null renders empty.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	default:
		return ""
	}
}

func (v Value) String() string { return v.Text() }

// Float coerces the value to a number for charting. Null, empty and
// non-numeric strings yield NaN; callers treat NaN as a gap.
func (v Value) Float() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = valueOf(gjson.ParseBytes(data))
	return nil
}

// valueOf maps a gjson result onto the variant. Booleans and nested
// documents are kept as their string form.
func valueOf(res gjson.Result) Value {
	switch res.Type {
	case gjson.Null:
		return Null()
	case gjson.String:
		return String(res.Str)
	case gjson.Number:
		return Number(res.Num)
	case gjson.True, gjson.False:
		return String(strconv.FormatBool(res.Bool()))
	default:
		return String(res.Raw)
	}
}

func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
