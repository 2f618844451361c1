package convert

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindNested
)

// String returns the lowercase kind name used in logs and test output.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Value is one field value of a Record.
//
// Values from CSV are always KindString. Values from JSON keep their JSON
// kind: numbers keep the literal text they were written with, arrays and
// objects are kept as compact JSON. The zero Value is KindAbsent.
type Value struct {
	kind Kind
	text string // string content, number literal, or compact JSON
	b    bool
}

// StringValue returns a KindString value.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// NumberValue returns a KindNumber value from a JSON number literal.
// The literal is not validated; callers pass decoder output.
func NumberValue(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// BoolValue returns a KindBool value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NullValue returns an explicit null.
func NullValue() Value {
	return Value{kind: KindNull}
}

// NestedValue returns a KindNested value holding raw JSON (array or object).
// The JSON is compacted; invalid JSON is stored as given.
func NestedValue(raw string) Value {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err == nil {
		raw = buf.String()
	}
	return Value{kind: KindNested, text: raw}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether v renders as an empty CSV field because it is
// missing or null. An empty string is not empty in this sense.
func (v Value) IsEmpty() bool {
	return v.kind == KindAbsent || v.kind == KindNull
}

// String returns the canonical text form of v:
//
//	absent, null -> ""
//	string       -> the string itself
//	number       -> canonical number text (see canonicalNumber)
//	bool         -> "true" or "false"
//	nested       -> compact JSON
func (v Value) String() string {
	switch v.kind {
	case KindString, KindNested:
		return v.text
	case KindNumber:
		return canonicalNumber(v.text)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// MarshalJSON encodes v as its JSON form. Absent values encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return marshalNoEscape(v.text)
	case KindNumber, KindNested:
		return []byte(v.text), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return []byte("null"), nil
	}
}

// canonicalNumber renders a JSON number literal the way a JSON consumer would
// print it back: integer literals stay as written, everything else goes
// through float64 and the shortest round-trip form. Exponent notation is used
// outside [1e-6, 1e21).
func canonicalNumber(literal string) string {
	if !strings.ContainsAny(literal, ".eE") {
		if literal == "-0" {
			return "0"
		}
		return literal
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7, as encoding/json and JavaScript print it.
		if n := len(s); n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// marshalNoEscape encodes v without HTML escaping of <, > and &.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
