package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseJSON parses text as a JSON array of objects.
//
// Syntax errors are reported first; then the top-level value must be an
// array, the array must be non-empty, and every element must be a non-null
// object. Object key order is preserved in the returned records.
func ParseJSON(text string) ([]Record, error) {
	raw, err := decodeDocument(text)
	if err != nil {
		return nil, err
	}

	if firstByte(raw) != '[' {
		return nil, newFormatError("JSON002", msgNotArray)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, jsonSyntaxError(err)
	}
	if len(items) == 0 {
		return nil, newFormatError("JSON003", msgEmptyArray)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if firstByte(item) != '{' {
			return nil, newFormatError("JSON004", msgNonObjectItems)
		}
		rec, err := decodeRecord(item)
		if err != nil {
			return nil, jsonSyntaxError(err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SerializeJSON renders records as a JSON array indented with two spaces.
// Keys keep record order and HTML characters are not escaped.
func SerializeJSON(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// decodeDocument checks that text holds exactly one JSON value and returns it.
func decodeDocument(text string) (json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newFormatError("JSON001", "Invalid JSON: unexpected end of JSON input")
		}
		return nil, jsonSyntaxError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newFormatError("JSON001", "Invalid JSON: unexpected data after top-level value")
	}
	return raw, nil
}

// decodeRecord decodes one JSON object, keeping key order.
func decodeRecord(raw json.RawMessage) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return Record{}, err
	}

	var rec Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("unexpected object key %v", tok)
		}

		var field json.RawMessage
		if err := dec.Decode(&field); err != nil {
			return Record{}, err
		}
		v, err := valueFromJSON(field)
		if err != nil {
			return Record{}, err
		}
		rec.Set(key, v)
	}
	return rec, nil
}

// valueFromJSON maps one raw JSON value onto the Value union.
func valueFromJSON(raw json.RawMessage) (Value, error) {
	switch firstByte(raw) {
	case 'n':
		return NullValue(), nil
	case 't':
		return BoolValue(true), nil
	case 'f':
		return BoolValue(false), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case '[', '{':
		return NestedValue(string(raw)), nil
	default:
		return NumberValue(string(bytes.TrimSpace(raw))), nil
	}
}

func firstByte(raw []byte) byte {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func jsonSyntaxError(err error) *FormatError {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return formatErrorf("JSON001", "Invalid JSON: %s (at offset %d)", se.Error(), se.Offset)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return newFormatError("JSON001", "Invalid JSON: unexpected end of JSON input")
	}
	return formatErrorf("JSON001", "Invalid JSON: %v", err)
}
