package convert

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ParseCSV parses comma-separated text into records keyed by the header row.
//
// The whole input is trimmed first. Rows end in \n or \r\n. Quoted fields may
// contain commas, doubled quotes and line breaks. Empty and whitespace-only
// lines are skipped.
// Headers and values are trimmed. Every data row must have exactly as many
// values as the header; a mismatch reports the source line (header is line 1).
func ParseCSV(text string) ([]Record, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err == io.EOF {
		return nil, newFormatError("CSV001", msgTooFewRows)
	}
	if err != nil {
		return nil, csvSyntaxError(err)
	}

	row, err := readRow(r)
	if err == io.EOF {
		return nil, newFormatError("CSV001", msgTooFewRows)
	}
	if err != nil {
		return nil, csvSyntaxError(err)
	}

	headers, err := parseHeaders(headerRow)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		if len(row) != len(headers) {
			line, _ := r.FieldPos(0)
			return nil, formatErrorf("CSV003", "line %d has %d values, expected %d", line, len(row), len(headers))
		}

		var rec Record
		for i, h := range headers {
			rec.Set(h, StringValue(strings.TrimSpace(row[i])))
		}
		records = append(records, rec)

		row, err = readRow(r)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, csvSyntaxError(err)
		}
	}
}

// readRow returns the next row, skipping whitespace-only lines. encoding/csv
// already drops empty lines but reports "   " as a row with one blank field.
func readRow(r *csv.Reader) ([]string, error) {
	for {
		row, err := r.Read()
		if err != nil {
			return nil, err
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		return row, nil
	}
}

// parseHeaders trims the header row and rejects empty or repeated names.
func parseHeaders(row []string) ([]string, error) {
	headers := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, newFormatError("CSV002", msgEmptyHeader)
		}
		if seen[h] {
			return nil, formatErrorf("CSV004", "CSV header %q is duplicated", h)
		}
		seen[h] = true
		headers[i] = h
	}
	return headers, nil
}

func csvSyntaxError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return formatErrorf("CSV005", "line %d: %v", pe.Line, pe.Err)
	}
	return newFormatError("CSV005", err.Error())
}
