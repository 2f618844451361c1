package convert

import "strings"

// SerializeCSV renders records as CSV text.
//
// The header row is the unified header list of the set (see Headers), so a
// record missing a field gets an empty cell instead of a short row. Missing
// and null values render as empty fields. Every other value is stringified
// first and then escaped. Rows are joined with \n and there is no trailing
// newline.
func SerializeCSV(records []Record) string {
	headers := Headers(records)

	var b strings.Builder
	writeCSVRow(&b, headers)

	row := make([]string, len(headers))
	for _, rec := range records {
		for i, h := range headers {
			v, ok := rec.Get(h)
			if !ok || v.IsEmpty() {
				row[i] = ""
				continue
			}
			row[i] = v.String()
		}
		b.WriteByte('\n')
		writeCSVRow(&b, row)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSVField(f))
	}
}

// escapeCSVField quotes s when it contains a comma, a double quote or a line
// break, doubling every embedded quote.
func escapeCSVField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
