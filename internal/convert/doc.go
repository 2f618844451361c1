// Package convert turns CSV text into JSON text and back.
//
// This package holds the whole conversion domain, independent of any UI or
// transport layer. The web server, tests and any future frontend call the same
// functions.
//
// # Data Model
//
// A [Record] is an ordered mapping from field name to [Value]. Field order
// follows the CSV header row or the key order of the JSON object it came from.
// A record set is a plain []Record.
//
// [Value] is a tagged union over the JSON scalar kinds plus two special cases:
//
//   - KindAbsent: the key is missing from the record
//   - KindNull: an explicit JSON null
//   - KindString, KindNumber, KindBool: the scalars
//   - KindNested: a JSON array or object, carried as compact JSON text
//
// Every kind has an explicit stringification rule (see [Value.String]) so the
// CSV serializer never relies on implicit coercion.
//
// # Conversion Flow
//
//	CSV -> JSON:  ParseCSV -> SerializeJSON (2-space indent)
//	JSON -> CSV:  ParseJSON -> SerializeCSV (unified header list)
//
// [Convert] is the dispatcher. It rejects blank input with [*EmptyInputError]
// before touching a parser and wraps every parse failure in a
// [*ConversionError] whose Detail carries the underlying [*FormatError] text.
//
// # Quoting
//
// The CSV parser is quote-aware (RFC 4180), so any record set produced by
// [SerializeCSV] parses back to the same strings, including values that
// contain commas, double quotes or line breaks.
//
// # Error Codes
//
// [MapError] maps technical errors to user-facing messages with a support
// code. See error_messages.go for the reference table.
package convert
