package convert

import (
	"fmt"
	"strings"
)

// Mode selects the conversion direction.
type Mode int

const (
	CSVToJSON Mode = iota
	JSONToCSV
)

// String returns the form value used for m in requests and logs.
func (m Mode) String() string {
	switch m {
	case CSVToJSON:
		return "csv-to-json"
	case JSONToCSV:
		return "json-to-csv"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label returns the human-readable direction, e.g. "CSV → JSON".
func (m Mode) Label() string {
	if m == JSONToCSV {
		return "JSON → CSV"
	}
	return "CSV → JSON"
}

// Toggle returns the opposite direction.
func (m Mode) Toggle() Mode {
	if m == JSONToCSV {
		return CSVToJSON
	}
	return JSONToCSV
}

// InputFormat and OutputFormat name the formats on each side, "CSV" or "JSON".
func (m Mode) InputFormat() string {
	if m == JSONToCSV {
		return "JSON"
	}
	return "CSV"
}

func (m Mode) OutputFormat() string {
	return m.Toggle().InputFormat()
}

// DownloadName is the attachment name for converted output.
func (m Mode) DownloadName() string {
	if m == JSONToCSV {
		return "converted.csv"
	}
	return "converted.json"
}

// ContentType is the MIME type of converted output.
func (m Mode) ContentType() string {
	if m == JSONToCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// ParseMode accepts the String form of a mode. Empty input means CSVToJSON.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv-to-json":
		return CSVToJSON, nil
	case "json-to-csv":
		return JSONToCSV, nil
	default:
		return CSVToJSON, &ModeError{Value: s}
	}
}

// ModeForFile guesses a mode from a file name extension. ok is false when the
// extension is neither .csv nor .json.
func ModeForFile(name string) (m Mode, ok bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return CSVToJSON, true
	case strings.HasSuffix(lower, ".json"):
		return JSONToCSV, true
	default:
		return CSVToJSON, false
	}
}

// Result is the outcome of a successful conversion.
type Result struct {
	Output  string
	Records int
	Columns int
}

// Convert runs one conversion.
//
// Blank input fails with *EmptyInputError and no parser runs. Parse failures
// are returned as *ConversionError wrapping the *FormatError.
func Convert(mode Mode, input string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, &EmptyInputError{}
	}

	switch mode {
	case CSVToJSON:
		records, err := ParseCSV(input)
		if err != nil {
			return Result{}, newConversionError(mode, err)
		}
		out, err := SerializeJSON(records)
		if err != nil {
			return Result{}, newConversionError(mode, err)
		}
		return Result{Output: out, Records: len(records), Columns: len(Headers(records))}, nil

	case JSONToCSV:
		records, err := ParseJSON(input)
		if err != nil {
			return Result{}, newConversionError(mode, err)
		}
		headers := Headers(records)
		return Result{Output: SerializeCSV(records), Records: len(records), Columns: len(headers)}, nil

	default:
		return Result{}, newConversionError(mode, &ModeError{Value: mode.String()})
	}
}
