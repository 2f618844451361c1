package convert

import "fmt"

// User-facing messages. Tests and MapError match on these.
const (
	EmptyInputMessage = "Please enter some data to convert"
	FailedMessage     = "Conversion failed"

	msgTooFewRows     = "CSV must contain at least a header row and one data row"
	msgEmptyHeader    = "CSV headers cannot be empty"
	msgNotArray       = "Input must be an array of objects"
	msgEmptyArray     = "JSON array cannot be empty"
	msgNonObjectItems = "All items in the array must be objects"
)

// FormatError reports a structural problem with CSV or JSON input.
// Code is the MapError code chosen where the error is raised; Msg may quote
// the user's input and is never used for classification.
type FormatError struct {
	Code string
	Msg  string
}

func (e *FormatError) Error() string {
	return e.Msg
}

func newFormatError(code, msg string) *FormatError {
	return &FormatError{Code: code, Msg: msg}
}

func formatErrorf(code, format string, args ...any) *FormatError {
	return &FormatError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// ModeError reports a conversion direction that is not supported.
type ModeError struct {
	Value string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("unknown mode %q", e.Value)
}

// EmptyInputError is returned by Convert for blank input. It carries no detail.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return EmptyInputMessage
}

// ConversionError wraps a parse failure at the dispatcher boundary.
// Message is always FailedMessage; Detail is the underlying error text.
type ConversionError struct {
	Mode    Mode
	Message string
	Detail  string
	Err     error
}

func (e *ConversionError) Error() string {
	return e.Message + ": " + e.Detail
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func newConversionError(mode Mode, err error) *ConversionError {
	return &ConversionError{
		Mode:    mode,
		Message: FailedMessage,
		Detail:  err.Error(),
		Err:     err,
	}
}
