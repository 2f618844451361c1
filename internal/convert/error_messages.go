package convert

// error_messages.go maps technical errors to user-friendly messages.
//
// # Error Codes Reference
//
// Users can quote the code to support staff.
//
// # Input Errors (CONV001-CONV099)
//
//	CONV001 - Empty input: Please enter some data to convert
//	          Action: Paste CSV or JSON into the input box, or load a file
//	          Patterns: "please enter some data"
//
//	CONV002 - Unknown mode: Unsupported conversion direction
//	          Action: Choose CSV → JSON or JSON → CSV
//	          Patterns: "unknown mode"
//
//	CONV003 - Busy: Too many conversions are running
//	          Action: Try again in a few seconds
//	          Patterns: "too many concurrent"
//
// # CSV Errors (CSV001-CSV099)
//
//	CSV001 - Too few rows: CSV needs a header row and at least one data row
//	         Patterns: "at least a header row"
//
//	CSV002 - Empty header: A column header is empty
//	         Patterns: "headers cannot be empty"
//
//	CSV003 - Row width: A row has the wrong number of values
//	         Patterns: "values, expected"
//
//	CSV004 - Duplicate header: Two columns share the same header
//	         Patterns: "is duplicated"
//
//	CSV005 - Syntax: The CSV could not be parsed
//	         Patterns: "quoted-field"
//
// # JSON Errors (JSON001-JSON099)
//
//	JSON001 - Syntax: The JSON could not be parsed
//	          Patterns: "invalid json"
//
//	JSON002 - Not an array: Input must be an array of objects
//	          Patterns: "must be an array"
//
//	JSON003 - Empty array: The JSON array has no items
//	          Patterns: "array cannot be empty"
//
//	JSON004 - Non-object item: Every array item must be an object
//	          Patterns: "must be objects"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Too large: Input exceeds the size limit
//	          Patterns: "too large"
//
//	FILE002 - No file: No file was selected
//	          Patterns: "no file provided"
//
//	FILE003 - Bad request body: The request could not be read
//	          Patterns: "invalid form", "invalid request body"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Typed errors from this package (*EmptyInputError, *ModeError and
// *FormatError) are classified by type and Code, since their text can quote
// the user's input. Other errors are matched case-insensitively against the
// patterns with strings.Contains; the first match wins, so specific patterns
// come before general ones.

import (
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Input
	{
		pattern: "please enter some data",
		msg: UserMessage{
			Message: EmptyInputMessage,
			Action:  "Paste CSV or JSON into the input box, or load a file",
			Code:    "CONV001",
		},
	},
	{
		pattern: "unknown mode",
		msg: UserMessage{
			Message: "Unsupported conversion direction",
			Action:  "Choose CSV → JSON or JSON → CSV",
			Code:    "CONV002",
		},
	},
	{
		pattern: "too many concurrent",
		msg: UserMessage{
			Message: "The converter is busy",
			Action:  "Try again in a few seconds",
			Code:    "CONV003",
		},
	},

	// CSV
	{
		pattern: "at least a header row",
		msg: UserMessage{
			Message: "CSV needs a header row and at least one data row",
			Action:  "Add a first line with column names followed by your data",
			Code:    "CSV001",
		},
	},
	{
		pattern: "headers cannot be empty",
		msg: UserMessage{
			Message: "A column header is empty",
			Action:  "Give every column in the first line a name",
			Code:    "CSV002",
		},
	},
	{
		pattern: "values, expected",
		msg: UserMessage{
			Message: "A row has the wrong number of values",
			Action:  "Check the reported line for missing or extra commas",
			Code:    "CSV003",
		},
	},
	{
		pattern: "is duplicated",
		msg: UserMessage{
			Message: "Two columns share the same header",
			Action:  "Rename one of the duplicated columns",
			Code:    "CSV004",
		},
	},
	{
		pattern: "quoted-field",
		msg: UserMessage{
			Message: "The CSV could not be parsed",
			Action:  "Check the reported line for unbalanced quotes",
			Code:    "CSV005",
		},
	},

	// JSON
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "The JSON could not be parsed",
			Action:  "Check for missing commas, quotes or brackets near the reported offset",
			Code:    "JSON001",
		},
	},
	{
		pattern: "must be an array",
		msg: UserMessage{
			Message: "Input must be an array of objects",
			Action:  "Wrap your objects in [ and ]",
			Code:    "JSON002",
		},
	},
	{
		pattern: "array cannot be empty",
		msg: UserMessage{
			Message: "The JSON array has no items",
			Action:  "Add at least one object to the array",
			Code:    "JSON003",
		},
	},
	{
		pattern: "must be objects",
		msg: UserMessage{
			Message: "Every array item must be an object",
			Action:  "Remove null, number, string or nested array items",
			Code:    "JSON004",
		},
	},

	// File and request
	{
		pattern: "too large",
		msg: UserMessage{
			Message: "Input exceeds the size limit",
			Action:  "Convert a smaller file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a .csv or .json file to load",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Reload the page and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a JSON body with mode and input fields",
			Code:    "FILE003",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var emptyErr *EmptyInputError
	if errors.As(err, &emptyErr) {
		return messageForCode("CONV001")
	}
	var modeErr *ModeError
	if errors.As(err, &modeErr) {
		return messageForCode("CONV002")
	}
	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		return messageForCode(formatErr.Code)
	}
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return defaultMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}
	return defaultMessage
}

// messageForCode returns the first table entry with the given code.
func messageForCode(code string) UserMessage {
	for _, p := range errorPatterns {
		if p.msg.Code == code {
			return p.msg
		}
	}
	return defaultMessage
}
