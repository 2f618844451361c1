// Package session models the converter's UI state as an immutable value and
// a pure reducer, so the conversion flow can be tested without a browser.
//
// A Session moves Idle -> Success or Idle -> Failed on ConvertRequested and
// returns to Idle on any input change or mode change. Output and Err are
// mutually exclusive: setting one always clears the other.
package session

import (
	"github.com/JonMunkholm/csvjson/internal/convert"
)

// State is the observable conversion state.
type State int

const (
	Idle State = iota
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Session is the full UI state. Treat it as a value; Reduce returns a copy.
type Session struct {
	Mode     convert.Mode
	Input    string
	Output   string
	Err      error
	FileName string // last loaded file, informational only

	// Stats of the last successful conversion.
	Records int
	Columns int
}

// New returns an idle session in the given mode.
func New(mode convert.Mode) Session {
	return Session{Mode: mode}
}

// State derives the conversion state from Output and Err.
func (s Session) State() State {
	switch {
	case s.Err != nil:
		return Failed
	case s.Output != "":
		return Success
	default:
		return Idle
	}
}

// DownloadName is the file name offered for the current output.
func (s Session) DownloadName() string {
	return s.Mode.DownloadName()
}

func (s Session) clearResult() Session {
	s.Output = ""
	s.Err = nil
	s.Records = 0
	s.Columns = 0
	return s
}

// Event is something the user did. The set of events is closed.
type Event interface {
	apply(Session) Session
}

// Reduce applies e to s and returns the new session. s is not modified.
func Reduce(s Session, e Event) Session {
	if e == nil {
		return s
	}
	return e.apply(s)
}

// InputChanged replaces the input text.
type InputChanged struct {
	Text string
}

func (e InputChanged) apply(s Session) Session {
	s = s.clearResult()
	s.Input = e.Text
	return s
}

// ModeToggled flips the conversion direction.
type ModeToggled struct{}

func (ModeToggled) apply(s Session) Session {
	s = s.clearResult()
	s.Mode = s.Mode.Toggle()
	return s
}

// ModeSelected sets the conversion direction explicitly.
type ModeSelected struct {
	Mode convert.Mode
}

func (e ModeSelected) apply(s Session) Session {
	s = s.clearResult()
	s.Mode = e.Mode
	return s
}

// FileLoaded replaces the input with a file's text. A .csv or .json name
// preselects the matching mode; other names keep the current mode. The name
// never affects validation.
type FileLoaded struct {
	Name string
	Text string
}

func (e FileLoaded) apply(s Session) Session {
	s = s.clearResult()
	s.Input = e.Text
	s.FileName = e.Name
	if m, ok := convert.ModeForFile(e.Name); ok {
		s.Mode = m
	}
	return s
}

// ConvertRequested runs the conversion for the current mode and input.
type ConvertRequested struct{}

func (ConvertRequested) apply(s Session) Session {
	s = s.clearResult()
	res, err := convert.Convert(s.Mode, s.Input)
	if err != nil {
		s.Err = err
		return s
	}
	s.Output = res.Output
	s.Records = res.Records
	s.Columns = res.Columns
	return s
}

// Swapped moves a successful output into the input and flips the mode, so
// the result can be converted back. It is a no-op unless State is Success.
type Swapped struct{}

func (Swapped) apply(s Session) Session {
	if s.State() != Success {
		return s
	}
	out := s.Output
	s = s.clearResult()
	s.Input = out
	s.Mode = s.Mode.Toggle()
	s.FileName = ""
	return s
}

// Cleared empties input and result but keeps the mode.
type Cleared struct{}

func (Cleared) apply(s Session) Session {
	return New(s.Mode)
}
