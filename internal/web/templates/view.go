// Package templates renders the converter's HTML page and HTMX partials.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// WorkspaceView is everything the workspace partial needs to render.
type WorkspaceView struct {
	Mode         string // form value, "csv-to-json" or "json-to-csv"
	ModeLabel    string
	InputFormat  string
	OutputFormat string

	Input    string
	FileName string

	State        string // "idle", "success" or "failed"
	Output       string
	Records      int
	Columns      int
	DownloadName string

	Error *ErrorView
}

// ErrorView is a mapped user-facing error.
type ErrorView struct {
	Message string
	Detail  string
	Action  string
	Code    string
}

// ModeOption is one entry of the direction selector.
type ModeOption struct {
	Value string
	Label string
}

// Modes lists the selectable directions in display order.
var Modes = []ModeOption{
	{Value: "csv-to-json", Label: "CSV → JSON"},
	{Value: "json-to-csv", Label: "JSON → CSV"},
}

// htmlWriter writes markup and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// component adapts a render func that writes through htmlWriter.
func component(render func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		render(ctx, h)
		return h.err
	})
}
