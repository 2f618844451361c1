package templates

import (
	"context"

	"github.com/a-h/templ"
)

// ErrorAlert renders a user-facing error with its code. detail and action
// are optional.
func ErrorAlert(message, detail, action, code string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="alert alert-error">`)
		h.raw(`<strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if detail != "" {
			h.raw(`<p class="detail">`)
			h.text(detail)
			h.raw(`</p>`)
		}
		if action != "" {
			h.raw(`<p class="action">`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<span class="code">`)
			h.text(code)
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
	})
}
