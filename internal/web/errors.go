package web

// errors.go renders errors for the three kinds of client the server sees.
//
// Every error is:
//   - Logged with its technical text and request ID (server-side)
//   - Mapped through convert.MapError to a message, action and code
//   - Written as a partial (HX-Request), JSON (API) or plain text (no script)

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/csvjson/internal/convert"
	"github.com/JonMunkholm/csvjson/internal/web/templates"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON body of API errors. Error and Message carry the
// same text for clients that only read one of them.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errorView maps err to what the user sees. Detail is only exposed for
// conversion failures, whose text is about the user's own input.
func errorView(err error) *templates.ErrorView {
	msg := convert.MapError(err)
	view := &templates.ErrorView{
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}

	var convErr *convert.ConversionError
	if errors.As(err, &convErr) {
		view.Message = convErr.Message
		view.Detail = convErr.Detail
	}
	return view
}

// respondError logs err and writes it in the format the client expects.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	view := errorView(err)

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", view.Code,
		"request_id", chimw.GetReqID(r.Context()),
	)

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, view, statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, view, statusCode)
	default:
		respondErrorText(w, view, statusCode)
	}
}

func respondErrorJSON(w http.ResponseWriter, view *templates.ErrorView, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   view.Message,
		Message: view.Message,
		Detail:  view.Detail,
		Action:  view.Action,
		Code:    view.Code,
	})
}

func respondErrorText(w http.ResponseWriter, view *templates.ErrorView, statusCode int) {
	text := view.Message
	if view.Detail != "" {
		text += ": " + view.Detail
	}
	http.Error(w, text+" ("+view.Code+")", statusCode)
}

func renderErrorPartial(w http.ResponseWriter, r *http.Request, view *templates.ErrorView, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorAlert(view.Message, view.Detail, view.Action, view.Code).Render(r.Context(), w); err != nil {
		slog.Error("render error partial", "error", err)
	}
}

// isHTMX reports whether the request came from the page script.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
