package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JonMunkholm/csvjson/internal/convert"
	"github.com/JonMunkholm/csvjson/internal/limiter"
	"github.com/JonMunkholm/csvjson/internal/logging"
	"github.com/JonMunkholm/csvjson/internal/metrics"
	"github.com/JonMunkholm/csvjson/internal/session"
	"github.com/JonMunkholm/csvjson/internal/web/middleware"
	"github.com/JonMunkholm/csvjson/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/google/uuid"
)

// handleIndex renders the page with an idle session. ?mode= preselects the
// direction; an unknown value falls back to CSV → JSON.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	mode, _ := convert.ParseMode(r.URL.Query().Get("mode"))
	s.render(w, r, session.New(mode))
}

// handleConvert converts the submitted input. Conversion failures are part
// of the workspace, not HTTP errors.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromForm(w, r)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	sess, err = s.runConversion(w, r, sess)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	s.render(w, r, sess)
}

// handleToggleMode flips the direction and keeps the input.
func (s *Server) handleToggleMode(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromForm(w, r)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	s.render(w, r, session.Reduce(sess, session.ModeToggled{}))
}

// handleSwap converts the input and, on success, moves the output into the
// input with the direction flipped. A failed conversion is shown as is.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromForm(w, r)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	sess, err = s.runConversion(w, r, sess)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	s.render(w, r, session.Reduce(sess, session.Swapped{}))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromForm(w, r)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	s.render(w, r, session.Reduce(sess, session.Cleared{}))
}

// handleUpload loads a file into the input. It does not convert.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	logging.FromContext(r.Context()).Info("file loaded",
		"file", sess.FileName,
		"bytes", len(sess.Input),
		"mode", sess.Mode.String(),
	)
	s.render(w, r, sess)
}

// handleDownload re-runs the conversion and serves the output as an
// attachment named after the output format.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromForm(w, r)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}

	sess, err = s.runConversion(w, r, sess)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	if sess.Err != nil {
		s.respondError(w, r, sess.Err, conversionErrorStatus(sess.Err))
		return
	}

	w.Header().Set("Content-Type", sess.Mode.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+sess.DownloadName()+`"`)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write([]byte(sess.Output)); err != nil {
		logging.FromContext(r.Context()).Warn("download write failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// render writes the workspace partial for script requests and the full page
// otherwise.
func (s *Server) render(w http.ResponseWriter, r *http.Request, sess session.Session) {
	view := workspaceView(sess)

	var c templ.Component
	if isHTMX(r) {
		c = templates.Workspace(view)
	} else {
		c = templates.Page(view)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
	}
}

// runConversion applies ConvertRequested to sess under a limiter slot,
// tagging the response with a conversion ID and recording logs and metrics.
// The returned error is only set when no slot was available; conversion
// failures are reported in the session.
func (s *Server) runConversion(w http.ResponseWriter, r *http.Request, sess session.Session) (session.Session, error) {
	if err := s.gate.Acquire(r.Context()); err != nil {
		return sess, err
	}
	defer s.gate.Release()

	id := uuid.NewString()
	w.Header().Set(middleware.ConversionIDHeader, id)

	start := time.Now()
	sess = session.Reduce(sess, session.ConvertRequested{})
	elapsed := time.Since(start)

	outcome := conversionOutcome(sess.Err)
	s.metrics.ObserveConversion(sess.Mode.String(), outcome, elapsed, len(sess.Input), sess.Records)

	log := logging.WithFields(r.Context(),
		"conversion_id", id,
		"mode", sess.Mode.String(),
		"bytes", len(sess.Input),
		"duration_ms", elapsed.Milliseconds(),
	)
	if sess.Err != nil {
		log.Info("conversion failed", "outcome", outcome, "error", sess.Err)
	} else {
		log.Info("conversion finished", "records", sess.Records, "columns", sess.Columns)
	}
	return sess, nil
}

func conversionOutcome(err error) string {
	var empty *convert.EmptyInputError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &empty):
		return metrics.OutcomeEmptyInput
	default:
		return metrics.OutcomeFormatError
	}
}

// conversionErrorStatus is 400 for empty input and 422 for input that could
// not be converted.
func conversionErrorStatus(err error) int {
	var empty *convert.EmptyInputError
	if errors.As(err, &empty) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

// requestErrorStatus maps errors raised before any conversion runs.
func requestErrorStatus(err error) int {
	switch {
	case errors.Is(err, errInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, limiter.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
