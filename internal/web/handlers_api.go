package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/csvjson/internal/convert"
	"github.com/JonMunkholm/csvjson/internal/session"
)

// ConvertRequest is the body of POST /api/convert.
type ConvertRequest struct {
	Mode  string `json:"mode"`
	Input string `json:"input"`
}

// ConvertResponse is the success body of POST /api/convert.
type ConvertResponse struct {
	Output   string `json:"output"`
	Filename string `json:"filename"`
	Records  int    `json:"records"`
	Columns  int    `json:"columns"`
}

// handleAPIConvert runs one conversion for scripted clients. Input is taken
// verbatim; line endings are not normalized.
func (s *Server) handleAPIConvert(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.Convert.MaxInputBytes
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(limit))

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		err = decodeError(err)
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}

	mode, err := convert.ParseMode(req.Mode)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if int64(len(req.Input)) > limit {
		err := fmt.Errorf("%w: %d bytes, limit %d", errInputTooLarge, len(req.Input), limit)
		s.respondError(w, r, err, http.StatusRequestEntityTooLarge)
		return
	}

	sess := session.Reduce(session.New(mode), session.InputChanged{Text: req.Input})
	sess, err = s.runConversion(w, r, sess)
	if err != nil {
		s.respondError(w, r, err, requestErrorStatus(err))
		return
	}
	if sess.Err != nil {
		s.respondError(w, r, sess.Err, conversionErrorStatus(sess.Err))
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Output:   sess.Output,
		Filename: sess.DownloadName(),
		Records:  sess.Records,
		Columns:  sess.Columns,
	})
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: request exceeds %d bytes", errInputTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("invalid request body: %v", err)
}
