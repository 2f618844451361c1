package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/csvjson/internal/convert"
	"github.com/JonMunkholm/csvjson/internal/session"
)

var (
	errInputTooLarge = errors.New("input too large")
	errInvalidForm   = errors.New("invalid form data")
	errNoFile        = errors.New("no file provided")
)

// utf8BOM is stripped from uploaded files; spreadsheet exports on Windows
// commonly start with it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bodyLimit bounds a request body carrying up to limit bytes of input.
// URL encoding can triple the size of non-ASCII text and multipart adds
// headers, hence the factor and the fixed overhead.
func bodyLimit(limit int64) int64 {
	return 3*limit + 64<<10
}

// sessionFromForm builds a session from the mode and input form fields.
// It does not run the conversion.
func (s *Server) sessionFromForm(w http.ResponseWriter, r *http.Request) (session.Session, error) {
	limit := s.cfg.Convert.MaxInputBytes
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(limit))

	if err := r.ParseForm(); err != nil {
		return session.Session{}, formError(err)
	}

	mode, err := convert.ParseMode(r.PostFormValue("mode"))
	if err != nil {
		return session.Session{}, err
	}

	input := r.PostFormValue("input")
	if int64(len(input)) > limit {
		return session.Session{}, fmt.Errorf("%w: %d bytes, limit %d", errInputTooLarge, len(input), limit)
	}

	sess := session.Reduce(session.New(convert.CSVToJSON), session.ModeSelected{Mode: mode})
	return session.Reduce(sess, session.InputChanged{Text: normalizeNewlines(input)}), nil
}

// sessionFromUpload loads the multipart "file" field into a session. The
// "mode" field is the fallback when the extension is not .csv or .json.
func (s *Server) sessionFromUpload(w http.ResponseWriter, r *http.Request) (session.Session, error) {
	limit := s.cfg.Convert.MaxInputBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)

	if err := r.ParseMultipartForm(limit); err != nil {
		return session.Session{}, formError(err)
	}

	mode, err := convert.ParseMode(r.FormValue("mode"))
	if err != nil {
		return session.Session{}, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return session.Session{}, errNoFile
	}
	defer file.Close()

	text, err := readText(file, limit)
	if err != nil {
		return session.Session{}, err
	}

	sess := session.Reduce(session.New(convert.CSVToJSON), session.ModeSelected{Mode: mode})
	return session.Reduce(sess, session.FileLoaded{Name: header.Filename, Text: text}), nil
}

// readText reads at most limit bytes of r as text. A leading UTF-8 BOM is
// dropped and invalid UTF-8 sequences become U+FFFD.
func readText(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+int64(len(utf8BOM))+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: limit %d bytes", errInputTooLarge, limit)
	}
	return normalizeNewlines(strings.ToValidUTF8(string(data), "\uFFFD")), nil
}

// normalizeNewlines converts CRLF and lone CR line endings to LF, as a
// browser textarea would.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: request exceeds %d bytes", errInputTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", errInvalidForm, err)
}
