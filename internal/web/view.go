package web

import (
	"github.com/JonMunkholm/csvjson/internal/session"
	"github.com/JonMunkholm/csvjson/internal/web/templates"
)

// workspaceView flattens a session for the templates.
func workspaceView(sess session.Session) templates.WorkspaceView {
	v := templates.WorkspaceView{
		Mode:         sess.Mode.String(),
		ModeLabel:    sess.Mode.Label(),
		InputFormat:  sess.Mode.InputFormat(),
		OutputFormat: sess.Mode.OutputFormat(),
		Input:        sess.Input,
		FileName:     sess.FileName,
		State:        sess.State().String(),
		Output:       sess.Output,
		Records:      sess.Records,
		Columns:      sess.Columns,
		DownloadName: sess.DownloadName(),
	}
	if sess.Err != nil {
		v.Error = errorView(sess.Err)
	}
	return v
}
