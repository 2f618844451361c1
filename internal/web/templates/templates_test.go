package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, v WorkspaceView, full bool) string {
	t.Helper()
	var buf bytes.Buffer
	c := Workspace(v)
	if full {
		c = Page(v)
	}
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func idleView() WorkspaceView {
	return WorkspaceView{
		Mode:         "csv-to-json",
		ModeLabel:    "CSV → JSON",
		InputFormat:  "CSV",
		OutputFormat: "JSON",
		State:        "idle",
		DownloadName: "converted.json",
	}
}

func TestWorkspace_Idle(t *testing.T) {
	out := renderString(t, idleView(), false)

	assert.Contains(t, out, `value="csv-to-json" checked`)
	assert.NotContains(t, out, `value="json-to-csv" checked`)
	assert.Contains(t, out, "CSV input")
	assert.Contains(t, out, "Converted JSON appears here.")
	assert.Contains(t, out, `formaction="/swap" class="secondary" disabled`)
	assert.NotContains(t, out, `id="output"`)
	assert.NotContains(t, out, "<!DOCTYPE html>")
}

func TestWorkspace_EscapesInput(t *testing.T) {
	v := idleView()
	v.Input = `</textarea><script>alert("x")</script>`
	v.FileName = `<b>data.csv</b>`

	out := renderString(t, v, false)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;/textarea&gt;&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;")
	assert.Contains(t, out, "&lt;b&gt;data.csv&lt;/b&gt;")
}

func TestWorkspace_Success(t *testing.T) {
	v := idleView()
	v.State = "success"
	v.Input = "a\n1"
	v.Output = `[{"a": "1"}]`
	v.Records = 1
	v.Columns = 1

	out := renderString(t, v, false)

	assert.Contains(t, out, "1 record · 1 column")
	assert.Contains(t, out, `id="output"`)
	assert.Contains(t, out, "[{&#34;a&#34;: &#34;1&#34;}]")
	assert.Contains(t, out, "Download converted.json")
	assert.Contains(t, out, `data-copy="#output"`)
	assert.NotContains(t, out, "disabled")
}

func TestWorkspace_Failed(t *testing.T) {
	v := idleView()
	v.State = "failed"
	v.Error = &ErrorView{
		Message: "Conversion failed",
		Detail:  "line 3 has 1 values, expected 2",
		Code:    "CSV003",
	}

	out := renderString(t, v, false)

	assert.Contains(t, out, `class="result state-failed"`)
	assert.Contains(t, out, "<strong>Conversion failed</strong>")
	assert.Contains(t, out, "line 3 has 1 values, expected 2")
	assert.Contains(t, out, "CSV003")
	assert.NotContains(t, out, `id="output"`)
}

func TestPage_WrapsWorkspace(t *testing.T) {
	out := renderString(t, idleView(), true)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `<div id="workspace"><form id="convert-form"`)
	assert.Contains(t, out, `<script src="/static/app.js" defer></script>`)
}

func TestErrorAlert_OmitsEmptyParts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorAlert("Too many requests", "", "", "RATE001").Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Too many requests")
	assert.Contains(t, out, `<span class="code">RATE001</span>`)
	assert.NotContains(t, out, `class="detail"`)
	assert.NotContains(t, out, `class="action"`)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 records", plural(0, "record"))
	assert.Equal(t, "1 record", plural(1, "record"))
	assert.Equal(t, "2 columns", plural(2, "column"))
}
