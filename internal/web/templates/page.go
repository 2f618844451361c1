package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// Page renders the full document around the workspace.
func Page(v WorkspaceView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>CSV ⇄ JSON Converter</title>
<link rel="stylesheet" href="/static/style.css">
<script src="/static/app.js" defer></script>
</head>
<body>
<main class="container">
<header><h1>CSV ⇄ JSON Converter</h1><p class="lead">Paste data or load a file, pick a direction, convert.</p></header>
<div id="flash" role="alert"></div>
<div id="workspace">`)
		if h.err == nil {
			h.err = Workspace(v).Render(ctx, h.w)
		}
		h.raw(`</div>
</main>
</body>
</html>
`)
	})
}

// Workspace renders the input form, the file loader and the result panel.
// It is the unit swapped by partial requests.
func Workspace(v WorkspaceView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<form id="convert-form" method="post" action="/convert" data-enhance>`)
		h.raw(`<fieldset class="modes"><legend>Direction</legend>`)
		for _, m := range Modes {
			h.raw(`<label><input type="radio" name="mode" value="`)
			h.text(m.Value)
			h.raw(`"`)
			if m.Value == v.Mode {
				h.raw(` checked`)
			}
			h.raw(`> `)
			h.text(m.Label)
			h.raw(`</label>`)
		}
		h.raw(`<button type="submit" formaction="/mode" class="secondary">Toggle</button></fieldset>`)

		h.raw(`<label for="input">`)
		h.text(v.InputFormat)
		h.raw(` input</label>`)
		// The newline after the open tag is dropped by HTML parsers, so a
		// leading newline in Input survives.
		h.raw(`<textarea id="input" name="input" rows="14" spellcheck="false" placeholder="`)
		h.text(placeholder(v.InputFormat))
		h.raw("\">\n")
		h.text(v.Input)
		h.raw(`</textarea>`)

		h.raw(`<div class="actions"><button type="submit">Convert</button>`)
		h.raw(`<button type="submit" formaction="/swap" class="secondary"`)
		if v.State != "success" {
			h.raw(` disabled`)
		}
		h.raw(`>Swap</button>`)
		h.raw(`<button type="submit" formaction="/clear" class="secondary">Clear</button></div>`)
		h.raw(`</form>`)

		h.raw(`<form id="upload-form" method="post" action="/upload" enctype="multipart/form-data" data-enhance>`)
		h.raw(`<input type="hidden" name="mode" value="`)
		h.text(v.Mode)
		h.raw(`"><label>Load file <input type="file" name="file" accept=".csv,.json,.txt,text/csv,application/json"></label>`)
		h.raw(`<button type="submit" class="secondary">Load</button>`)
		if v.FileName != "" {
			h.raw(`<span class="filename">`)
			h.text(v.FileName)
			h.raw(`</span>`)
		}
		h.raw(`</form>`)

		h.raw(`<section class="result state-`)
		h.text(v.State)
		h.raw(`" aria-live="polite">`)
		switch {
		case v.Error != nil:
			if h.err == nil {
				h.err = ErrorAlert(v.Error.Message, v.Error.Detail, v.Error.Action, v.Error.Code).Render(ctx, h.w)
			}
		case v.State == "success":
			renderOutput(h, v)
		default:
			h.raw(`<p class="hint">Converted `)
			h.text(v.OutputFormat)
			h.raw(` appears here.</p>`)
		}
		h.raw(`</section>`)
	})
}

func renderOutput(h *htmlWriter, v WorkspaceView) {
	h.raw(`<p class="stats">`)
	h.text(plural(v.Records, "record"))
	h.raw(` · `)
	h.text(plural(v.Columns, "column"))
	h.raw(`</p>`)

	h.raw(`<label for="output">`)
	h.text(v.OutputFormat)
	h.raw(` output</label>`)
	h.raw("<textarea id=\"output\" rows=\"14\" readonly spellcheck=\"false\">\n")
	h.text(v.Output)
	h.raw(`</textarea>`)

	h.raw(`<div class="actions">`)
	h.raw(`<button type="submit" form="convert-form" formaction="/download" data-native>Download `)
	h.text(v.DownloadName)
	h.raw(`</button>`)
	h.raw(`<button type="button" class="secondary" data-copy="#output">Copy</button>`)
	h.raw(`</div>`)
}

func placeholder(format string) string {
	if format == "JSON" {
		return `[{"name": "Ada", "age": 36}]`
	}
	return "name,age\nAda,36"
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
