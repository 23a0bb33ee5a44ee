// Package page renders the static HTML document that hosts a slipper.
//
// The document carries the three elements the browser controller binds to:
// the hidden ciphertext field, the password input and the output region.
package page

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
)

// Element IDs and class names shared with the wasm host
const (
	CipherTextID = "slipper-cypher-text"
	InputID      = "slipper-input"
	OutputID     = "slipper-output"
	ClockClass   = "c12-clock"
)

const (
	DefaultTitle    = "slipper"
	DefaultPrompt   = "Password"
	DefaultWasmPath = "slipper.wasm"
	DefaultExecPath = "wasm_exec.js"
)

var ErrInvalidCipherHex = errors.New("ciphertext must be non-empty, even-length lowercase hex")

var cipherHexPattern = regexp.MustCompile(`^(?:[0-9a-f]{2})+$`)

// Page is the content of one host document
type Page struct {
	Title     string
	Prompt    string
	CipherHex string
	Clock     bool
	WasmPath  string
	ExecPath  string
}

type view struct {
	Page
	CipherTextID string
	InputID      string
	OutputID     string
	ClockClass   string
}

var tmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<meta name="slipper-wasm" content="{{.WasmPath}}">
<script src="{{.ExecPath}}"></script>
<script>
const go = new Go();
const wasm = document.querySelector('meta[name="slipper-wasm"]').content;
WebAssembly.instantiateStreaming(fetch(wasm), go.importObject).then((result) => go.run(result.instance));
</script>
</head>
<body>
{{- if .Clock}}
<p><span class="{{.ClockClass}}"></span></p>
{{- end}}
<input id="{{.CipherTextID}}" type="hidden" value="{{.CipherHex}}">
<label for="{{.InputID}}">{{.Prompt}}</label>
<input id="{{.InputID}}" type="text" autocomplete="off" autocapitalize="off" spellcheck="false">
<div id="{{.OutputID}}"></div>
</body>
</html>
`))

// Validate checks that p can be rendered into a working page
func (p Page) Validate() error {
	if !cipherHexPattern.MatchString(p.CipherHex) {
		return ErrInvalidCipherHex
	}
	return nil
}

// Render writes the host document for p to w
func Render(w io.Writer, p Page) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Prompt == "" {
		p.Prompt = DefaultPrompt
	}
	if p.WasmPath == "" {
		p.WasmPath = DefaultWasmPath
	}
	if p.ExecPath == "" {
		p.ExecPath = DefaultExecPath
	}

	v := view{
		Page:         p,
		CipherTextID: CipherTextID,
		InputID:      InputID,
		OutputID:     OutputID,
		ClockClass:   ClockClass,
	}
	if err := tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
