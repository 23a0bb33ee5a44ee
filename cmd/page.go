package cmd

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/illarion/slipper/internal/page"
)

// PageOptions are the flags of the page command
type PageOptions struct {
	Name     string
	Hex      string
	Out      string // file inside the working directory; stdout when empty
	Title    string
	Prompt   string
	Clock    bool
	WasmPath string
	ExecPath string
}

// Page renders the host page for a sealed page
func Page(env *Env, opts PageOptions) {
	p := page.Page{
		Title:     opts.Title,
		Prompt:    opts.Prompt,
		CipherHex: pageCipherHex(env.Store(), opts.Name, opts.Hex),
		Clock:     opts.Clock,
		WasmPath:  opts.WasmPath,
		ExecPath:  opts.ExecPath,
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, p); err != nil {
		HandleError(err)
	}

	if opts.Out == "" {
		if _, err := env.Stdout.Write(buf.Bytes()); err != nil {
			HandleError(err)
		}
		return
	}

	ws := env.Workspace()
	defer ws.Close()

	if err := ws.WriteFile(opts.Out, buf.Bytes(), 0644); err != nil {
		HandleError(err)
	}
	env.Logger.Debug("page written", slog.String("path", opts.Out), slog.Int("bytes", buf.Len()))
	fmt.Fprintf(env.Stdout, "Wrote %s (%s)\n", opts.Out, formatSize(int64(buf.Len())))
}
