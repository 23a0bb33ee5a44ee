package cmd

import (
	"context"
	"fmt"
)

// List shows the pages in the store. No password is needed.
func List(ctx context.Context, env *Env) {
	info, err := env.Store().Status(ctx)
	if err != nil {
		HandleError(err)
	}

	p := info.Params
	fmt.Fprintf(env.Stdout, "Store: %s\n", env.Config.StorePath)
	fmt.Fprintf(env.Stdout, "Key derivation: PBKDF2-%s, %d iterations, %d bytes\n", p.Hash, p.Iterations, p.Length)
	if !info.Modified.IsZero() {
		fmt.Fprintf(env.Stdout, "Modified: %s\n", info.Modified.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(env.Stdout)

	if len(info.Pages) == 0 {
		fmt.Fprintln(env.Stdout, "No pages")
		return
	}

	fmt.Fprintf(env.Stdout, "Pages (%d, %s):\n", len(info.Pages), formatSize(int64(info.Bytes)))
	for _, e := range info.Pages {
		fmt.Fprintf(env.Stdout, "  %s (%s, %s)\n", e.Name, formatSize(int64(e.Size)), e.Modified.Local().Format("2006-01-02 15:04"))
	}
}
