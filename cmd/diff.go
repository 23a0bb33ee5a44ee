package cmd

import (
	"context"
	"fmt"
)

// Diff compares a sealed page's plaintext with a local file
func Diff(ctx context.Context, env *Env, name, file string) {
	ws := env.Workspace()
	defer ws.Close()

	local, err := ws.ReadFile(file)
	if err != nil {
		HandleError(err)
	}

	s := env.Store()
	out, err := s.Diff(ctx, name, env.PagePassword(s, name), local)
	if err != nil {
		HandleError(err)
	}

	if out == "" {
		fmt.Fprintf(env.Stdout, "%s matches %s\n", name, file)
		return
	}
	fmt.Fprint(env.Stdout, out)
}
