package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/illarion/slipper/internal/keyring"
)

// Remove deletes pages matching patterns and forgets their keyring entries
func Remove(ctx context.Context, env *Env, patterns []string) {
	if len(patterns) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one page argument\n")
		fmt.Fprintf(os.Stderr, "Usage: slipper rm <page> [page...]\n")
		os.Exit(1)
	}

	s := env.Store()
	removed, err := s.Remove(ctx, patterns)
	for _, name := range removed {
		fmt.Fprintf(env.Stdout, "Removed %s\n", name)
	}
	if err != nil {
		HandleError(err)
	}

	if !env.Config.NoKeyring {
		if vaultID, err := s.GetVaultID(); err == nil {
			for _, name := range removed {
				if err := keyring.DeletePassword(vaultID, name); err != nil {
					env.Logger.Warn("failed to remove keyring entry", slog.String("page", name), slog.Any("error", err))
				}
			}
		}
	}

	if err := s.Compact(); err != nil {
		env.Logger.Warn("compaction failed", slog.Any("error", err))
	}
}
