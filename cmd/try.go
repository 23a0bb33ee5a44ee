package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/illarion/slipper/internal/guess"
)

type staticSource string

func (s staticSource) Value() string { return string(s) }

// printOutput prints the output element text whenever it changes
type printOutput struct {
	w    io.Writer
	last string
}

func (o *printOutput) SetText(text string) {
	if text == o.last {
		return
	}
	o.last = text
	fmt.Fprintln(o.w, text)
}

// Try replays stdin lines as input events against a page. With wait set,
// every attempt finishes before the next line is read; otherwise attempts
// overlap and only the latest one reaches the output.
func Try(ctx context.Context, env *Env, name, cipherHex string, wait bool) {
	cipherHex = pageCipherHex(env.Store(), name, cipherHex)

	ctrl, err := guess.New(staticSource(cipherHex), &printOutput{w: env.Stdout},
		guess.WithLogger(env.Logger))
	if err != nil {
		HandleError(err)
	}
	defer ctrl.Close()

	scanner := bufio.NewScanner(env.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		if !ctrl.Input(scanner.Text()) {
			env.Logger.Debug("guess unchanged, skipped")
			continue
		}
		if wait {
			ctrl.Wait()
		}
	}
	if err := scanner.Err(); err != nil {
		HandleError(fmt.Errorf("failed to read input: %w", err))
	}

	ctrl.Wait()
	env.Logger.Debug("done",
		slog.Int("attempts", ctrl.Attempts()),
		slog.Int("ciphertext_bytes", ctrl.CiphertextSize()))
}
