package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/illarion/slipper/internal/clock"
)

// lineTarget redraws the clock in place on a terminal line
type lineTarget struct {
	w io.Writer
}

func (t lineTarget) SetText(text string) {
	fmt.Fprintf(t.w, "\r%-16s", text)
}

// Clock prints the c12 clock. With once set it prints the current time and
// returns; otherwise it redraws every second until ctx is cancelled.
func Clock(ctx context.Context, env *Env, once bool) {
	if once {
		fmt.Fprintln(env.Stdout, clock.Format(time.Now()))
		return
	}

	reg := clock.NewRegistry(lineTarget{w: env.Stdout})
	err := reg.Run(ctx, time.Now)
	fmt.Fprintln(env.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		HandleError(err)
	}
}
