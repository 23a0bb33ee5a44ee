// Package clock renders the c12 clock into a set of page elements.
package clock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Format renders t the c12 way: morning hours count down towards noon,
// afternoon hours count up from it.
func Format(t time.Time) string {
	hours := t.Hour()
	if hours < 12 {
		return fmt.Sprintf("%d:%02d:%02d a.m.", 12-hours, 60-t.Minute(), 60-t.Second())
	}
	return fmt.Sprintf("%d:%02d:%02d p.m.", hours-12, t.Minute(), t.Second())
}

// Target is an element the clock text is written into
type Target interface {
	SetText(text string)
}

// Registry is the set of clock elements on one page
type Registry struct {
	mu      sync.Mutex
	targets []Target
}

// NewRegistry creates a registry holding targets
func NewRegistry(targets ...Target) *Registry {
	return &Registry{targets: append([]Target(nil), targets...)}
}

// Add registers another target
func (r *Registry) Add(t Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, t)
}

// Len returns the number of registered targets
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}

// Render writes the formatted time into every target
func (r *Registry) Render(t time.Time) string {
	text := Format(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, target := range r.targets {
		target.SetText(text)
	}
	return text
}

// Run updates the targets once per second, starting on the next whole
// second, until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, now func() time.Time) error {
	return r.run(ctx, time.Second, now)
}

func (r *Registry) run(ctx context.Context, interval time.Duration, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	first := interval - time.Duration(now().UnixNano())%interval
	timer := time.NewTimer(first)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	r.Render(now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Render(now())
		}
	}
}
