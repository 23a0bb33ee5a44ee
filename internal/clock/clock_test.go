package clock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type element struct {
	mu    sync.Mutex
	text  string
	count int
}

func (e *element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	e.count++
}

func (e *element) snapshot() (string, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, e.count
}

func at(h, m, s int) time.Time {
	return time.Date(2025, 3, 14, h, m, s, 0, time.UTC)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{at(0, 0, 0), "12:60:60 a.m."},
		{at(9, 5, 7), "3:55:53 a.m."},
		{at(11, 59, 59), "1:01:01 a.m."},
		{at(12, 0, 0), "0:00:00 p.m."},
		{at(13, 4, 9), "1:04:09 p.m."},
		{at(23, 59, 59), "11:59:59 p.m."},
	}
	for _, tt := range tests {
		if got := Format(tt.t); got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.t.Format(time.TimeOnly), got, tt.want)
		}
	}
}

func TestRegistryRender(t *testing.T) {
	a, b := &element{}, &element{}
	r := NewRegistry(a)
	r.Add(b)
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	text := r.Render(at(13, 4, 9))
	if text != "1:04:09 p.m." {
		t.Errorf("Render = %q", text)
	}
	for i, e := range []*element{a, b} {
		got, n := e.snapshot()
		if got != text || n != 1 {
			t.Errorf("target %d: text %q after %d writes", i, got, n)
		}
	}
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	e := &element{}
	r := NewRegistry(e)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.run(ctx, 10*time.Millisecond, func() time.Time { return at(13, 4, 9) })
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, n := e.snapshot(); n >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("clock did not tick")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if text, _ := e.snapshot(); text != "1:04:09 p.m." {
		t.Errorf("text = %q", text)
	}
}

func TestRegistryRunCancelledBeforeFirstTick(t *testing.T) {
	e := &element{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRegistry(e).Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, n := e.snapshot(); n != 0 {
		t.Errorf("targets written %d times after cancel", n)
	}
}
