package guess

import (
	"testing"
	"time"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// waitFor polls cond until it holds or timeout passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(tick)
	}
}
