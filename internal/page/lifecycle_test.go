package page

import "testing"

func unloaded(l *Lifecycle) bool {
	select {
	case <-l.Unloaded():
		return true
	default:
		return false
	}
}

func TestLifecyclePersistedPageHide(t *testing.T) {
	l := NewLifecycle()

	// back/forward cache: hidden, then shown again, then hidden again
	for i := 0; i < 2; i++ {
		if l.PageHide(true) {
			t.Fatal("persisted pagehide reported unload")
		}
		if unloaded(l) {
			t.Fatal("persisted pagehide closed Unloaded")
		}
	}

	if !l.PageHide(false) {
		t.Error("pagehide without persistence should unload")
	}
	if !unloaded(l) {
		t.Error("Unloaded not closed")
	}
}

func TestLifecycleRepeatedUnload(t *testing.T) {
	l := NewLifecycle()

	l.PageHide(false)
	if !l.PageHide(false) {
		t.Error("second unload should still report unloaded")
	}
	if !unloaded(l) {
		t.Error("Unloaded not closed")
	}
}
