package page

import "sync"

// Lifecycle tracks whether the document hosting a page is gone for good
type Lifecycle struct {
	once     sync.Once
	unloaded chan struct{}
}

// NewLifecycle returns a Lifecycle for a freshly shown page
func NewLifecycle() *Lifecycle {
	return &Lifecycle{unloaded: make(chan struct{})}
}

// PageHide handles a pagehide event and reports whether the page is now
// unloaded. A persisted page sits in the back/forward cache and may be shown
// again, so its controller and clock must keep running.
func (l *Lifecycle) PageHide(persisted bool) bool {
	if persisted {
		return false
	}
	l.once.Do(func() { close(l.unloaded) })
	return true
}

// Unloaded is closed once the page has been hidden without being cached
func (l *Lifecycle) Unloaded() <-chan struct{} {
	return l.unloaded
}
