package tui

import "sync"

// Notices is a thread-safe notification sink for the form controller. The
// controller resolves submissions on a worker goroutine, so writes are
// buffered here and read by the update loop.
type Notices struct {
	mu    sync.Mutex
	text  string
	isErr bool
	count int
}

// NewNotices creates an empty notification sink.
func NewNotices() *Notices {
	return &Notices{}
}

// Success records a success notification.
func (n *Notices) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = msg
	n.isErr = false
	n.count++
}

// Error records an error notification.
func (n *Notices) Error(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = err.Error()
	n.isErr = true
	n.count++
}

// Last returns the most recent notification and whether it was an error.
func (n *Notices) Last() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text, n.isErr
}

// Count returns how many notifications were emitted.
func (n *Notices) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}
