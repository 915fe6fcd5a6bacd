package engine

import (
	"sync"
	"time"
)

// Ticker is a recurring task with an explicit lifecycle. It is started by
// the view that owns it and must be stopped when that view is torn down so
// no timer leaks.
type Ticker struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewTicker creates a ticker with the given interval. The countdown display
// uses one second.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval, stop: make(chan struct{})}
}

// Run invokes fn once immediately and then once per interval until Stop is
// called. It blocks; run it from the owning goroutine or wrap as needed.
func (t *Ticker) Run(fn func(now time.Time)) {
	fn(time.Now())

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			fn(now)
		case <-t.stop:
			return
		}
	}
}

// Stop cancels the ticker. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.stopped {
		t.stopped = true
		close(t.stop)
	}
}
