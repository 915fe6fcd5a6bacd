package engine

import (
	"testing"
	"time"
)

func TestTicker_RunsImmediatelyAndStops(t *testing.T) {
	ticker := NewTicker(10 * time.Millisecond)

	calls := 0
	done := make(chan struct{})
	go func() {
		ticker.Run(func(now time.Time) {
			calls++
			if calls >= 3 {
				ticker.Stop()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Ticker did not stop")
	}

	if calls < 3 {
		t.Errorf("Expected at least 3 calls, got %d", calls)
	}
}

func TestTicker_StopIsIdempotent(t *testing.T) {
	ticker := NewTicker(time.Second)
	ticker.Stop()
	ticker.Stop() // must not panic
}

func TestTicker_StopBeforeRunReturnsAfterFirstCall(t *testing.T) {
	ticker := NewTicker(time.Hour)
	ticker.Stop()

	calls := 0
	finished := make(chan struct{})
	go func() {
		ticker.Run(func(time.Time) { calls++ })
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if calls != 1 {
		t.Errorf("Expected exactly the immediate call, got %d", calls)
	}
}
