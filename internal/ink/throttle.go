package ink

import (
	"sync"
	"time"
)

// Throttler rate-limits a high-frequency sample source to one delivered
// sample per interval. The first sample in a quiet period goes through
// immediately; samples arriving inside the window are coalesced and the most
// recent pending one is delivered when the window expires. This is a
// scheduling concern of the input adapter: the engine itself never looks at
// the wall clock.
type Throttler struct {
	interval time.Duration
	deliver  func(Sample)

	mu      sync.Mutex
	last    time.Time
	pending *Sample
	timer   *time.Timer
}

// NewThrottler wraps deliver with an interval gate. An interval of zero
// disables throttling and every sample is delivered synchronously.
func NewThrottler(interval time.Duration, deliver func(Sample)) *Throttler {
	return &Throttler{interval: interval, deliver: deliver}
}

// Add offers a sample. Either it is delivered right away, or it replaces the
// pending sample for the in-flight window.
func (t *Throttler) Add(s Sample) {
	if t.interval <= 0 {
		t.deliver(s)
		return
	}

	t.mu.Lock()
	now := time.Now()
	if t.pending == nil && now.Sub(t.last) >= t.interval {
		t.last = now
		t.mu.Unlock()
		t.deliver(s)
		return
	}

	t.pending = &s
	if t.timer == nil {
		wait := t.interval - now.Sub(t.last)
		if wait < 0 {
			wait = 0
		}
		t.timer = time.AfterFunc(wait, t.fire)
	}
	t.mu.Unlock()
}

func (t *Throttler) fire() {
	t.mu.Lock()
	s := t.pending
	t.pending = nil
	t.timer = nil
	t.last = time.Now()
	t.mu.Unlock()
	if s != nil {
		t.deliver(*s)
	}
}

// Flush delivers any pending sample immediately. Called at stroke end so the
// final position is never lost to the window.
func (t *Throttler) Flush() {
	t.mu.Lock()
	s := t.pending
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.last = time.Now()
	t.mu.Unlock()
	if s != nil {
		t.deliver(*s)
	}
}
