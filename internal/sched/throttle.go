package sched

import (
	"sync"
	"time"
)

// DefaultRenderInterval matches one frame at 60 fps.
const DefaultRenderInterval = 16 * time.Millisecond

// Throttle limits how often offered work runs. Work arriving inside the
// interval is held as a single trailing slot where the most recent offer wins;
// intermediate offers are dropped, never queued.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	pending  func()
	timer    *time.Timer
	now      func() time.Time
}

// NewThrottle returns a throttle with the given minimum interval. A
// non-positive interval falls back to DefaultRenderInterval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultRenderInterval
	}
	return &Throttle{interval: interval, now: time.Now}
}

// SetNowFunc overrides the clock used for interval checks.
func (t *Throttle) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		t.now = fn
	}
}

// Offer runs fn immediately when the interval has elapsed, otherwise stores it
// in the trailing slot to run when the interval expires.
func (t *Throttle) Offer(fn func()) {
	t.mu.Lock()
	now := t.now()
	if t.last.IsZero() || now.Sub(t.last) >= t.interval {
		t.last = now
		t.mu.Unlock()
		fn()
		return
	}
	t.pending = fn
	if t.timer == nil {
		t.timer = time.AfterFunc(t.interval-now.Sub(t.last), t.fire)
	}
	t.mu.Unlock()
}

// Stop cancels any trailing work.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
}

// fire runs the trailing slot.
func (t *Throttle) fire() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.last = t.now()
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}
