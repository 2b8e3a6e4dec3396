// Package sched provides the timing wrappers used between the geometry engine
// and the host environment: a throttle for the render path and a debouncer for
// persistence.
package sched

import (
	"sync"
	"time"
)

// DefaultSaveDebounce is the quiet period before a persistence save fires.
const DefaultSaveDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into a single call to fn once activity
// pauses for the configured quiet period. Every Trigger resets the timer;
// there is no explicit cancel beyond Stop.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebouncer returns a debouncer calling fn after d of quiet. A non-positive
// d falls back to DefaultSaveDebounce.
func NewDebouncer(d time.Duration, fn func()) *Debouncer {
	if d <= 0 {
		d = DefaultSaveDebounce
	}
	return &Debouncer{d: d, fn: fn}
}

// Trigger schedules fn after the quiet period, replacing any pending schedule.
func (b *Debouncer) Trigger() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, b.fire)
}

// Flush runs a pending call immediately, if any. Used on shutdown so the last
// edit is not lost to the quiet period.
func (b *Debouncer) Flush() {
	b.mu.Lock()
	pending := b.timer != nil && b.timer.Stop()
	b.timer = nil
	b.mu.Unlock()
	if pending {
		b.fn()
	}
}

// Stop cancels any pending call.
func (b *Debouncer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Pending reports whether a call is scheduled.
func (b *Debouncer) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timer != nil
}

// fire clears the schedule and invokes fn.
func (b *Debouncer) fire() {
	b.mu.Lock()
	b.timer = nil
	b.mu.Unlock()
	b.fn()
}
