// Package testutil provides recording fakes shared by the package tests.
package testutil

import (
	"sync"
	"time"
)

// Clock is a controllable time source for throttle and drag tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time. Pass this method as a now-func override.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// EventLog records emitted events by kind for later assertions.
type EventLog struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	kind    string
	payload any
}

// Add appends an event.
func (l *EventLog) Add(kind string, payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{kind: kind, payload: payload})
}

// Last returns the most recent event of the given kind.
func (l *EventLog) Last(kind string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].kind == kind {
			return l.entries[i].payload, true
		}
	}
	return nil, false
}

// Kinds lists the recorded event kinds in order.
func (l *EventLog) Kinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.kind
	}
	return out
}

// Count returns how many events of the given kind were recorded.
func (l *EventLog) Count(kind string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}
