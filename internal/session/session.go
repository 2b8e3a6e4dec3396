// Package session holds runtime state for the active configurator client.
package session

import (
	"sync"

	"github.com/nvalkov/areacage/internal/geom"
)

// Snapshot is a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	TabletID      string
	Tablet        geom.Size
	Area          geom.Area
	RatioLocked   bool
	LockedRatio   float64
	FocusedField  string
}

// Session holds the state the control layer mutates on behalf of the client.
// All writes during an active drag go through the control layer, which owns
// the drag session exclusively.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	tabletID      string
	tablet        geom.Size
	area          geom.Area
	ratioLocked   bool
	lockedRatio   float64
	focusedField  string
}

// New returns a session guarded by the given password. An empty password
// disables authentication (development mode).
func New(password string) *Session {
	return &Session{password: password, authenticated: password == ""}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.password == "" || pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = s.password == ""
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetTablet records the selected tablet model and its surface size.
func (s *Session) SetTablet(id string, size geom.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabletID = id
	s.tablet = size
}

// Tablet returns the selected tablet surface size.
func (s *Session) Tablet() geom.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tablet
}

// TabletID returns the selected tablet model id.
func (s *Session) TabletID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabletID
}

// SetArea replaces the current active area.
func (s *Session) SetArea(a geom.Area) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.area = a
}

// SetOffset moves the active area's center.
func (s *Session) SetOffset(p geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.area.Offset = p
}

// Area returns the current active area.
func (s *Session) Area() geom.Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.area
}

// SetRatioLock engages or disengages the aspect-ratio lock. Engaging captures
// the current width/height ratio as the locked value.
func (s *Session) SetRatioLock(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratioLocked = enabled
	if enabled && s.area.Size.Height > 0 {
		s.lockedRatio = s.area.Size.Width / s.area.Size.Height
	} else if !enabled {
		s.lockedRatio = 0
	}
}

// RatioLock returns the lock flag and the locked ratio value.
func (s *Session) RatioLock() (bool, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratioLocked, s.lockedRatio
}

// SetFocusedField records which form field has keyboard focus, or clears it
// with an empty name. Drag-driven updates must not clobber a focused field.
func (s *Session) SetFocusedField(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusedField = name
}

// FocusedField returns the name of the focused form field.
func (s *Session) FocusedField() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focusedField
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated,
		TabletID:      s.tabletID,
		Tablet:        s.tablet,
		Area:          s.area,
		RatioLocked:   s.ratioLocked,
		LockedRatio:   s.lockedRatio,
		FocusedField:  s.focusedField,
	}
}
