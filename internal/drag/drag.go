// Package drag implements the pointer state machine that moves the active area.
package drag

import (
	"time"

	"github.com/nvalkov/areacage/internal/geom"
)

// DefaultMoveInterval matches one frame at 60 fps.
const DefaultMoveInterval = 16 * time.Millisecond

// Controller translates pointer deltas in viewport pixels into constrained
// area center offsets in millimeters. It has two states, idle and dragging,
// and tracks a single pointer; a second simultaneous contact is ignored.
type Controller struct {
	active       bool
	pointerID    int
	startX       float64
	startY       float64
	offsetStart  geom.Point
	lastMoveAt   time.Time
	moveInterval time.Duration
	now          func() time.Time
}

// NewController returns an idle controller. A non-positive moveInterval falls
// back to DefaultMoveInterval.
func NewController(moveInterval time.Duration) *Controller {
	if moveInterval <= 0 {
		moveInterval = DefaultMoveInterval
	}
	return &Controller{moveInterval: moveInterval, now: time.Now}
}

// SetNowFunc overrides the clock used for move throttling.
func (c *Controller) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		c.now = fn
	}
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool {
	return c.active
}

// Down starts a drag session at the given pointer position, capturing the
// current area offset once. It reports whether a session started; a pointer
// arriving while another drag is active does not start a second session.
func (c *Controller) Down(pointerID int, px, py float64, offset geom.Point) bool {
	if c.active {
		return false
	}
	c.active = true
	c.pointerID = pointerID
	c.startX = px
	c.startY = py
	c.offsetStart = offset
	c.lastMoveAt = time.Time{}
	return true
}

// Move advances an active drag. The pixel delta from the session start is
// converted to millimeters at the given scale, added to the captured start
// offset, and constrained against the tablet. Moves from other pointers, moves
// while idle, and moves arriving faster than the configured interval return
// ok=false; the most recent position always wins on the next accepted move.
func (c *Controller) Move(pointerID int, px, py, scale float64, area, tablet geom.Size) (geom.Point, bool) {
	if !c.active || c.pointerID != pointerID {
		return geom.Point{}, false
	}
	now := c.now()
	if !c.lastMoveAt.IsZero() && now.Sub(c.lastMoveAt) < c.moveInterval {
		return geom.Point{}, false
	}
	c.lastMoveAt = now
	return c.candidate(px, py, scale, area, tablet), true
}

// Up ends an active drag with one final unthrottled constraint pass. Lifting
// the pointer always commits the constrained position; there is no revert.
func (c *Controller) Up(pointerID int, px, py, scale float64, area, tablet geom.Size) (geom.Point, bool) {
	if !c.active || c.pointerID != pointerID {
		return geom.Point{}, false
	}
	c.active = false
	return c.candidate(px, py, scale, area, tablet), true
}

// candidate computes the constrained offset for the current pointer position.
func (c *Controller) candidate(px, py, scale float64, area, tablet geom.Size) geom.Point {
	offset := geom.Point{
		X: c.offsetStart.X + geom.PxToMm(px-c.startX, scale),
		Y: c.offsetStart.Y + geom.PxToMm(py-c.startY, scale),
	}
	return geom.ConstrainOffset(offset, area, tablet)
}
