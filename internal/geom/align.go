package geom

import "github.com/charmbracelet/log"

// Canonical position names accepted by ComputePosition.
const (
	PosTopLeft     = "top-left"
	PosTop         = "top"
	PosTopRight    = "top-right"
	PosLeft        = "left"
	PosCenter      = "center"
	PosRight       = "right"
	PosBottomLeft  = "bottom-left"
	PosBottom      = "bottom"
	PosBottomRight = "bottom-right"
)

// Positions lists the nine canonical position names in grid order.
func Positions() []string {
	return []string{
		PosTopLeft, PosTop, PosTopRight,
		PosLeft, PosCenter, PosRight,
		PosBottomLeft, PosBottom, PosBottomRight,
	}
}

// ComputePosition returns the center offset that places an area of the given
// size at one of the nine canonical positions inside the tablet. Unknown names
// return a zero point and ok=false; callers must treat that as "no position
// computed", not as a valid (0,0) placement.
func ComputePosition(name string, tablet, area Size) (Point, bool) {
	hw := area.Width / 2
	hh := area.Height / 2
	switch name {
	case PosTopLeft:
		return Point{X: hw, Y: hh}, true
	case PosTop:
		return Point{X: tablet.Width / 2, Y: hh}, true
	case PosTopRight:
		return Point{X: tablet.Width - hw, Y: hh}, true
	case PosLeft:
		return Point{X: hw, Y: tablet.Height / 2}, true
	case PosCenter:
		return Point{X: tablet.Width / 2, Y: tablet.Height / 2}, true
	case PosRight:
		return Point{X: tablet.Width - hw, Y: tablet.Height / 2}, true
	case PosBottomLeft:
		return Point{X: hw, Y: tablet.Height - hh}, true
	case PosBottom:
		return Point{X: tablet.Width / 2, Y: tablet.Height - hh}, true
	case PosBottomRight:
		return Point{X: tablet.Width - hw, Y: tablet.Height - hh}, true
	default:
		log.Error("align: unknown position name", "name", name)
		return Point{}, false
	}
}
