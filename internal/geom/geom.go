// Package geom implements the active-area geometry and constraint math.
package geom

import "math"

// Size describes rectangle dimensions in millimeters.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a coordinate pair in millimeters relative to the tablet's top-left origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Area is the user-configurable active zone. Offset is the area's center point,
// not its corner.
type Area struct {
	Size   Size  `json:"size"`
	Offset Point `json:"offset"`
}

// Left returns the x coordinate of the area's left edge.
func (a Area) Left() float64 {
	return a.Offset.X - a.Size.Width/2
}

// Right returns the x coordinate of the area's right edge.
func (a Area) Right() float64 {
	return a.Offset.X + a.Size.Width/2
}

// Top returns the y coordinate of the area's top edge.
func (a Area) Top() float64 {
	return a.Offset.Y - a.Size.Height/2
}

// Bottom returns the y coordinate of the area's bottom edge.
func (a Area) Bottom() float64 {
	return a.Offset.Y + a.Size.Height/2
}

// Positive reports whether both dimensions are greater than zero.
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

// finite reports whether every value is a finite number.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
