package geom

import "github.com/charmbracelet/log"

// MmToPx converts millimeters to pixels at the given pixels-per-millimeter
// scale. Non-finite input or a non-positive scale returns 0.
func MmToPx(mm, scale float64) float64 {
	if !finite(mm, scale) || scale <= 0 {
		log.Warn("units: invalid mm-to-px input", "mm", mm, "scale", scale)
		return 0
	}
	return mm * scale
}

// PxToMm converts pixels to millimeters at the given pixels-per-millimeter
// scale. Non-finite input or a non-positive scale returns 0.
func PxToMm(px, scale float64) float64 {
	if !finite(px, scale) || scale <= 0 {
		log.Warn("units: invalid px-to-mm input", "px", px, "scale", scale)
		return 0
	}
	return px / scale
}
