package geom

import "github.com/charmbracelet/log"

// ConstrainOffset clamps an area's center offset so the whole area rectangle
// stays inside the tablet rectangle. When the area is larger than the tablet
// along an axis, the offset is centered on that axis instead. Non-finite input
// returns the offset unchanged.
func ConstrainOffset(offset Point, area, tablet Size) Point {
	if !finite(offset.X, offset.Y, area.Width, area.Height, tablet.Width, tablet.Height) {
		log.Warn("constrain: non-finite input",
			"offsetX", offset.X, "offsetY", offset.Y,
			"areaW", area.Width, "areaH", area.Height,
			"tabletW", tablet.Width, "tabletH", tablet.Height)
		return offset
	}
	return Point{
		X: clampAxis(offset.X, area.Width, tablet.Width),
		Y: clampAxis(offset.Y, area.Height, tablet.Height),
	}
}

// clampAxis clamps a center coordinate into [dim/2, span-dim/2], falling back
// to the span midpoint when the interval is empty.
func clampAxis(center, dim, span float64) float64 {
	lo := dim / 2
	hi := span - dim/2
	if lo > hi {
		return span / 2
	}
	if center < lo {
		return lo
	}
	if center > hi {
		return hi
	}
	return center
}

// FitScale returns the pixels-per-millimeter factor for the largest display
// rectangle that preserves the tablet's aspect ratio and fits entirely inside
// the container. Invalid dimensions return scale 1; the caller is responsible
// for not rendering in that case.
func FitScale(tablet, container Size) float64 {
	if !finite(tablet.Width, tablet.Height, container.Width, container.Height) ||
		!tablet.Positive() || !container.Positive() {
		log.Warn("fitscale: invalid dimensions",
			"tabletW", tablet.Width, "tabletH", tablet.Height,
			"containerW", container.Width, "containerH", container.Height)
		return 1
	}
	aspect := tablet.Width / tablet.Height
	displayW := container.Width
	if displayW/aspect > container.Height {
		displayW = container.Height * aspect
	}
	return displayW / tablet.Width
}
