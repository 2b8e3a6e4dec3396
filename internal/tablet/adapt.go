package tablet

import "github.com/nvalkov/areacage/internal/geom"

// Adapt repositions an existing area for a tablet switch. An area that still
// fits the new surface keeps its absolute size and is only re-constrained. An
// area that no longer fits is rescaled by the per-axis surface ratios, capped
// at the new surface size, with its relative center position preserved.
func Adapt(area geom.Area, from, to geom.Size) geom.Area {
	if area.Size.Width <= to.Width && area.Size.Height <= to.Height {
		area.Offset = geom.ConstrainOffset(area.Offset, area.Size, to)
		return area
	}

	widthRatio := ratio(to.Width, from.Width)
	heightRatio := ratio(to.Height, from.Height)
	scaled := geom.Size{
		Width:  min(area.Size.Width*widthRatio, to.Width),
		Height: min(area.Size.Height*heightRatio, to.Height),
	}

	relX := safeDiv(area.Offset.X, from.Width)
	relY := safeDiv(area.Offset.Y, from.Height)
	offset := geom.Point{X: relX * to.Width, Y: relY * to.Height}

	return geom.Area{
		Size:   scaled,
		Offset: geom.ConstrainOffset(offset, scaled, to),
	}
}

// ratio divides the new span by the old one, treating a degenerate old span as 1.
func ratio(to, from float64) float64 {
	if from <= 0 {
		return 1
	}
	return to / from
}

// safeDiv divides a by b, returning 0.5 (centered) for a degenerate divisor.
func safeDiv(a, b float64) float64 {
	if b <= 0 {
		return 0.5
	}
	return a / b
}
