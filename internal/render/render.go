// Package render turns tablet and area geometry into viewport pixel rects.
package render

import (
	"github.com/nvalkov/areacage/internal/geom"
	"github.com/nvalkov/areacage/internal/numeric"
)

// DefaultPadding is the viewport padding around the tablet rectangle in pixels.
const DefaultPadding = 24.0

// Rect is an axis-aligned rectangle in viewport pixels, top-left origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DisplayGeometry is everything the UI shell needs to draw one frame.
type DisplayGeometry struct {
	Scale         float64 `json:"scale"`
	Tablet        Rect    `json:"tablet"`
	Area          Rect    `json:"area"`
	Ratio         string  `json:"ratio"`
	RatioDeferred bool    `json:"ratioDeferred"`
	FirstRender   bool    `json:"firstRender"`
}

// Pipeline computes display geometry. It caches the viewport scale between
// calls and schedules a persistence save on every render after the first;
// there is no other hidden state, so identical inputs produce identical
// output apart from the first-render flag.
type Pipeline struct {
	padding      float64
	scheduleSave func()
	scale        float64
	tablet       geom.Size
	container    geom.Size
	rendered     bool
}

// NewPipeline returns a pipeline with the given viewport padding. scheduleSave
// may be nil when no persistence collaborator is configured; a non-positive
// padding falls back to DefaultPadding.
func NewPipeline(padding float64, scheduleSave func()) *Pipeline {
	if padding <= 0 {
		padding = DefaultPadding
	}
	return &Pipeline{padding: padding, scheduleSave: scheduleSave}
}

// Scale returns the cached pixels-per-millimeter viewport scale.
func (p *Pipeline) Scale() float64 {
	return p.scale
}

// UpdateDisplay recomputes the viewport scale if the container or tablet
// changed, converts the tablet and area rectangles to pixels, and formats the
// aspect-ratio readout. Renders after the first schedule a debounced save;
// the first render instead flags the entrance transition.
func (p *Pipeline) UpdateDisplay(tablet geom.Size, area geom.Area, container geom.Size, ratioLocked bool) DisplayGeometry {
	if p.scale == 0 || tablet != p.tablet || container != p.container {
		inner := geom.Size{
			Width:  container.Width - 2*p.padding,
			Height: container.Height - 2*p.padding,
		}
		p.scale = geom.FitScale(tablet, inner)
		p.tablet = tablet
		p.container = container
	}

	tabletRect := Rect{
		W: geom.MmToPx(tablet.Width, p.scale),
		H: geom.MmToPx(tablet.Height, p.scale),
	}
	tabletRect.X = (container.Width - tabletRect.W) / 2
	tabletRect.Y = (container.Height - tabletRect.H) / 2

	areaRect := Rect{
		X: tabletRect.X + geom.MmToPx(area.Left(), p.scale),
		Y: tabletRect.Y + geom.MmToPx(area.Top(), p.scale),
		W: geom.MmToPx(area.Size.Width, p.scale),
		H: geom.MmToPx(area.Size.Height, p.scale),
	}

	ratio := 0.0
	if area.Size.Height > 0 {
		ratio = area.Size.Width / area.Size.Height
	}

	out := DisplayGeometry{
		Scale:         p.scale,
		Tablet:        tabletRect,
		Area:          areaRect,
		Ratio:         numeric.FormatNumber(ratio, 3),
		RatioDeferred: !ratioLocked,
	}

	if !p.rendered {
		p.rendered = true
		out.FirstRender = true
		return out
	}
	if p.scheduleSave != nil {
		p.scheduleSave()
	}
	return out
}
