// Package tablet describes tablet surface geometry and the model catalog.
package tablet

import "github.com/nvalkov/areacage/internal/geom"

// Model describes a tablet model and its active surface in millimeters.
type Model struct {
	ID     string  `json:"id" yaml:"id"`
	Vendor string  `json:"vendor" yaml:"vendor"`
	Name   string  `json:"name" yaml:"name"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Size returns the model's surface dimensions.
func (m Model) Size() geom.Size {
	return geom.Size{Width: m.Width, Height: m.Height}
}

// Valid reports whether the model has an id and positive dimensions.
func (m Model) Valid() bool {
	return m.ID != "" && m.Width > 0 && m.Height > 0
}

// ModelByID returns the model matching the given id.
func ModelByID(models []Model, id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
