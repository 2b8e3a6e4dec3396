// Package control handles the websocket protocol between the UI shell and the
// geometry engine.
package control

import (
	"github.com/nvalkov/areacage/internal/profile"
	"github.com/nvalkov/areacage/internal/render"
)

// Message is a control websocket payload sent by the UI shell. Pointer
// coordinates are viewport pixels; form values arrive as the raw strings the
// user typed and are parsed with the safe fallback parser.
type Message struct {
	T         string  `json:"t"`
	ID        int     `json:"id,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	W         float64 `json:"w,omitempty"`
	H         float64 `json:"h,omitempty"`
	Name      string  `json:"name,omitempty"`
	Field     string  `json:"field,omitempty"`
	TabletID  string  `json:"tablet,omitempty"`
	ProfileID string  `json:"profile,omitempty"`
	Width     string  `json:"width,omitempty"`
	Height    string  `json:"height,omitempty"`
	OffsetX   string  `json:"offsetX,omitempty"`
	OffsetY   string  `json:"offsetY,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

// Event types pushed to the UI shell.
const (
	EvDisplay    = "display"
	EvMoved      = "moved"
	EvCentered   = "centered"
	EvPositioned = "positioned"
	EvNotice     = "notice"
	EvProfiles   = "profiles"
)

// Event is a payload pushed to the UI shell. Committed-change events carry the
// final area geometry in millimeters; display events carry the full frame.
type Event struct {
	T        string                  `json:"t"`
	OffsetX  float64                 `json:"offsetX,omitempty"`
	OffsetY  float64                 `json:"offsetY,omitempty"`
	Width    float64                 `json:"width,omitempty"`
	Height   float64                 `json:"height,omitempty"`
	Position string                  `json:"position,omitempty"`
	Notice   string                  `json:"notice,omitempty"`
	Focused  string                  `json:"focused,omitempty"`
	TabletID string                  `json:"tablet,omitempty"`
	Display  *render.DisplayGeometry `json:"display,omitempty"`
	Profiles []profile.Profile       `json:"profiles,omitempty"`
}
