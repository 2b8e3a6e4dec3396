// Package i18n resolves user-facing label keys for the UI shell. The geometry
// engine never consumes translations; only the HTTP layer and notification
// toasts do.
package i18n

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaults are the built-in English strings.
var defaults = map[string]string{
	"area.moved":       "Area moved",
	"area.centered":    "Area centered",
	"area.positioned":  "Area aligned to %s",
	"tablet.changed":   "Tablet model changed",
	"profile.saved":    "Profile saved",
	"profile.deleted":  "Profile deleted",
	"profile.applied":  "Profile applied",
	"profile.missing":  "Profile not found",
	"align.unknown":    "Unknown alignment position",
	"label.width":      "Width (mm)",
	"label.height":     "Height (mm)",
	"label.offset_x":   "Center X (mm)",
	"label.offset_y":   "Center Y (mm)",
	"label.ratio":      "Aspect ratio",
	"label.ratio_lock": "Lock ratio",
	"label.tablet":     "Tablet model",
	"label.profiles":   "Saved profiles",
}

// Table maps label keys to display strings.
type Table struct {
	strings map[string]string
}

// Load returns the built-in table merged with the YAML file at path. A missing
// file returns the built-in table unchanged.
func Load(path string) (Table, error) {
	t := Table{strings: make(map[string]string, len(defaults))}
	for k, v := range defaults {
		t.strings[k] = v
	}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return t, err
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return t, fmt.Errorf("parse strings %s: %w", path, err)
	}
	for k, v := range overrides {
		t.strings[k] = v
	}
	return t, nil
}

// T resolves a key, falling back to the key itself so missing translations
// stay visible instead of rendering blank.
func (t Table) T(key string) string {
	if s, ok := t.strings[key]; ok {
		return s
	}
	return key
}

// Tf resolves a key and applies printf-style arguments.
func (t Table) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

// All returns a copy of the full table for the UI bootstrap payload.
func (t Table) All() map[string]string {
	out := make(map[string]string, len(t.strings))
	for k, v := range t.strings {
		out[k] = v
	}
	return out
}
