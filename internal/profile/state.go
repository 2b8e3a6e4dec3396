package profile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/nvalkov/areacage/internal/geom"
)

// State is the persisted configurator state: the selected tablet and the
// current active area. Saves go through the debounce wrapper so rapid edits
// coalesce into one write.
type State struct {
	TabletID    string    `json:"tablet"`
	Area        geom.Area `json:"area"`
	RatioLocked bool      `json:"ratioLocked"`
}

// LoadState reads the state file. Missing files return an empty state.
func LoadState(path string) (State, error) {
	var st State
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}

// SaveState writes the state file, creating parent directories as needed.
func SaveState(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
