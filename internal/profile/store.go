// Package profile persists saved area profiles and the current configurator
// state as JSON files on disk.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/nvalkov/areacage/internal/geom"
)

// Profile is a named favorite: an area bound to a tablet model.
type Profile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	TabletID string    `json:"tablet"`
	Area     geom.Area `json:"area"`
}

// ErrNotFound is returned when a profile id does not exist.
var ErrNotFound = errors.New("profile not found")

// Store is a file-backed profile collection. The whole collection is small
// enough to rewrite on every mutation.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store writing to the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all saved profiles. A missing file returns an empty list.
func (s *Store) List() ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles, err := s.load()
	if err != nil {
		return Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save inserts or updates a profile, assigning a fresh id when empty, and
// returns the stored value.
func (s *Store) Save(p Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles, err := s.load()
	if err != nil {
		return Profile{}, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
		profiles = append(profiles, p)
	} else {
		found := false
		for i := range profiles {
			if profiles[i].ID == p.ID {
				profiles[i] = p
				found = true
				break
			}
		}
		if !found {
			profiles = append(profiles, p)
		}
	}

	if err := s.write(profiles); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Delete removes the profile with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles, err := s.load()
	if err != nil {
		return err
	}
	for i, p := range profiles {
		if p.ID == id {
			profiles = append(profiles[:i], profiles[i+1:]...)
			return s.write(profiles)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// load reads the profile file. Missing files yield an empty collection.
func (s *Store) load() ([]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// write persists the collection, creating parent directories as needed.
func (s *Store) write(profiles []Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
