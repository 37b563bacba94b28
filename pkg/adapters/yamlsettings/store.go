// Package yamlsettings provides a ports.Settings store persisted as a
// flat YAML document of dotted keys.
package yamlsettings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/user/playblast/pkg/ports"
)

// FileName is the settings file name inside the config directory.
const FileName = "settings.yaml"

// ErrEmptyKey is returned by Set for an empty key.
var ErrEmptyKey = errors.New("yamlsettings: empty key")

// Store is a Settings implementation backed by a YAML file.
// Reads of absent keys record the supplied default, so a later Save
// materializes every setting the program consulted.
type Store struct {
	mu     sync.Mutex
	path   string
	fs     ports.FileSystem
	values map[string]any
	dirty  bool
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "playblast", FileName), nil
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string, fs ports.FileSystem) (*Store, error) {
	s := &Store{
		path:   path,
		fs:     fs,
		values: make(map[string]any),
	}

	exists, err := fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	if !exists {
		return s, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get implements ports.Settings.
func (s *Store) Get(key string, def any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[key]; ok {
		return v
	}
	if def != nil {
		s.values[key] = def
		s.dirty = true
	}
	return def
}

// Set implements ports.Settings. The change is written immediately.
func (s *Store) Set(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.dirty = true
	return s.saveLocked()
}

// Keys implements ports.Settings.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset removes every stored value and writes the empty store.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]any)
	s.dirty = true
	return s.saveLocked()
}

// Save writes pending changes, including recorded defaults.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	s.dirty = false
	return nil
}

var _ ports.Settings = (*Store)(nil)
