package mocks

import (
	"sort"
	"sync"

	"github.com/user/playblast/pkg/ports"
)

// Settings is an in-memory implementation of ports.Settings.
type Settings struct {
	mu     sync.Mutex
	values map[string]any

	SetErr error
}

// NewSettings creates a Settings preloaded with values.
func NewSettings(values map[string]any) *Settings {
	s := &Settings{values: make(map[string]any)}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (m *Settings) Get(key string, def any) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *Settings) Set(key string, value any) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Settings) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.Settings = (*Settings)(nil)

// Viewer is a mock implementation of ports.Viewer.
type Viewer struct {
	Err    error
	Opened []string
}

func (m *Viewer) Open(path string) error {
	m.Opened = append(m.Opened, path)
	return m.Err
}

var _ ports.Viewer = (*Viewer)(nil)

// RunLock is a mock implementation of ports.RunLock.
type RunLock struct {
	mu      sync.Mutex
	held    bool
	Busy    bool // simulate another process holding the lock
	Err     error
	Unlocks int
}

func (m *RunLock) TryLock() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if m.Busy || m.held {
		return false, nil
	}
	m.held = true
	return true, nil
}

func (m *RunLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Unlocks++
	m.held = false
	return nil
}

var _ ports.RunLock = (*RunLock)(nil)
