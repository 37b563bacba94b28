package mocks

import (
	"sync"

	"github.com/user/playblast/pkg/ports"
)

// ProgressSink records every notification it receives.
type ProgressSink struct {
	mu     sync.Mutex
	events []ports.Progress
}

// NewProgressSink creates a new recording sink.
func NewProgressSink() *ProgressSink {
	return &ProgressSink{}
}

func (m *ProgressSink) Report(p ports.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, p)
}

// Events returns a copy of the recorded notifications.
func (m *ProgressSink) Events() []ports.Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.Progress(nil), m.events...)
}

// Phases returns the phase of each recorded notification.
func (m *ProgressSink) Phases() []ports.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	phases := make([]ports.Phase, len(m.events))
	for i, e := range m.events {
		phases[i] = e.Phase
	}
	return phases
}

var _ ports.ProgressSink = (*ProgressSink)(nil)
