// Package nullsink provides a no-op progress sink implementation.
package nullsink

import "github.com/user/playblast/pkg/ports"

// Sink is a no-op implementation of ports.ProgressSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Report does nothing.
func (s *Sink) Report(p ports.Progress) {}

// Ensure Sink implements ports.ProgressSink
var _ ports.ProgressSink = (*Sink)(nil)
