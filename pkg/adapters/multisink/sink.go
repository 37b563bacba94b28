// Package multisink fans progress notifications out to several sinks.
package multisink

import "github.com/user/playblast/pkg/ports"

// Sink forwards every notification to each of its sinks in order.
type Sink struct {
	sinks []ports.ProgressSink
}

// New creates a Sink. Nil sinks are skipped.
func New(sinks ...ports.ProgressSink) *Sink {
	s := &Sink{}
	for _, sink := range sinks {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
	return s
}

// Report implements ports.ProgressSink.
func (s *Sink) Report(p ports.Progress) {
	for _, sink := range s.sinks {
		sink.Report(p)
	}
}

var _ ports.ProgressSink = (*Sink)(nil)
