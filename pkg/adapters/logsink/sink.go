// Package logsink renders progress notifications as log lines.
package logsink

import "github.com/user/playblast/pkg/ports"

// Sink writes one log line per notification. Failure details are left
// to the component that reports the error.
type Sink struct {
	logger ports.Logger
}

// New creates a Sink.
func New(logger ports.Logger) *Sink {
	return &Sink{logger: logger}
}

// Report implements ports.ProgressSink.
func (s *Sink) Report(p ports.Progress) {
	if p.Phase == ports.PhaseFailed {
		s.logger.Info("Stopped at %s", p.FailedPhase)
		return
	}
	s.logger.Info("[%d/%d] %s", p.Index, p.Total, p.Phase)
}

var _ ports.ProgressSink = (*Sink)(nil)
