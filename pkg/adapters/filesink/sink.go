// Package filesink provides a progress sink that appends notifications
// to a JSON lines journal, for frontends that follow a run from outside
// the process.
package filesink

import (
	"encoding/json"
	"time"

	"github.com/user/playblast/pkg/ports"
)

// Event is the journal representation of a ports.Progress.
type Event struct {
	RunID       string    `json:"run_id"`
	Time        time.Time `json:"time"`
	Phase       string    `json:"phase"`
	Index       int       `json:"index"`
	Total       int       `json:"total"`
	Message     string    `json:"message,omitempty"`
	FailedPhase string    `json:"failed_phase,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Sink appends one JSON object per notification to a file.
type Sink struct {
	path   string
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a Sink writing to path.
func New(path string, fs ports.FileSystem, logger ports.Logger) *Sink {
	return &Sink{
		path:   path,
		fs:     fs,
		logger: logger,
	}
}

// Report appends p to the journal. Write failures are logged; they never
// affect the run.
func (s *Sink) Report(p ports.Progress) {
	ev := Event{
		RunID:   p.RunID,
		Time:    p.Time,
		Phase:   p.Phase.String(),
		Index:   p.Index,
		Total:   p.Total,
		Message: p.Message,
	}
	if p.Phase == ports.PhaseFailed {
		ev.FailedPhase = p.FailedPhase.String()
		if p.Err != nil {
			ev.Error = p.Err.Error()
		}
	}

	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Warn("Could not write progress journal: %s", err)
		return
	}
	if err := s.fs.AppendFile(s.path, append(data, '\n')); err != nil {
		s.logger.Warn("Could not write progress journal: %s", err)
	}
}

var _ ports.ProgressSink = (*Sink)(nil)
