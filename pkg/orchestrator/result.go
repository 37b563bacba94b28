package orchestrator

import (
	"time"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

// StageTiming records how long one phase took.
type StageTiming struct {
	Phase    ports.Phase
	Duration time.Duration
}

// RunResult contains the results of a capture run for summary generation.
// It is returned for failed runs too, filled up to the failing phase.
type RunResult struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	// Host
	Port         int
	Range        pipeline.TimeRange
	Acknowledged bool // the host replied to the capture command

	// Files
	ArtifactPath        string
	OutputPath          string
	IntermediateRemoved bool
	ViewerOpened        bool

	// Encoder
	ExitCode int
	Media    *ports.MediaInfo

	Stages []StageTiming

	// Set when the run failed; FailedPhase is PhaseIdle for pre-flight errors.
	FailedPhase ports.Phase
	Err         error
}

// Succeeded reports whether the run reached PhaseDone.
func (r RunResult) Succeeded() bool {
	return r.Err == nil
}
