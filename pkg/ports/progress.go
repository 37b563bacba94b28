package ports

import "time"

// Phase identifies a step of a capture run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseConnecting
	PhaseSendingCapture
	PhaseAwaitingCompletion
	PhaseTranscoding
	PhaseCleaningUp
	PhaseDone
	PhaseFailed
)

// PhaseCount is the number of phases a successful run reports.
const PhaseCount = int(PhaseDone - PhaseIdle)

// String returns the human-readable name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseConnecting:
		return "Connecting"
	case PhaseSendingCapture:
		return "Sending capture command"
	case PhaseAwaitingCompletion:
		return "Awaiting completion"
	case PhaseTranscoding:
		return "Transcoding"
	case PhaseCleaningUp:
		return "Cleaning up"
	case PhaseDone:
		return "Done"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Progress is a single progress notification.
type Progress struct {
	RunID   string
	Phase   Phase
	Index   int // 1-based position of Phase; 0 for PhaseFailed
	Total   int
	Message string
	Time    time.Time

	// Set only when Phase is PhaseFailed.
	FailedPhase Phase
	Err         error
}

// ProgressSink receives progress notifications. Notifications for one
// run arrive in strictly increasing phase order and at most one of them
// is terminal (PhaseDone or PhaseFailed).
type ProgressSink interface {
	Report(p Progress)
}
