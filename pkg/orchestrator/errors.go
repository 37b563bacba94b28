package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/playblast/pkg/ports"
)

var (
	// ErrInvalidConfig is returned when a run is rejected before any
	// remote call.
	ErrInvalidConfig = errors.New("orchestrator: invalid configuration")

	// ErrRunInProgress is returned when a run is already in flight.
	ErrRunInProgress = errors.New("orchestrator: a run is already in progress")
)

// StageError reports the phase a run failed in.
type StageError struct {
	Phase ports.Phase
	Err   error
}

func (e *StageError) Error() string {
	if e.Phase == ports.PhaseIdle {
		return fmt.Sprintf("pre-flight: %v", e.Err)
	}
	return fmt.Sprintf("%s stage: %v", strings.ToLower(e.Phase.String()), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
