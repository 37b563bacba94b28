package nullsink

import (
	"testing"

	"github.com/user/playblast/pkg/ports"
)

func TestSink_Report(t *testing.T) {
	// Must accept any notification without side effects.
	New().Report(ports.Progress{Phase: ports.PhaseFailed})
}
