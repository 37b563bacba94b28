package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/playblast/pkg/ports"
)

// IntermediateExtension is the extension of the raw capture the host writes.
const IntermediateExtension = ".avi"

// IntermediateFormat is the host-side name of the raw capture container.
const IntermediateFormat = "avi"

// =============================================================================
// Common Types
// =============================================================================

// TimeMode selects where the capture's frame range comes from.
type TimeMode int

const (
	// TimePlayback queries the host's current playback range.
	TimePlayback TimeMode = iota
	// TimeExplicit uses the configured start and end.
	TimeExplicit
)

// String returns the settings representation of the mode.
func (m TimeMode) String() string {
	if m == TimeExplicit {
		return "explicit"
	}
	return "playback"
}

// ParseTimeMode parses a settings value into a TimeMode.
func ParseTimeMode(s string) (TimeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "playback":
		return TimePlayback, nil
	case "explicit", "custom":
		return TimeExplicit, nil
	default:
		return TimePlayback, fmt.Errorf("unknown time mode %q", s)
	}
}

// TimeRange is an inclusive frame range in host time units.
type TimeRange struct {
	Start float64
	End   float64
}

// Frames returns the number of frames the range covers.
func (r TimeRange) Frames() float64 {
	return r.End - r.Start + 1
}

// CaptureParameters are the fully resolved options of one capture.
type CaptureParameters struct {
	OutputPath    string  // final video path
	Width         int     // pixels
	Height        int     // pixels
	Quality       int     // 0-100
	Scale         float64 // 0.1-1.0
	FramePadding  int     // 0-4
	TimeMode      TimeMode
	Range         TimeRange // used when TimeMode is TimeExplicit
	ClearCache    bool
	ShowOrnaments bool
	Offscreen     bool
}

// IntermediatePath returns the raw capture path for a final output path:
// the same base name with the intermediate extension.
func IntermediatePath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + IntermediateExtension
}

// =============================================================================
// Connect Stage Types
// =============================================================================

// ConnectInput selects the host port. A negative port reuses the host's
// configured port.
type ConnectInput struct {
	Port int
}

// ConnectResult reports the port that was connected.
type ConnectResult struct {
	Port int
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput contains the parameters of the capture command.
type CaptureInput struct {
	Params CaptureParameters
}

// CaptureResult describes a dispatched capture command.
type CaptureResult struct {
	ArtifactPath string    // where the host writes the raw capture
	Range        TimeRange // resolved frame range
	Command      string    // rendered command text
}

// =============================================================================
// Await Stage Types
// =============================================================================

// AwaitInput identifies the capture being waited on.
type AwaitInput struct {
	ArtifactPath string
}

// AwaitResult describes a finished capture.
type AwaitResult struct {
	ArtifactPath string
	Reply        string // host reply, empty when none arrived
	Acknowledged bool   // a reply arrived
}

// =============================================================================
// Transcode Stage Types
// =============================================================================

// TranscodeInput contains the conversion parameters.
type TranscodeInput struct {
	ArtifactPath string
	OutputPath   string
	EncoderPath  string
}

// TranscodeResult describes a successful conversion.
type TranscodeResult struct {
	OutputPath string
	ExitCode   int
	Duration   time.Duration
	Media      *ports.MediaInfo // nil when the output could not be inspected
}

// =============================================================================
// Cleanup Stage Types
// =============================================================================

// CleanupInput selects the post-processing steps.
type CleanupInput struct {
	ArtifactPath       string
	OutputPath         string
	RemoveIntermediate bool
	OpenViewer         bool
}

// CleanupResult reports what cleanup did.
type CleanupResult struct {
	Removed bool
	Opened  bool
}
