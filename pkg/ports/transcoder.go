package ports

import (
	"context"
	"time"
)

// TranscodeJob describes one conversion of a raw capture into the
// delivery format.
type TranscodeJob struct {
	InputPath   string
	OutputPath  string // derived from InputPath when empty or lacking the target extension
	EncoderPath string // resolved encoder binary; empty means auto-detect
}

// TranscodeResult describes a finished encoder process.
type TranscodeResult struct {
	OutputPath string
	ExitCode   int
	Duration   time.Duration
}

// Succeeded reports whether the encoder exited with status zero.
func (r TranscodeResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Transcoder converts media files with an external encoder.
type Transcoder interface {
	// Convert runs the encoder to completion. A non-zero exit status is
	// reported through the result, not the error. The error is non-nil
	// only when the encoder could not be run at all.
	Convert(ctx context.Context, job TranscodeJob) (TranscodeResult, error)
}

// EncoderLocator resolves an encoder name or path to an executable.
type EncoderLocator interface {
	Locate(name string) (string, error)
}

// MediaInfo describes a media file.
type MediaInfo struct {
	Codec      string
	Width      int
	Height     int
	DurationMs int64
	Tracks     int
}

// MediaProber inspects a media file.
type MediaProber interface {
	Probe(path string) (MediaInfo, error)
}
