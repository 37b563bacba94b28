package ffmpegtranscoder

import "errors"

var (
	// ErrFFmpegNotFound is returned when no encoder binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegtranscoder: ffmpeg not found")

	// ErrNoInput is returned when a job has no input path.
	ErrNoInput = errors.New("ffmpegtranscoder: no input path")

	// ErrStartFailed is returned when the encoder process cannot be started.
	ErrStartFailed = errors.New("ffmpegtranscoder: failed to start encoder")
)
