// Package await implements the stage that waits for the host to finish
// recording.
package await

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

// ErrArtifactMissing is returned when the host acknowledged the capture
// but the raw file is not on disk.
var ErrArtifactMissing = errors.New("await: capture file not found")

// Stage consumes the host's reply to the capture command.
type Stage struct {
	host   ports.CaptureHost
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new await stage.
func NewStage(host ports.CaptureHost, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		host:   host,
		fs:     fs,
		logger: logger,
	}
}

// Execute blocks until the host replies, then checks that the capture
// file exists. The reply only acknowledges dispatch, so a lost reply is
// a warning and the capture file decides the outcome. Cancellation
// fails the stage.
func (s *Stage) Execute(ctx context.Context, input pipeline.AwaitInput) (pipeline.AwaitResult, error) {
	result := pipeline.AwaitResult{ArtifactPath: input.ArtifactPath}

	reply, err := s.host.Await(ctx)
	switch {
	case ctx.Err() != nil:
		return result, fmt.Errorf("wait for capture: %w", ctx.Err())
	case err != nil:
		s.logger.Warn("No reply to capture command: %s", err)
	default:
		result.Reply = strings.TrimSpace(reply)
		result.Acknowledged = true
		s.logger.Info("Capture acknowledged: %s", result.Reply)
	}

	exists, err := s.fs.Exists(input.ArtifactPath)
	if err != nil {
		return result, fmt.Errorf("check capture file: %w", err)
	}
	if !exists {
		return result, fmt.Errorf("%w: %s", ErrArtifactMissing, input.ArtifactPath)
	}
	return result, nil
}
