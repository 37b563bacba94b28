// Package cleanup implements the final stage of a capture run.
package cleanup

import (
	"context"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

// Stage removes the raw capture and optionally opens the result.
// Failures here are reported as warnings; the output already exists.
type Stage struct {
	fs     ports.FileSystem
	viewer ports.Viewer
	logger ports.Logger
}

// NewStage creates a new cleanup stage. viewer may be nil.
func NewStage(fs ports.FileSystem, viewer ports.Viewer, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		viewer: viewer,
		logger: logger,
	}
}

// Execute performs the cleanup selected by input.
func (s *Stage) Execute(ctx context.Context, input pipeline.CleanupInput) (pipeline.CleanupResult, error) {
	result := pipeline.CleanupResult{}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if input.RemoveIntermediate {
		if err := s.fs.Remove(input.ArtifactPath); err != nil {
			s.logger.Warn("Could not remove intermediate file %s: %s", input.ArtifactPath, err)
		} else {
			s.logger.Info("Removed intermediate file %s", input.ArtifactPath)
			result.Removed = true
		}
	} else {
		s.logger.Info("Keeping intermediate file %s", input.ArtifactPath)
	}

	if input.OpenViewer && s.viewer != nil {
		s.logger.Info("Opening %s", input.OutputPath)
		if err := s.viewer.Open(input.OutputPath); err != nil {
			s.logger.Warn("Could not open viewer: %s", err)
		} else {
			result.Opened = true
		}
	}

	return result, nil
}
