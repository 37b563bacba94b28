// Package transcode implements the stage that converts the raw capture
// into the delivery format.
package transcode

import (
	"context"
	"fmt"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

// Stage runs the transcoder and inspects its output.
type Stage struct {
	transcoder ports.Transcoder
	prober     ports.MediaProber
	logger     ports.Logger
}

// NewStage creates a new transcode stage. prober may be nil.
func NewStage(transcoder ports.Transcoder, prober ports.MediaProber, logger ports.Logger) *Stage {
	return &Stage{
		transcoder: transcoder,
		prober:     prober,
		logger:     logger,
	}
}

// Execute converts input.ArtifactPath to input.OutputPath. The raw capture
// is never touched here; a failed conversion leaves it in place.
func (s *Stage) Execute(ctx context.Context, input pipeline.TranscodeInput) (pipeline.TranscodeResult, error) {
	result := pipeline.TranscodeResult{}

	s.logger.Info("Converting %s to %s", input.ArtifactPath, input.OutputPath)
	res, err := s.transcoder.Convert(ctx, ports.TranscodeJob{
		InputPath:   input.ArtifactPath,
		OutputPath:  input.OutputPath,
		EncoderPath: input.EncoderPath,
	})
	result.OutputPath = res.OutputPath
	result.ExitCode = res.ExitCode
	result.Duration = res.Duration
	if err != nil {
		return result, fmt.Errorf("run encoder: %w", err)
	}
	if !res.Succeeded() {
		s.logger.Warn("Keeping intermediate file %s for diagnosis", input.ArtifactPath)
		return result, &ExitError{InputPath: input.ArtifactPath, ExitCode: res.ExitCode}
	}

	if s.prober != nil {
		info, err := s.prober.Probe(res.OutputPath)
		if err != nil {
			s.logger.Warn("Could not inspect output video: %s", err)
		} else {
			s.logger.Info("Output video: %s %dx%d, %d ms", info.Codec, info.Width, info.Height, info.DurationMs)
			result.Media = &info
		}
	}

	return result, nil
}
