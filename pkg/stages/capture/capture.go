// Package capture implements the stage that issues the capture command.
package capture

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
	"github.com/user/playblast/pkg/remote"
)

// ErrEmptyRange is returned when the resolved start lies after the end.
var ErrEmptyRange = errors.New("capture: start time after end time")

// Stage resolves the frame range and dispatches the capture command.
// It does not wait for the host to finish recording.
type Stage struct {
	host   ports.CaptureHost
	logger ports.Logger
}

// NewStage creates a new capture stage.
func NewStage(host ports.CaptureHost, logger ports.Logger) *Stage {
	return &Stage{
		host:   host,
		logger: logger,
	}
}

// Execute builds the capture command and sends it to the host.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{}
	params := input.Params

	rng, err := s.resolveRange(ctx, params)
	if err != nil {
		return result, err
	}
	if rng.Start > rng.End {
		return result, fmt.Errorf("%w: %s > %s", ErrEmptyRange, formatTime(rng.Start), formatTime(rng.End))
	}

	artifact := pipeline.IntermediatePath(params.OutputPath)
	cmd := BuildCommand(params, rng, artifact)
	text, err := cmd.Render()
	if err != nil {
		return result, fmt.Errorf("build capture command: %w", err)
	}

	if err := s.host.Dispatch(ctx, text); err != nil {
		return result, fmt.Errorf("dispatch capture command: %w", err)
	}

	result.ArtifactPath = artifact
	result.Range = rng
	result.Command = text
	return result, nil
}

func (s *Stage) resolveRange(ctx context.Context, params pipeline.CaptureParameters) (pipeline.TimeRange, error) {
	if params.TimeMode == pipeline.TimeExplicit {
		s.logger.Info("Using frame range %s-%s", formatTime(params.Range.Start), formatTime(params.Range.End))
		return params.Range, nil
	}

	start, end, err := remote.PlaybackRange(ctx, s.host)
	if err != nil {
		return pipeline.TimeRange{}, err
	}
	s.logger.Info("Using playback range %s-%s", formatTime(start), formatTime(end))
	return pipeline.TimeRange{Start: start, End: end}, nil
}

// BuildCommand maps capture parameters onto the host's playblast command.
func BuildCommand(params pipeline.CaptureParameters, rng pipeline.TimeRange, artifact string) remote.PlayblastCommand {
	return remote.PlayblastCommand{
		Filename:       artifact,
		Format:         pipeline.IntermediateFormat,
		Width:          params.Width,
		Height:         params.Height,
		Quality:        params.Quality,
		Percent:        int(math.Round(params.Scale * 100)),
		FramePadding:   params.FramePadding,
		StartTime:      rng.Start,
		EndTime:        rng.End,
		ClearCache:     params.ClearCache,
		ShowOrnaments:  params.ShowOrnaments,
		Offscreen:      params.Offscreen,
		ForceOverwrite: true,
	}
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
