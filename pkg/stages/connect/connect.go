// Package connect implements the stage that opens the command channel.
package connect

import (
	"context"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

// Stage connects the capture host.
type Stage struct {
	host ports.CaptureHost
}

// NewStage creates a new connect stage.
func NewStage(host ports.CaptureHost) *Stage {
	return &Stage{host: host}
}

// Execute opens the connection on input.Port.
func (s *Stage) Execute(ctx context.Context, input pipeline.ConnectInput) (pipeline.ConnectResult, error) {
	if err := s.host.Connect(ctx, input.Port); err != nil {
		return pipeline.ConnectResult{}, err
	}
	return pipeline.ConnectResult{Port: s.host.Port()}, nil
}
