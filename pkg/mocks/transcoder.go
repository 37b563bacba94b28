package mocks

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/user/playblast/pkg/ports"
)

// Transcoder is a mock implementation of ports.Transcoder. Without
// ConvertFunc it succeeds with exit status zero.
type Transcoder struct {
	mu sync.Mutex

	ConvertFunc func(ctx context.Context, job ports.TranscodeJob) (ports.TranscodeResult, error)

	// Missing lists encoder names Locate reports as not found.
	Missing []string

	// Recorded calls for verification
	Jobs []ports.TranscodeJob
}

func (m *Transcoder) Convert(ctx context.Context, job ports.TranscodeJob) (ports.TranscodeResult, error) {
	m.mu.Lock()
	m.Jobs = append(m.Jobs, job)
	m.mu.Unlock()
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, job)
	}
	return ports.TranscodeResult{OutputPath: job.OutputPath}, nil
}

// Locate resolves every name except those in Missing.
func (m *Transcoder) Locate(name string) (string, error) {
	for _, missing := range m.Missing {
		if name == missing {
			return "", fmt.Errorf("encoder %s: %w", name, exec.ErrNotFound)
		}
	}
	return name, nil
}

var (
	_ ports.Transcoder     = (*Transcoder)(nil)
	_ ports.EncoderLocator = (*Transcoder)(nil)
)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	Info ports.MediaInfo
	Err  error

	// Recorded calls for verification
	Paths []string
}

func (m *MediaProber) Probe(path string) (ports.MediaInfo, error) {
	m.Paths = append(m.Paths, path)
	return m.Info, m.Err
}

var _ ports.MediaProber = (*MediaProber)(nil)
