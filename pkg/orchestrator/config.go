package orchestrator

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
	"github.com/user/playblast/pkg/remote"
)

// OutputExtension is the extension of the delivered video.
const OutputExtension = ".mp4"

// Config contains all configuration for a capture run.
type Config struct {
	// Output
	OutputPath  string
	EncoderPath string

	// Host
	Port int

	// Image
	Width        int
	Height       int
	Quality      int     // 0-100
	Scale        float64 // 0.1-1.0
	FramePadding int     // 0-4

	// Time range
	TimeMode pipeline.TimeMode
	Start    float64
	End      float64

	// Capture flags
	ClearCache    bool
	ShowOrnaments bool
	Offscreen     bool

	// Post-processing
	RemoveIntermediate bool
	OpenViewer         bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port: remote.DefaultPort,

		Width:        1280,
		Height:       720,
		Quality:      100,
		Scale:        1.0,
		FramePadding: 4,

		TimeMode: pipeline.TimePlayback,

		ClearCache:    true,
		ShowOrnaments: true,

		RemoveIntermediate: true,
		OpenViewer:         true,
	}
}

// Validate checks that every parameter is resolved and in range. It
// touches only the local machine. Encoder names without a directory are
// resolved through locator; a nil locator searches PATH.
func (c Config) Validate(fs ports.FileSystem, locator ports.EncoderLocator) error {
	if err := c.validate(fs, locator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) validate(fs ports.FileSystem, locator ports.EncoderLocator) error {
	switch {
	case strings.TrimSpace(c.OutputPath) == "":
		return fmt.Errorf("output path is empty")
	case !strings.EqualFold(filepath.Ext(c.OutputPath), OutputExtension):
		return fmt.Errorf("output path %s must end in %s", c.OutputPath, OutputExtension)
	case strings.TrimSpace(c.EncoderPath) == "":
		return fmt.Errorf("encoder path is empty")
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("resolution %dx%d", c.Width, c.Height)
	case c.Quality < 0 || c.Quality > 100:
		return fmt.Errorf("quality %d outside 0-100", c.Quality)
	case c.Scale < 0.1 || c.Scale > 1.0:
		return fmt.Errorf("scale %g outside 0.1-1.0", c.Scale)
	case c.FramePadding < 0 || c.FramePadding > 4:
		return fmt.Errorf("frame padding %d outside 0-4", c.FramePadding)
	case c.TimeMode == pipeline.TimeExplicit && c.Start > c.End:
		return fmt.Errorf("start %g after end %g", c.Start, c.End)
	}

	if err := remote.ValidatePort(c.Port); err != nil {
		return err
	}

	dir := filepath.Dir(c.OutputPath)
	if !fs.IsDir(dir) {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	if strings.ContainsAny(c.EncoderPath, `/\`) {
		ok, err := fs.Exists(c.EncoderPath)
		if err != nil {
			return fmt.Errorf("check encoder: %w", err)
		}
		if !ok {
			return fmt.Errorf("encoder %s not found", c.EncoderPath)
		}
		return nil
	}
	if locator == nil {
		locator = pathLocator{}
	}
	if _, err := locator.Locate(c.EncoderPath); err != nil {
		return fmt.Errorf("encoder %s not found: %w", c.EncoderPath, err)
	}
	return nil
}

// pathLocator resolves encoder names on PATH.
type pathLocator struct{}

func (pathLocator) Locate(name string) (string, error) {
	return exec.LookPath(name)
}

// CaptureParameters returns the capture stage view of the config.
func (c Config) CaptureParameters() pipeline.CaptureParameters {
	return pipeline.CaptureParameters{
		OutputPath:    c.OutputPath,
		Width:         c.Width,
		Height:        c.Height,
		Quality:       c.Quality,
		Scale:         c.Scale,
		FramePadding:  c.FramePadding,
		TimeMode:      c.TimeMode,
		Range:         pipeline.TimeRange{Start: c.Start, End: c.End},
		ClearCache:    c.ClearCache,
		ShowOrnaments: c.ShowOrnaments,
		Offscreen:     c.Offscreen,
	}
}
