// Package playblast provides a high-level API for capturing viewport
// recordings from a running animation host.
package playblast

import (
	"time"

	"github.com/user/playblast/pkg/config"
	"github.com/user/playblast/pkg/pipeline"
)

// ConfigBuilder provides a fluent interface for building config.Config.
type ConfigBuilder struct {
	config config.Config
}

// NewConfigBuilder creates a ConfigBuilder starting from the defaults.
func NewConfigBuilder() *ConfigBuilder {
	return FromConfig(config.Defaults())
}

// FromConfig creates a ConfigBuilder starting from cfg, typically the
// persisted settings.
func FromConfig(cfg config.Config) *ConfigBuilder {
	return &ConfigBuilder{config: cfg}
}

// Build returns the final Config, clamping values to their allowed ranges.
func (b *ConfigBuilder) Build() config.Config {
	cfg := b.config

	cfg.Quality = clampInt(cfg.Quality, 0, 100)
	cfg.FramePadding = clampInt(cfg.FramePadding, 0, 4)
	if cfg.Scale < 0.1 {
		cfg.Scale = 0.1
	}
	if cfg.Scale > 1.0 {
		cfg.Scale = 1.0
	}
	if cfg.Resolution < 0 || cfg.Resolution >= len(config.Resolutions) {
		cfg.Resolution = config.DefaultResolution
	}

	return cfg
}

// WithOutput sets the final video path.
func (b *ConfigBuilder) WithOutput(path string) *ConfigBuilder {
	b.config.OutputPath = path
	return b
}

// WithFFmpeg sets the encoder binary.
func (b *ConfigBuilder) WithFFmpeg(path string) *ConfigBuilder {
	b.config.FFmpegPath = path
	return b
}

// WithResolution selects a preset by index.
// Unknown indexes fall back to the default preset.
func (b *ConfigBuilder) WithResolution(index int) *ConfigBuilder {
	b.config.Resolution = index
	return b
}

// WithQuality sets the capture quality (0-100).
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithScale sets the viewport scale (0.1-1.0).
func (b *ConfigBuilder) WithScale(scale float64) *ConfigBuilder {
	b.config.Scale = scale
	return b
}

// WithFramePadding sets the frame number padding (0-4).
func (b *ConfigBuilder) WithFramePadding(padding int) *ConfigBuilder {
	b.config.FramePadding = padding
	return b
}

// WithFrameRange captures an explicit range.
func (b *ConfigBuilder) WithFrameRange(start, end float64) *ConfigBuilder {
	b.config.TimeMode = pipeline.TimeExplicit
	b.config.Start = start
	b.config.End = end
	return b
}

// WithPlaybackRange captures the host's current playback range.
func (b *ConfigBuilder) WithPlaybackRange() *ConfigBuilder {
	b.config.TimeMode = pipeline.TimePlayback
	return b
}

// WithPort sets the host command port.
func (b *ConfigBuilder) WithPort(port int) *ConfigBuilder {
	b.config.Port = port
	return b
}

// WithReplyTimeout bounds the wait for each host reply.
func (b *ConfigBuilder) WithReplyTimeout(d time.Duration) *ConfigBuilder {
	b.config.ReplyTimeout = d
	return b
}

// WithViewer enables opening the result when done.
func (b *ConfigBuilder) WithViewer(open bool) *ConfigBuilder {
	b.config.Viewer = open
	return b
}

// WithKeepIntermediate keeps the raw capture after a successful run.
func (b *ConfigBuilder) WithKeepIntermediate(keep bool) *ConfigBuilder {
	b.config.RemoveTemp = !keep
	return b
}

// WithOrnaments shows viewport ornaments in the capture.
func (b *ConfigBuilder) WithOrnaments(show bool) *ConfigBuilder {
	b.config.Ornaments = show
	return b
}

// WithOffscreen renders the capture offscreen.
func (b *ConfigBuilder) WithOffscreen(offscreen bool) *ConfigBuilder {
	b.config.Offscreen = offscreen
	return b
}

// WithClearCache clears the host's evaluation cache before capturing.
func (b *ConfigBuilder) WithClearCache(clear bool) *ConfigBuilder {
	b.config.ClearCache = clear
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
