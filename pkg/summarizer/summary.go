// Package summarizer provides summary generation for capture runs.
package summarizer

import "time"

// Summary contains all data collected during a capture run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string
	Duration    time.Duration

	// Set when the run failed
	Failure *FailureInfo

	// Capture settings
	Capture CaptureInfo

	// Files produced by the run
	Files FilesInfo

	// Output video details
	Video VideoInfo

	// Per-stage timings, in run order
	Stages []StageInfo
}

// FailureInfo describes where and why a run stopped.
type FailureInfo struct {
	Stage string
	Error string
}

// CaptureInfo contains the capture configuration.
type CaptureInfo struct {
	Port         int
	Start        float64
	End          float64
	Width        int
	Height       int
	Quality      int
	Scale        float64
	FramePadding int
}

// FilesInfo contains the paths handled by the run.
type FilesInfo struct {
	Intermediate        string
	Output              string
	IntermediateRemoved bool
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Codec      string
	Width      int
	Height     int
	DurationMs int64
	ExitCode   int
}

// StageInfo records the duration of one stage.
type StageInfo struct {
	Name     string
	Duration time.Duration
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRun sets the run identity and total duration.
func (b *Builder) WithRun(runID string, duration time.Duration) *Builder {
	b.summary.RunID = runID
	b.summary.Duration = duration
	return b
}

// WithFailure marks the run as failed at stage.
func (b *Builder) WithFailure(stage string, err error) *Builder {
	info := &FailureInfo{Stage: stage}
	if err != nil {
		info.Error = err.Error()
	}
	b.summary.Failure = info
	return b
}

// WithCapture sets the capture configuration.
func (b *Builder) WithCapture(capture CaptureInfo) *Builder {
	b.summary.Capture = capture
	return b
}

// WithFiles sets file information.
func (b *Builder) WithFiles(files FilesInfo) *Builder {
	b.summary.Files = files
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithStage appends a stage timing.
func (b *Builder) WithStage(name string, d time.Duration) *Builder {
	b.summary.Stages = append(b.summary.Stages, StageInfo{Name: name, Duration: d})
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
