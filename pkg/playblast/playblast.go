package playblast

import (
	"github.com/user/playblast/pkg/orchestrator"
	"github.com/user/playblast/pkg/ports"
	"github.com/user/playblast/pkg/stages/await"
	"github.com/user/playblast/pkg/stages/capture"
	"github.com/user/playblast/pkg/stages/cleanup"
	"github.com/user/playblast/pkg/stages/connect"
	"github.com/user/playblast/pkg/stages/transcode"
	"github.com/user/playblast/pkg/summarizer"
)

// Deps are the collaborators of a capture run. Prober and Viewer are
// optional.
type Deps struct {
	Host       ports.CaptureHost
	Transcoder ports.Transcoder
	Prober     ports.MediaProber
	FileSystem ports.FileSystem
	Viewer     ports.Viewer
	Sink       ports.ProgressSink
	Logger     ports.Logger
}

// NewOrchestrator wires the standard stages around deps. A transcoder
// that can locate its encoder also serves pre-flight validation.
func NewOrchestrator(deps Deps, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	log := deps.Logger
	if locator, ok := deps.Transcoder.(ports.EncoderLocator); ok {
		opts = append([]orchestrator.Option{orchestrator.WithEncoderLocator(locator)}, opts...)
	}
	return orchestrator.New(
		connect.NewStage(deps.Host),
		capture.NewStage(deps.Host, log.WithComponent("capture")),
		await.NewStage(deps.Host, deps.FileSystem, log.WithComponent("capture")),
		transcode.NewStage(deps.Transcoder, deps.Prober, log.WithComponent("transcode")),
		cleanup.NewStage(deps.FileSystem, deps.Viewer, log.WithComponent("cleanup")),
		deps.Host,
		deps.FileSystem,
		deps.Sink,
		log,
		opts...,
	)
}

// Summarize builds a run summary from a result and the config it ran with.
func Summarize(result orchestrator.RunResult, cfg orchestrator.Config) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithRun(result.RunID, result.Duration).
		WithCapture(summarizer.CaptureInfo{
			Port:         result.Port,
			Start:        result.Range.Start,
			End:          result.Range.End,
			Width:        cfg.Width,
			Height:       cfg.Height,
			Quality:      cfg.Quality,
			Scale:        cfg.Scale,
			FramePadding: cfg.FramePadding,
		})

	files := summarizer.FilesInfo{
		Intermediate:        result.ArtifactPath,
		IntermediateRemoved: result.IntermediateRemoved,
	}
	if result.Succeeded() {
		files.Output = result.OutputPath
	} else {
		b.WithFailure(result.FailedPhase.String(), result.Err)
	}
	b.WithFiles(files)

	video := summarizer.VideoInfo{ExitCode: result.ExitCode}
	if result.Media != nil {
		video.Codec = result.Media.Codec
		video.Width = result.Media.Width
		video.Height = result.Media.Height
		video.DurationMs = result.Media.DurationMs
	}
	b.WithVideo(video)

	for _, st := range result.Stages {
		b.WithStage(st.Phase.String(), st.Duration)
	}
	return b.Build()
}
