// Package orchestrator sequences the stages of a capture run.
package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

// Orchestrator coordinates the execution of all pipeline stages. At most
// one run is in flight per Orchestrator, and per process group when a
// RunLock is configured.
type Orchestrator struct {
	connectStage   pipeline.Stage[pipeline.ConnectInput, pipeline.ConnectResult]
	captureStage   pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	awaitStage     pipeline.Stage[pipeline.AwaitInput, pipeline.AwaitResult]
	transcodeStage pipeline.Stage[pipeline.TranscodeInput, pipeline.TranscodeResult]
	cleanupStage   pipeline.Stage[pipeline.CleanupInput, pipeline.CleanupResult]
	host           ports.CaptureHost
	fs             ports.FileSystem
	sink           ports.ProgressSink
	logger         ports.Logger

	lock    ports.RunLock
	locator ports.EncoderLocator
	running atomic.Bool
	now     func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRunLock makes every run hold lock for its duration.
func WithRunLock(lock ports.RunLock) Option {
	return func(o *Orchestrator) { o.lock = lock }
}

// WithEncoderLocator resolves bare encoder names during pre-flight.
// Without it names are looked up on PATH.
func WithEncoderLocator(locator ports.EncoderLocator) Option {
	return func(o *Orchestrator) { o.locator = locator }
}

// New creates a new Orchestrator.
func New(
	connectStage pipeline.Stage[pipeline.ConnectInput, pipeline.ConnectResult],
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	awaitStage pipeline.Stage[pipeline.AwaitInput, pipeline.AwaitResult],
	transcodeStage pipeline.Stage[pipeline.TranscodeInput, pipeline.TranscodeResult],
	cleanupStage pipeline.Stage[pipeline.CleanupInput, pipeline.CleanupResult],
	host ports.CaptureHost,
	fs ports.FileSystem,
	sink ports.ProgressSink,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		connectStage:   connectStage,
		captureStage:   captureStage,
		awaitStage:     awaitStage,
		transcodeStage: transcodeStage,
		cleanupStage:   cleanupStage,
		host:           host,
		fs:             fs,
		sink:           sink,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Running reports whether a run is in flight.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// Run executes one capture run. Progress is reported to the sink in
// phase order; a failed run ends with a single PhaseFailed notification
// and a *StageError naming the phase.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return RunResult{}, ErrRunInProgress
	}
	defer o.running.Store(false)

	r := &run{
		o:      o,
		result: RunResult{RunID: uuid.NewString(), StartedAt: o.now(), OutputPath: config.OutputPath},
	}

	o.logger.Info("Starting capture run %s", r.result.RunID)

	// Pre-flight checks run before any remote call.
	if err := config.Validate(o.fs, o.locator); err != nil {
		return r.fail(ports.PhaseIdle, err)
	}

	if o.lock != nil {
		ok, err := o.lock.TryLock()
		if err != nil {
			return r.fail(ports.PhaseIdle, err)
		}
		if !ok {
			return r.fail(ports.PhaseIdle, ErrRunInProgress)
		}
		defer func() {
			if err := o.lock.Unlock(); err != nil {
				o.logger.Warn("Could not release run lock: %s", err)
			}
		}()
	}

	// 1. Connect
	r.enter(ports.PhaseConnecting, fmt.Sprintf("port %d", config.Port))
	conn, err := o.connectStage.Execute(ctx, pipeline.ConnectInput{Port: config.Port})
	if err != nil {
		return r.fail(ports.PhaseConnecting, err)
	}
	r.result.Port = conn.Port
	defer o.disconnect()

	// 2. Send the capture command
	r.enter(ports.PhaseSendingCapture, pipeline.IntermediatePath(config.OutputPath))
	capture, err := o.captureStage.Execute(ctx, pipeline.CaptureInput{Params: config.CaptureParameters()})
	if err != nil {
		return r.fail(ports.PhaseSendingCapture, err)
	}
	r.result.Range = capture.Range
	r.result.ArtifactPath = capture.ArtifactPath

	// 3. Wait for the host to finish recording
	r.enter(ports.PhaseAwaitingCompletion, capture.ArtifactPath)
	awaited, err := o.awaitStage.Execute(ctx, pipeline.AwaitInput{ArtifactPath: capture.ArtifactPath})
	if err != nil {
		return r.fail(ports.PhaseAwaitingCompletion, err)
	}
	r.result.Acknowledged = awaited.Acknowledged

	// 4. Transcode
	r.enter(ports.PhaseTranscoding, config.OutputPath)
	transcoded, err := o.transcodeStage.Execute(ctx, pipeline.TranscodeInput{
		ArtifactPath: capture.ArtifactPath,
		OutputPath:   config.OutputPath,
		EncoderPath:  config.EncoderPath,
	})
	r.result.ExitCode = transcoded.ExitCode
	if err != nil {
		return r.fail(ports.PhaseTranscoding, err)
	}
	r.result.OutputPath = transcoded.OutputPath
	r.result.Media = transcoded.Media

	// 5. Clean up
	r.enter(ports.PhaseCleaningUp, capture.ArtifactPath)
	cleaned, err := o.cleanupStage.Execute(ctx, pipeline.CleanupInput{
		ArtifactPath:       capture.ArtifactPath,
		OutputPath:         transcoded.OutputPath,
		RemoveIntermediate: config.RemoveIntermediate,
		OpenViewer:         config.OpenViewer,
	})
	if err != nil {
		return r.fail(ports.PhaseCleaningUp, err)
	}
	r.result.IntermediateRemoved = cleaned.Removed
	r.result.ViewerOpened = cleaned.Opened

	r.enter(ports.PhaseDone, transcoded.OutputPath)
	r.result.Duration = o.now().Sub(r.result.StartedAt)
	o.logger.Info("Capture run completed")
	o.logger.Info("Output saved to %s", transcoded.OutputPath)
	return r.result, nil
}

func (o *Orchestrator) disconnect() {
	if !o.host.Connected() {
		return
	}
	if err := o.host.Disconnect(); err != nil {
		o.logger.Warn("Could not disconnect: %s", err)
	}
}

// run carries the state of one Run call.
type run struct {
	o       *Orchestrator
	result  RunResult
	current ports.Phase
	entered time.Time
}

// enter closes the timing of the current phase and reports phase.
func (r *run) enter(phase ports.Phase, message string) {
	now := r.o.now()
	r.closePhase(now)
	r.current = phase
	r.entered = now

	r.o.sink.Report(ports.Progress{
		RunID:   r.result.RunID,
		Phase:   phase,
		Index:   int(phase),
		Total:   ports.PhaseCount,
		Message: message,
		Time:    now,
	})
}

// fail reports the single terminal failure of the run.
func (r *run) fail(phase ports.Phase, err error) (RunResult, error) {
	now := r.o.now()
	r.closePhase(now)

	serr := &StageError{Phase: phase, Err: err}
	r.result.FailedPhase = phase
	r.result.Err = serr
	r.result.Duration = now.Sub(r.result.StartedAt)
	r.o.logger.Error("Run failed at %s: %s", phase, err)

	r.o.sink.Report(ports.Progress{
		RunID:       r.result.RunID,
		Phase:       ports.PhaseFailed,
		Total:       ports.PhaseCount,
		Message:     err.Error(),
		Time:        now,
		FailedPhase: phase,
		Err:         err,
	})
	return r.result, serr
}

func (r *run) closePhase(now time.Time) {
	if r.current == ports.PhaseIdle || r.current == ports.PhaseDone {
		return
	}
	r.result.Stages = append(r.result.Stages, StageTiming{Phase: r.current, Duration: now.Sub(r.entered)})
}
