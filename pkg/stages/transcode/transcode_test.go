package transcode

import (
	"context"
	"errors"
	"testing"

	"github.com/user/playblast/pkg/adapters/logger"
	"github.com/user/playblast/pkg/mocks"
	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/ports"
)

func TestStage_Execute(t *testing.T) {
	transcoder := &mocks.Transcoder{}
	prober := &mocks.MediaProber{Info: ports.MediaInfo{Codec: "h264", Width: 1920, Height: 1080, DurationMs: 5000}}
	stage := NewStage(transcoder, prober, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
		ArtifactPath: "C:/out/shot.avi",
		OutputPath:   "C:/out/shot.mp4",
		EncoderPath:  "/opt/ffmpeg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transcoder.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(transcoder.Jobs))
	}
	job := transcoder.Jobs[0]
	if job.InputPath != "C:/out/shot.avi" || job.OutputPath != "C:/out/shot.mp4" || job.EncoderPath != "/opt/ffmpeg" {
		t.Errorf("unexpected job %+v", job)
	}
	if result.OutputPath != "C:/out/shot.mp4" {
		t.Errorf("expected output path C:/out/shot.mp4, got %s", result.OutputPath)
	}
	if result.Media == nil || result.Media.Codec != "h264" {
		t.Errorf("expected probed media info, got %+v", result.Media)
	}
}

func TestStage_NonZeroExit(t *testing.T) {
	transcoder := &mocks.Transcoder{
		ConvertFunc: func(ctx context.Context, job ports.TranscodeJob) (ports.TranscodeResult, error) {
			return ports.TranscodeResult{OutputPath: job.OutputPath, ExitCode: 1}, nil
		},
	}
	prober := &mocks.MediaProber{}
	stage := NewStage(transcoder, prober, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
		ArtifactPath: "C:/out/shot.avi",
		OutputPath:   "C:/out/shot.mp4",
	})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.ExitCode != 1 || !errors.Is(err, ErrEncoderFailed) {
		t.Errorf("unexpected exit error %+v", exitErr)
	}
	if result.ExitCode != 1 {
		t.Errorf("expected exit code 1 in result, got %d", result.ExitCode)
	}
	if len(prober.Paths) != 0 {
		t.Error("failed output must not be probed")
	}
}

func TestStage_StartFailure(t *testing.T) {
	boom := errors.New("exec: not found")
	transcoder := &mocks.Transcoder{
		ConvertFunc: func(ctx context.Context, job ports.TranscodeJob) (ports.TranscodeResult, error) {
			return ports.TranscodeResult{ExitCode: -1}, boom
		},
	}

	_, err := NewStage(transcoder, nil, logger.NewNoop()).Execute(context.Background(), pipeline.TranscodeInput{
		ArtifactPath: "C:/out/shot.avi",
		OutputPath:   "C:/out/shot.mp4",
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected start error, got %v", err)
	}
}

func TestStage_ProbeFailureIsNotFatal(t *testing.T) {
	prober := &mocks.MediaProber{Err: errors.New("not an mp4")}

	result, err := NewStage(&mocks.Transcoder{}, prober, logger.NewNoop()).Execute(context.Background(), pipeline.TranscodeInput{
		ArtifactPath: "C:/out/shot.avi",
		OutputPath:   "C:/out/shot.mp4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Media != nil {
		t.Errorf("expected no media info, got %+v", result.Media)
	}
}
