package await

import (
	"context"
	"errors"
	"testing"

	"github.com/user/playblast/pkg/adapters/logger"
	"github.com/user/playblast/pkg/mocks"
	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/remote"
)

func TestStage_Execute(t *testing.T) {
	host := &mocks.CaptureHost{Reply: "C:/out/shot.avi\n"}
	fs := mocks.NewFileSystem()
	_ = fs.WriteFile("C:/out/shot.avi", []byte("RIFF"))

	result, err := NewStage(host, fs, logger.NewNoop()).Execute(context.Background(), pipeline.AwaitInput{ArtifactPath: "C:/out/shot.avi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reply != "C:/out/shot.avi" {
		t.Errorf("expected trimmed reply, got %q", result.Reply)
	}
}

func TestStage_ArtifactMissing(t *testing.T) {
	host := &mocks.CaptureHost{Reply: "\n"}
	fs := mocks.NewFileSystem()

	_, err := NewStage(host, fs, logger.NewNoop()).Execute(context.Background(), pipeline.AwaitInput{ArtifactPath: "C:/out/shot.avi"})
	if !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestStage_NoReply(t *testing.T) {
	host := &mocks.CaptureHost{
		AwaitFunc: func(ctx context.Context) (string, error) { return "", remote.ErrReplyTimeout },
	}
	fs := mocks.NewFileSystem()
	_ = fs.WriteFile("C:/out/shot.avi", []byte("RIFF"))

	result, err := NewStage(host, fs, logger.NewNoop()).Execute(context.Background(), pipeline.AwaitInput{ArtifactPath: "C:/out/shot.avi"})
	if err != nil {
		t.Fatalf("a lost reply with the file on disk should succeed, got %v", err)
	}
	if result.Acknowledged {
		t.Error("expected Acknowledged to be false")
	}
}

func TestStage_NoReplyNoFile(t *testing.T) {
	host := &mocks.CaptureHost{
		AwaitFunc: func(ctx context.Context) (string, error) { return "", remote.ErrPeerClosed },
	}
	fs := mocks.NewFileSystem()

	_, err := NewStage(host, fs, logger.NewNoop()).Execute(context.Background(), pipeline.AwaitInput{ArtifactPath: "C:/out/shot.avi"})
	if !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestStage_Cancelled(t *testing.T) {
	host := &mocks.CaptureHost{
		AwaitFunc: func(ctx context.Context) (string, error) { return "", ctx.Err() },
	}
	fs := mocks.NewFileSystem()
	_ = fs.WriteFile("C:/out/shot.avi", []byte("RIFF"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStage(host, fs, logger.NewNoop()).Execute(ctx, pipeline.AwaitInput{ArtifactPath: "C:/out/shot.avi"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
