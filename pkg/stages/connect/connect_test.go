package connect

import (
	"context"
	"errors"
	"testing"

	"github.com/user/playblast/pkg/mocks"
	"github.com/user/playblast/pkg/pipeline"
	"github.com/user/playblast/pkg/remote"
	"github.com/user/playblast/pkg/remote/remotetest"
)

func TestStage_Execute(t *testing.T) {
	host := &mocks.CaptureHost{}
	stage := NewStage(host)

	result, err := stage.Execute(context.Background(), pipeline.ConnectInput{Port: 7221})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Port != 7221 {
		t.Errorf("expected port 7221, got %d", result.Port)
	}
	if !host.Connected() {
		t.Error("expected host to be connected")
	}
}

func TestStage_ExecuteError(t *testing.T) {
	refused := errors.New("connection refused")
	host := &mocks.CaptureHost{
		ConnectFunc: func(ctx context.Context, port int) error { return refused },
	}

	_, err := NewStage(host).Execute(context.Background(), pipeline.ConnectInput{Port: 7221})
	if !errors.Is(err, refused) {
		t.Errorf("expected connect error, got %v", err)
	}
}

func TestStage_ExecuteWithClient(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := remote.New(remote.Options{})
	defer client.Disconnect()

	result, err := NewStage(client).Execute(context.Background(), pipeline.ConnectInput{Port: srv.Port})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Port != srv.Port {
		t.Errorf("expected port %d, got %d", srv.Port, result.Port)
	}
}
