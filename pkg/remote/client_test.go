package remote

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/user/playblast/pkg/remote/remotetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClient_ConnectDisconnect(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := New(Options{})

	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if !client.Connected() {
		t.Error("expected client to be connected")
	}
	if client.Port() != srv.Port {
		t.Errorf("expected port %d, got %d", srv.Port, client.Port())
	}

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if client.Connected() {
		t.Error("expected client to be disconnected")
	}

	// A second disconnect reports the missing connection but is harmless.
	if err := client.Disconnect(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestClient_DisconnectNeverConnected(t *testing.T) {
	client := New(Options{})
	if err := client.Disconnect(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestClient_ConnectRefused(t *testing.T) {
	port := remotetest.ClosedPort(t)
	client := New(Options{})

	err := client.Connect(context.Background(), port)
	if !errors.Is(err, ErrConnectFailed) {
		t.Fatalf("expected ErrConnectFailed, got %v", err)
	}
	if client.Connected() {
		t.Error("expected client to stay disconnected")
	}
}

func TestClient_ConnectInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"privileged", 80},
		{"just below range", 1024},
		{"above range", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(Options{})
			err := client.Connect(context.Background(), tt.port)
			if !errors.Is(err, ErrInvalidPort) {
				t.Fatalf("expected ErrInvalidPort, got %v", err)
			}
			if client.Port() != DefaultPort {
				t.Errorf("expected port to stay %d, got %d", DefaultPort, client.Port())
			}
			if client.Connected() {
				t.Error("expected client to stay disconnected")
			}
		})
	}
}

func TestClient_ConnectReusesConfiguredPort(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := New(Options{Port: srv.Port})

	if err := client.Connect(context.Background(), -1); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	if client.Port() != srv.Port {
		t.Errorf("expected port %d, got %d", srv.Port, client.Port())
	}
}

func TestClient_ConnectInvalidPortDropsConnection(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := New(Options{})

	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := client.Connect(context.Background(), 80); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
	if client.Connected() {
		t.Error("expected the previous connection to be closed")
	}
	if client.Port() != srv.Port {
		t.Errorf("expected port to stay %d, got %d", srv.Port, client.Port())
	}
}

func TestClient_CancelAfterReplyKeepsConnection(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		if _, err := client.Send(ctx, "first;"); err != nil {
			t.Fatalf("round %d: first send: %v", i, err)
		}
		cancel()

		reply, err := client.Send(context.Background(), "second;")
		if err != nil {
			t.Fatalf("round %d: send after cancel: %v", i, err)
		}
		if reply != "second;" {
			t.Fatalf("round %d: reply %q", i, reply)
		}
	}
}

func TestClient_SendWhenDisconnected(t *testing.T) {
	client := New(Options{})

	reply, err := client.Send(context.Background(), "about -version;")
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if reply != "" {
		t.Errorf("expected empty reply, got %q", reply)
	}
}

func TestClient_SendEcho(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	for _, cmd := range []string{"about -version;", "playbackOptions -query -minTime;"} {
		reply, err := client.Send(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Send(%q) failed: %v", cmd, err)
		}
		if reply != cmd {
			t.Errorf("expected %q, got %q", cmd, reply)
		}
	}

	got := srv.Commands()
	if len(got) != 2 {
		t.Fatalf("expected 2 commands at server, got %d", len(got))
	}
}

func TestClient_SendStripsNullPadding(t *testing.T) {
	srv := remotetest.NewServer(t, func(string) string { return "24.0\n" }, remotetest.WithNullPadding(BufferSize))
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	reply, err := client.Send(context.Background(), "playbackOptions -query -maxTime;")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "24.0\n" {
		t.Errorf("expected %q, got %q", "24.0\n", reply)
	}
}

func TestClient_StrictAlternation(t *testing.T) {
	srv := remotetest.NewServer(t, remotetest.Echo)
	client := New(Options{})
	ctx := context.Background()
	if err := client.Connect(ctx, srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	if _, err := client.Await(ctx); !errors.Is(err, ErrNoPendingCommand) {
		t.Fatalf("expected ErrNoPendingCommand, got %v", err)
	}

	if err := client.Dispatch(ctx, "first;"); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if err := client.Dispatch(ctx, "second;"); !errors.Is(err, ErrReplyPending) {
		t.Fatalf("expected ErrReplyPending, got %v", err)
	}
	if _, err := client.Send(ctx, "third;"); !errors.Is(err, ErrReplyPending) {
		t.Fatalf("expected ErrReplyPending from Send, got %v", err)
	}

	reply, err := client.Await(ctx)
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if reply != "first;" {
		t.Errorf("expected reply to first command, got %q", reply)
	}

	if err := client.Dispatch(ctx, "second;"); err != nil {
		t.Fatalf("Dispatch after Await failed: %v", err)
	}
	if _, err := client.Await(ctx); err != nil {
		t.Fatalf("Await failed: %v", err)
	}
}

func TestClient_PeerClosesMidCall(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		buf := make([]byte, 64)
		_, _ = conn.Read(buf)
		conn.Close()
	}()

	client := New(Options{})
	if err := client.Connect(context.Background(), ln.Addr().(*net.TCPAddr).Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	_, err = client.Send(context.Background(), "about -version;")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
	if client.Connected() {
		t.Error("expected connection to be dropped")
	}
	<-done
}

func TestClient_ReplyTimeout(t *testing.T) {
	srv := remotetest.NewServer(t, func(string) string { return "" })
	client := New(Options{ReplyTimeout: 50 * time.Millisecond})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	_, err := client.Send(context.Background(), "playblast;")
	if !errors.Is(err, ErrReplyTimeout) {
		t.Fatalf("expected ErrReplyTimeout, got %v", err)
	}
	if client.Connected() {
		t.Error("expected connection to be dropped after a timeout")
	}
}

func TestClient_ContextCancelUnblocksAwait(t *testing.T) {
	srv := remotetest.NewServer(t, func(string) string { return "" })
	client := New(Options{ReplyTimeout: -1})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := client.Send(ctx, "playblast;")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClient_PlaybackRange(t *testing.T) {
	host := &remotetest.Host{MinTime: 1, MaxTime: 120}
	srv := remotetest.NewServer(t, host.Handle, remotetest.WithNullPadding(BufferSize))
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	start, end, err := client.PlaybackRange(context.Background())
	if err != nil {
		t.Fatalf("PlaybackRange failed: %v", err)
	}
	if start != 1 || end != 120 {
		t.Errorf("expected range 1-120, got %v-%v", start, end)
	}

	cmds := srv.Commands()
	if len(cmds) != 2 || cmds[0] != "playbackOptions -query -minTime;" || cmds[1] != "playbackOptions -query -maxTime;" {
		t.Errorf("unexpected commands: %q", cmds)
	}
}

func TestClient_PlaybackMinMalformedReply(t *testing.T) {
	srv := remotetest.NewServer(t, func(string) string { return "abc" })
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	v, err := client.PlaybackMin(context.Background())
	if !errors.Is(err, ErrMalformedReply) {
		t.Fatalf("expected ErrMalformedReply, got %v (value %v)", err, v)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Reply != "abc" {
		t.Errorf("expected reply %q, got %q", "abc", pe.Reply)
	}
	if pe.Command != "playbackOptions -query -minTime;" {
		t.Errorf("unexpected command in error: %q", pe.Command)
	}
}

func TestClient_HostVersion(t *testing.T) {
	host := &remotetest.Host{Version: "2025"}
	srv := remotetest.NewServer(t, host.Handle)
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	v, err := client.HostVersion(context.Background())
	if err != nil {
		t.Fatalf("HostVersion failed: %v", err)
	}
	if v != "2025" {
		t.Errorf("expected version 2025, got %q", v)
	}
}

func TestClient_HostVersionEmptyReply(t *testing.T) {
	srv := remotetest.NewServer(t, func(string) string { return " \n" })
	client := New(Options{})
	if err := client.Connect(context.Background(), srv.Port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Disconnect()

	_, err := client.HostVersion(context.Background())
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	want, _ := VersionQuery{}.Render()
	if pe.Command != want {
		t.Errorf("ParseError.Command = %q, want %q", pe.Command, want)
	}
}
