package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/user/playblast/pkg/adapters/logger"
	"github.com/user/playblast/pkg/ports"
	"github.com/user/playblast/pkg/remote/remotetest"
)

// runApp runs the CLI in-process against an isolated settings file and
// returns what it printed.
func runApp(t *testing.T, settings string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	argv := append([]string{"playblast", "--settings", settings, "--quiet"}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	out, err := runApp(t, settings, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("output %q does not contain version %q", out, version)
	}
}

func TestConfigSetGet(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")

	if _, err := runApp(t, settings, "config", "set", "image.quality", "80"); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, err := runApp(t, settings, "config", "get", "image.quality")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out) != "80" {
		t.Errorf("image.quality = %q, want 80", strings.TrimSpace(out))
	}

	out, err = runApp(t, settings, "config", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "remote.port = 7221") {
		t.Errorf("list output missing default port:\n%s", out)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")

	if _, err := runApp(t, settings, "config", "set", "no.such.key", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := runApp(t, settings, "config", "set", "image.quality", "high"); err == nil {
		t.Error("expected error for non-numeric quality")
	}
}

func TestConfigReset(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")

	if _, err := runApp(t, settings, "config", "set", "remote.port", "8000"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := runApp(t, settings, "config", "reset"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, err := runApp(t, settings, "config", "get", "remote.port")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out) != "7221" {
		t.Errorf("remote.port = %q, want 7221", strings.TrimSpace(out))
	}
}

func TestPingAndRange(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	host := &remotetest.Host{MinTime: 1001, MaxTime: 1048, Version: "2025"}
	srv := remotetest.NewServer(t, host.Handle)
	port := strconv.Itoa(srv.Port)

	out, err := runApp(t, settings, "ping", "--port", port)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !strings.Contains(out, "2025") {
		t.Errorf("ping output %q does not name the host version", out)
	}

	out, err = runApp(t, settings, "range", "--port", port)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if strings.TrimSpace(out) != "1001 1048" {
		t.Errorf("range = %q, want %q", strings.TrimSpace(out), "1001 1048")
	}
}

func TestPing_Unreachable(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	if _, err := runApp(t, settings, "ping", "--port", strconv.Itoa(remotetest.ClosedPort(t))); err == nil {
		t.Error("expected error for closed port")
	}
}

// fakeEncoder writes a shell script that copies its input to its output,
// taking arguments in the order `-i <input> <output> -y`.
func fakeEncoder(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake encoder script needs a POSIX shell")
	}
	path := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\necho \"fake encoder $*\"\ncp \"$2\" \"$3\"\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCapture(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	settings := filepath.Join(dir, "settings.yaml")
	encoder := fakeEncoder(t, dir)
	output := filepath.Join(dir, "shot.mp4")
	summary := filepath.Join(dir, "summary.md")
	journal := filepath.Join(dir, "progress.jsonl")

	host := &remotetest.Host{
		MinTime: 1,
		MaxTime: 24,
		OnPlayblast: func(filename string) {
			_ = os.WriteFile(filename, []byte("RIFF"), 0644)
		},
	}
	srv := remotetest.NewServer(t, host.Handle)

	out, err := runApp(t, settings, "capture",
		"--output", output,
		"--ffmpeg", encoder,
		"--port", strconv.Itoa(srv.Port),
		"--viewer=false",
		"--summary", summary,
		"--journal", journal,
	)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if strings.TrimSpace(out) != output {
		t.Errorf("printed %q, want %q", strings.TrimSpace(out), output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "shot.avi")); !os.IsNotExist(err) {
		t.Errorf("expected intermediate to be removed, stat err = %v", err)
	}

	md, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(md), "# Capture Summary") {
		t.Errorf("unexpected summary:\n%s", md)
	}

	lines, err := os.ReadFile(journal)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if n := strings.Count(string(lines), "\n"); n != 6 {
		t.Errorf("journal has %d events, want 6", n)
	}

	var playblast string
	for _, cmd := range srv.Commands() {
		if strings.HasPrefix(cmd, "playblast") {
			playblast = cmd
		}
	}
	if !strings.Contains(playblast, "-startTime 1 -endTime 24") {
		t.Errorf("capture command did not use the playback range: %q", playblast)
	}
}

func TestCapture_InvalidOutput(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	settings := filepath.Join(dir, "settings.yaml")

	_, err := runApp(t, settings, "capture", "--output", filepath.Join(dir, "shot.mov"), "--ffmpeg", "ffmpeg")
	if err == nil {
		t.Fatal("expected pre-flight error")
	}
	if !strings.Contains(err.Error(), "pre-flight") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCapture_UnresolvedEncoder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	t.Setenv("FFMPEG_PATH", "")
	settings := filepath.Join(dir, "settings.yaml")

	srv := remotetest.NewServer(t, (&remotetest.Host{}).Handle)

	_, err := runApp(t, settings, "capture",
		"--output", filepath.Join(dir, "shot.mp4"),
		"--ffmpeg", "no-such-encoder-binary",
		"--port", strconv.Itoa(srv.Port),
		"--viewer=false",
	)
	if err == nil || !strings.Contains(err.Error(), "pre-flight") {
		t.Fatalf("expected pre-flight error, got %v", err)
	}
	if cmds := srv.Commands(); len(cmds) != 0 {
		t.Errorf("host must not be contacted, got %q", cmds)
	}
}

func TestInterruptContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("interrupt delivery to self needs a POSIX signal")
	}
	var buf bytes.Buffer
	ctx, cancel := interruptContext(logger.NewWriter(ports.LevelWarn, &buf))
	defer cancel()

	self, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if err := self.Signal(os.Interrupt); err != nil {
		t.Fatalf("signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by interrupt")
	}
	if buf.Len() == 0 {
		t.Error("expected the interrupt to be logged")
	}
}

func TestInterruptContext_CancelStops(t *testing.T) {
	ctx, cancel := interruptContext(logger.NewNoop())
	cancel()
	if ctx.Err() == nil {
		t.Error("expected cancel to end the context")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(os.ErrNotExist); got != 1 {
		t.Errorf("exitCode = %d, want 1", got)
	}
}
