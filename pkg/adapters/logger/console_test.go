package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/playblast/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelWarn, &buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelDebug, &buf).WithComponent("remote")

	log.Info("Connected to %s", "127.0.0.1:7221")

	if got := strings.TrimSpace(buf.String()); got != "[remote] Connected to 127.0.0.1:7221" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_FileReceivesFilteredLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelError, &buf)

	path := filepath.Join(t.TempDir(), "playblast.log")
	if err := log.OpenFile(path); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	log.WithComponent("transcode").Debug("frame=%d", 12)
	log.Error("boom")
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "debug transcode frame=12") {
		t.Errorf("expected debug line in file, got %q", content)
	}
	if !strings.Contains(content, "error - boom") {
		t.Errorf("expected error line in file, got %q", content)
	}
	if strings.Contains(buf.String(), "frame=12") {
		t.Errorf("debug line should not reach the console, got %q", buf.String())
	}
	if strings.Contains(content, "\033[") {
		t.Error("log file must not contain color codes")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]ports.LogLevel{
		"debug":   ports.LevelDebug,
		"INFO":    ports.LevelInfo,
		"warning": ports.LevelWarn,
		"error":   ports.LevelError,
		"quiet":   ports.LevelQuiet,
		"bogus":   ports.LevelInfo,
	}
	for in, want := range tests {
		if got := ports.ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
