package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMarkdownFormatter_Format_Success(t *testing.T) {
	summary := NewBuilder().
		WithRun("3f0c", 2500*time.Millisecond).
		WithCapture(CaptureInfo{Port: 7221, Start: 0, End: 120, Width: 1920, Height: 1080, Quality: 75, Scale: 1.0, FramePadding: 4}).
		WithFiles(FilesInfo{Intermediate: "C:/out/shot.avi", Output: "C:/out/shot.mp4", IntermediateRemoved: true}).
		WithVideo(VideoInfo{Codec: "h264", Width: 1920, Height: 1080, DurationMs: 5000}).
		WithStage("Connecting", 3*time.Millisecond).
		WithStage("Transcoding", 1200*time.Millisecond).
		Build()
	summary.GeneratedAt = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	result := NewMarkdownFormatter().Format(summary)

	checks := []string{
		"# Capture Summary",
		"- Run: `3f0c`",
		"- Generated: 2026-01-15T10:30:00Z",
		"- Status: succeeded",
		"- Duration: 2.50 s",
		"| Frames | 0 - 120 |",
		"| Resolution | 1920x1080 |",
		"| Quality | 75 |",
		"| Scale | 100% |",
		"- Output: `C:/out/shot.mp4`",
		"- Intermediate: `C:/out/shot.avi` (removed)",
		"- Codec: h264",
		"| Connecting | 3 ms |",
		"| Transcoding | 1.20 s |",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestMarkdownFormatter_Format_Failure(t *testing.T) {
	summary := NewBuilder().
		WithRun("3f0c", 40*time.Millisecond).
		WithFailure("Transcoding", errors.New("encoder exited with status 1")).
		WithFiles(FilesInfo{Intermediate: "C:/out/shot.avi"}).
		WithVideo(VideoInfo{ExitCode: 1}).
		Build()

	result := NewMarkdownFormatter().Format(summary)

	checks := []string{
		"- Status: failed at Transcoding",
		"- Error: encoder exited with status 1",
		"- Intermediate: `C:/out/shot.avi` (kept)",
		"- Encoder exit status: 1",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "- Output:") {
		t.Error("failed run without output should not list one")
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.RunID })
	if got := f.Format(&Summary{RunID: "abc"}); got != "abc" {
		t.Errorf("Format() = %q", got)
	}
}
