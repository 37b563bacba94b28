package summarizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Capture Summary\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", s.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", s.GeneratedAt.Format(time.RFC3339))
	if s.Failure != nil {
		fmt.Fprintf(&b, "- Status: failed at %s\n", s.Failure.Stage)
		fmt.Fprintf(&b, "- Error: %s\n", s.Failure.Error)
	} else {
		b.WriteString("- Status: succeeded\n")
	}
	fmt.Fprintf(&b, "- Duration: %s\n", formatDuration(s.Duration))

	b.WriteString("\n## Capture\n\n")
	b.WriteString("| Setting | Value |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Port | %d |\n", s.Capture.Port)
	fmt.Fprintf(&b, "| Frames | %s - %s |\n", formatNumber(s.Capture.Start), formatNumber(s.Capture.End))
	fmt.Fprintf(&b, "| Resolution | %dx%d |\n", s.Capture.Width, s.Capture.Height)
	fmt.Fprintf(&b, "| Quality | %d |\n", s.Capture.Quality)
	fmt.Fprintf(&b, "| Scale | %d%% |\n", int(s.Capture.Scale*100+0.5))
	fmt.Fprintf(&b, "| Frame padding | %d |\n", s.Capture.FramePadding)

	b.WriteString("\n## Files\n\n")
	if s.Files.Output != "" {
		fmt.Fprintf(&b, "- Output: `%s`\n", s.Files.Output)
	}
	if s.Files.Intermediate != "" {
		state := "kept"
		if s.Files.IntermediateRemoved {
			state = "removed"
		}
		fmt.Fprintf(&b, "- Intermediate: `%s` (%s)\n", s.Files.Intermediate, state)
	}

	if s.Video.Codec != "" || s.Video.ExitCode != 0 {
		b.WriteString("\n## Video\n\n")
		fmt.Fprintf(&b, "- Encoder exit status: %d\n", s.Video.ExitCode)
		if s.Video.Codec != "" {
			fmt.Fprintf(&b, "- Codec: %s\n", s.Video.Codec)
			fmt.Fprintf(&b, "- Size: %dx%d\n", s.Video.Width, s.Video.Height)
			fmt.Fprintf(&b, "- Duration: %d ms\n", s.Video.DurationMs)
		}
	}

	if len(s.Stages) > 0 {
		b.WriteString("\n## Stages\n\n")
		b.WriteString("| Stage | Duration |\n")
		b.WriteString("|---|---|\n")
		for _, st := range s.Stages {
			fmt.Fprintf(&b, "| %s | %s |\n", st.Name, formatDuration(st.Duration))
		}
	}

	return b.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
