package remote

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a structured host command that serializes to a single MEL
// statement.
type Command interface {
	Render() (string, error)
}

// Bound selects one end of the host's playback range.
type Bound int

const (
	BoundMin Bound = iota
	BoundMax
)

func (b Bound) String() string {
	if b == BoundMax {
		return "max"
	}
	return "min"
}

// PlaybackQuery asks the host for one bound of its playback range. The
// host replies with a bare number.
type PlaybackQuery struct {
	Bound Bound
}

// Render implements Command.
func (q PlaybackQuery) Render() (string, error) {
	switch q.Bound {
	case BoundMin:
		return "playbackOptions -query -minTime;", nil
	case BoundMax:
		return "playbackOptions -query -maxTime;", nil
	default:
		return "", fmt.Errorf("%w: unknown playback bound %d", ErrInvalidCommand, int(q.Bound))
	}
}

// VersionQuery asks the host for its application version. It doubles as
// a round-trip check of the channel.
type VersionQuery struct{}

// Render implements Command.
func (VersionQuery) Render() (string, error) {
	return "about -version;", nil
}

// PlayblastCommand records the viewport to Filename. The host replies
// once the recording has finished; the reply content is not meaningful.
type PlayblastCommand struct {
	Filename       string
	Format         string // container format understood by the host, e.g. "avi"
	Width          int
	Height         int
	Quality        int // 0-100
	Percent        int // scale percent, 0-100
	FramePadding   int // 0-4
	StartTime      float64
	EndTime        float64
	ClearCache     bool
	ShowOrnaments  bool
	Offscreen      bool
	ForceOverwrite bool
}

// Render implements Command.
func (c PlayblastCommand) Render() (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}
	filename, err := quote(c.Filename)
	if err != nil {
		return "", fmt.Errorf("filename: %w", err)
	}
	format, err := quote(c.Format)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	var b strings.Builder
	b.WriteString("playblast")
	flag(&b, "filename", filename)
	flag(&b, "clearCache", boolArg(c.ClearCache))
	flag(&b, "showOrnaments", boolArg(c.ShowOrnaments))
	flag(&b, "quality", strconv.Itoa(c.Quality))
	flag(&b, "offScreen", boolArg(c.Offscreen))
	flag(&b, "framePadding", strconv.Itoa(c.FramePadding))
	flag(&b, "height", strconv.Itoa(c.Height))
	flag(&b, "width", strconv.Itoa(c.Width))
	flag(&b, "percent", strconv.Itoa(c.Percent))
	flag(&b, "startTime", numberArg(c.StartTime))
	flag(&b, "endTime", numberArg(c.EndTime))
	flag(&b, "viewer", boolArg(false))
	flag(&b, "format", format)
	if c.ForceOverwrite {
		b.WriteString(" -forceOverwrite")
	}
	b.WriteByte(';')
	return b.String(), nil
}

func (c PlayblastCommand) validate() error {
	switch {
	case c.Filename == "":
		return fmt.Errorf("%w: empty filename", ErrInvalidCommand)
	case c.Format == "":
		return fmt.Errorf("%w: empty format", ErrInvalidCommand)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidCommand, c.Width, c.Height)
	case c.Quality < 0 || c.Quality > 100:
		return fmt.Errorf("%w: quality %d outside 0-100", ErrInvalidCommand, c.Quality)
	case c.Percent < 0 || c.Percent > 100:
		return fmt.Errorf("%w: scale percent %d outside 0-100", ErrInvalidCommand, c.Percent)
	case c.FramePadding < 0 || c.FramePadding > 4:
		return fmt.Errorf("%w: frame padding %d outside 0-4", ErrInvalidCommand, c.FramePadding)
	case c.StartTime > c.EndTime:
		return fmt.Errorf("%w: start time %s after end time %s", ErrInvalidCommand, numberArg(c.StartTime), numberArg(c.EndTime))
	}
	return nil
}

func flag(b *strings.Builder, name, value string) {
	b.WriteString(" -")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(value)
}

func boolArg(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func numberArg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quote renders s as a MEL string literal.
func quote(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			return "", fmt.Errorf("%w: control character %U in %q", ErrUnsafeArgument, r, s)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String(), nil
}
