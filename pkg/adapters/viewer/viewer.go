// Package viewer opens finished videos with the platform's default
// application.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/user/playblast/pkg/ports"
)

// ErrUnsupportedPlatform is returned when no opener is known for the OS.
var ErrUnsupportedPlatform = errors.New("viewer: unsupported platform")

// launchTimeout bounds how long the opener itself may take to hand off.
const launchTimeout = 10 * time.Second

// System opens files using the desktop's association.
type System struct {
	goos   string
	runner func(ctx context.Context, name string, args ...string) error
}

// New creates a System viewer for the running OS.
func New() *System {
	return &System{goos: runtime.GOOS, runner: run}
}

// Command returns the opener invocation for path on goos.
func Command(goos, path string) (string, []string, error) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Open launches the default application for path.
func (v *System) Open(path string) error {
	name, args, err := Command(v.goos, path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
	defer cancel()
	if err := v.runner(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

var _ ports.Viewer = (*System)(nil)
