// Package main provides the CLI entry point for playblast.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/playblast/pkg/adapters/logger"
	"github.com/user/playblast/pkg/adapters/osfilesystem"
	"github.com/user/playblast/pkg/adapters/yamlsettings"
	"github.com/user/playblast/pkg/ports"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:           "playblast",
		Usage:          l10n.T("Capture viewport recordings from a running animation host"),
		Description:    l10n.T("playblast drives the host's command port to record the viewport, then converts the recording to MP4."),
		Version:        version,
		HideVersion:    true,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags:          globalFlags(),
		Commands: []*cli.Command{
			captureCommand(),
			convertCommand(),
			pingCommand(),
			rangeCommand(),
			configCommand(),
			versionCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "settings",
			Usage:    l10n.T("Settings file path"),
			EnvVars:  []string{"PLAYBLAST_SETTINGS"},
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "log-file",
			Usage:    l10n.T("Also write the log to this file"),
			Category: l10n.T("Logging"),
		},
	}
}

// env holds the collaborators shared by all commands.
type env struct {
	log      ports.Logger
	console  *logger.ConsoleLogger
	fs       *osfilesystem.FileSystem
	settings *yamlsettings.Store
}

func setup(c *cli.Context) (*env, error) {
	e := &env{fs: osfilesystem.New()}

	if c.Bool("quiet") {
		e.log = logger.NewNoop()
	} else {
		e.console = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
		if path := c.String("log-file"); path != "" {
			if err := e.console.OpenFile(path); err != nil {
				return nil, err
			}
		}
		e.log = e.console
	}

	path := c.String("settings")
	if path == "" {
		p, err := yamlsettings.DefaultPath()
		if err != nil {
			e.close()
			return nil, err
		}
		path = p
	}
	store, err := yamlsettings.Open(path, e.fs)
	if err != nil {
		e.close()
		return nil, err
	}
	e.settings = store
	return e, nil
}

// close persists recorded defaults and releases the log file.
func (e *env) close() {
	if e.settings != nil {
		if err := e.settings.Save(); err != nil {
			e.log.Warn("Could not save settings: %s", err)
		}
	}
	if e.console != nil {
		_ = e.console.Close()
	}
}

// interruptContext returns a context cancelled on SIGINT or SIGTERM.
// The returned cancel also stops signal delivery.
func interruptContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if coder, ok := err.(cli.ExitCoder); ok {
		return coder.ExitCode()
	}
	return 1
}
