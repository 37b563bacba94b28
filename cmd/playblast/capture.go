package main

import (
	"errors"
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/playblast/pkg/adapters/ffmpegtranscoder"
	"github.com/user/playblast/pkg/adapters/filesink"
	"github.com/user/playblast/pkg/adapters/logsink"
	"github.com/user/playblast/pkg/adapters/mp4probe"
	"github.com/user/playblast/pkg/adapters/multisink"
	"github.com/user/playblast/pkg/adapters/nullsink"
	"github.com/user/playblast/pkg/adapters/runlock"
	"github.com/user/playblast/pkg/adapters/viewer"
	"github.com/user/playblast/pkg/config"
	"github.com/user/playblast/pkg/orchestrator"
	"github.com/user/playblast/pkg/playblast"
	"github.com/user/playblast/pkg/ports"
	"github.com/user/playblast/pkg/remote"
	"github.com/user/playblast/pkg/summarizer"
)

func captureCommand() *cli.Command {
	return &cli.Command{
		Name:        "capture",
		Usage:       l10n.T("Record the viewport and convert it to MP4"),
		Description: l10n.T("Connect to the host, record the viewport to an intermediate AVI file and convert it to MP4 with ffmpeg."),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output MP4 file path"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg executable"), EnvVars: []string{"FFMPEG_PATH"}, Category: l10n.T("Output")},
			&cli.BoolFlag{Name: "viewer", Usage: l10n.T("Open the result when done"), Category: l10n.T("Output")},
			&cli.BoolFlag{Name: "keep-intermediate", Usage: l10n.T("Keep the intermediate AVI file"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown run summary to this file"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "journal", Usage: l10n.T("Append progress events as JSON lines to this file"), Category: l10n.T("Output")},

			&cli.StringFlag{Name: "resolution", Aliases: []string{"r"}, Usage: l10n.T("Resolution preset name or index"), Category: l10n.T("Image")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("Capture quality (0-100)"), Category: l10n.T("Image")},
			&cli.Float64Flag{Name: "scale", Usage: l10n.T("Capture scale (0.1-1.0)"), Category: l10n.T("Image")},
			&cli.IntFlag{Name: "frame-padding", Usage: l10n.T("Frame number padding (0-4)"), Category: l10n.T("Image")},
			&cli.BoolFlag{Name: "ornaments", Usage: l10n.T("Show viewport ornaments"), Category: l10n.T("Image")},
			&cli.BoolFlag{Name: "offscreen", Usage: l10n.T("Render offscreen"), Category: l10n.T("Image")},
			&cli.BoolFlag{Name: "clear-cache", Usage: l10n.T("Clear the host cache before capturing"), Category: l10n.T("Image")},

			&cli.Float64Flag{Name: "start", Usage: l10n.T("First frame (selects an explicit range)"), Category: l10n.T("Time")},
			&cli.Float64Flag{Name: "end", Usage: l10n.T("Last frame (selects an explicit range)"), Category: l10n.T("Time")},
			&cli.BoolFlag{Name: "playback", Usage: l10n.T("Use the host's playback range"), Category: l10n.T("Time")},

			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: l10n.T("Host command port"), Category: l10n.T("Connection")},
			&cli.DurationFlag{Name: "timeout", Usage: l10n.T("Reply timeout (negative disables)"), Category: l10n.T("Connection")},

			&cli.BoolFlag{Name: "save", Usage: l10n.T("Store the given options as new defaults"), Category: l10n.T("Configuration")},
		},
		Action: runCapture,
	}
}

// applyFlags overrides stored settings with explicitly given flags.
func applyFlags(c *cli.Context, cfg config.Config) (config.Config, error) {
	b := playblast.FromConfig(cfg)

	if c.IsSet("output") {
		b.WithOutput(c.String("output"))
	}
	if c.IsSet("ffmpeg") {
		b.WithFFmpeg(c.String("ffmpeg"))
	}
	if c.IsSet("viewer") {
		b.WithViewer(c.Bool("viewer"))
	}
	if c.IsSet("keep-intermediate") {
		b.WithKeepIntermediate(c.Bool("keep-intermediate"))
	}
	if c.IsSet("resolution") {
		i, ok := config.FindResolution(c.String("resolution"))
		if !ok {
			return config.Config{}, fmt.Errorf("unknown resolution %q", c.String("resolution"))
		}
		b.WithResolution(i)
	}
	if c.IsSet("quality") {
		b.WithQuality(c.Int("quality"))
	}
	if c.IsSet("scale") {
		b.WithScale(c.Float64("scale"))
	}
	if c.IsSet("frame-padding") {
		b.WithFramePadding(c.Int("frame-padding"))
	}
	if c.IsSet("ornaments") {
		b.WithOrnaments(c.Bool("ornaments"))
	}
	if c.IsSet("offscreen") {
		b.WithOffscreen(c.Bool("offscreen"))
	}
	if c.IsSet("clear-cache") {
		b.WithClearCache(c.Bool("clear-cache"))
	}
	if c.IsSet("start") || c.IsSet("end") {
		start, end := cfg.Start, cfg.End
		if c.IsSet("start") {
			start = c.Float64("start")
		}
		if c.IsSet("end") {
			end = c.Float64("end")
		}
		b.WithFrameRange(start, end)
	}
	if c.Bool("playback") {
		b.WithPlaybackRange()
	}
	if c.IsSet("port") {
		b.WithPort(c.Int("port"))
	}
	if c.IsSet("timeout") {
		b.WithReplyTimeout(c.Duration("timeout"))
	}
	return b.Build(), nil
}

func runCapture(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()
	log := e.log

	stored, err := config.Load(e.settings)
	if err != nil {
		return err
	}
	cfg, err := applyFlags(c, stored)
	if err != nil {
		return err
	}
	if c.Bool("save") {
		if err := config.Save(e.settings, cfg); err != nil {
			return err
		}
	}

	// An unresolved encoder is passed on as configured so pre-flight
	// validation rejects it before the host is contacted.
	encoder, err := ffmpegtranscoder.FindFFmpeg(cfg.FFmpegPath)
	if err != nil {
		log.Debug("Encoder lookup failed: %s", err)
		encoder = cfg.FFmpegPath
		if encoder == "" {
			encoder = "ffmpeg"
		}
	}
	runCfg, err := cfg.ToOrchestratorConfig(encoder)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext(log)
	defer cancel()

	host := remote.New(remote.Options{
		Port:         cfg.Port,
		ReplyTimeout: cfg.ReplyTimeout,
		Logger:       log,
	})
	transcoder := ffmpegtranscoder.New(ffmpegtranscoder.Options{
		EncoderPath: encoder,
		Logger:      log,
	})

	var sink ports.ProgressSink = nullsink.New()
	if !c.Bool("quiet") {
		sink = logsink.New(log)
	}
	if path := c.String("journal"); path != "" {
		sink = multisink.New(sink, filesink.New(path, e.fs, log))
	}

	orch := playblast.NewOrchestrator(playblast.Deps{
		Host:       host,
		Transcoder: transcoder,
		Prober:     mp4probe.New(),
		FileSystem: e.fs,
		Viewer:     viewer.New(),
		Sink:       sink,
		Logger:     log,
	}, orchestrator.WithRunLock(runlock.Default()))

	result, runErr := orch.Run(ctx, runCfg)

	if path := c.String("summary"); path != "" {
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), e.fs)
		if err := w.Write(path, playblast.Summarize(result, runCfg)); err != nil {
			log.Warn("Could not write summary: %s", err)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, orchestrator.ErrRunInProgress) {
			return cli.Exit(runErr, 2)
		}
		return runErr
	}
	fmt.Fprintln(c.App.Writer, result.OutputPath)
	return nil
}
