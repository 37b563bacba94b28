package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/playblast/pkg/adapters/ffmpegtranscoder"
	"github.com/user/playblast/pkg/config"
	"github.com/user/playblast/pkg/ports"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:        "convert",
		Usage:       l10n.T("Convert an existing recording to MP4"),
		ArgsUsage:   "<input> [output]",
		Description: l10n.T("Run ffmpeg over a recording. Without an output the input's extension is replaced by .mp4."),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg executable"), EnvVars: []string{"FFMPEG_PATH"}},
			&cli.BoolFlag{Name: "remove-input", Usage: l10n.T("Delete the input after a successful conversion")},
		},
		Action: runConvert,
	}
}

func runConvert(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return cli.Exit(l10n.T("convert takes an input and an optional output"), 2)
	}
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
	explicit := stored.FFmpegPath
	if c.IsSet("ffmpeg") {
		explicit = c.String("ffmpeg")
	}

	ctx, cancel := interruptContext(log)
	defer cancel()

	t := ffmpegtranscoder.New(ffmpegtranscoder.Options{EncoderPath: explicit, Logger: log})
	job := ports.TranscodeJob{InputPath: c.Args().Get(0), OutputPath: c.Args().Get(1)}

	log.Info("Converting %s to %s", job.InputPath,
		ffmpegtranscoder.DeriveOutputPath(job.InputPath, job.OutputPath, ffmpegtranscoder.DefaultExtension))
	result, err := t.Convert(ctx, job)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return cli.Exit(fmt.Sprintf(l10n.T("ffmpeg exited with status %d"), result.ExitCode), 1)
	}

	if c.Bool("remove-input") {
		if err := e.fs.Remove(job.InputPath); err != nil {
			log.Warn("Could not remove intermediate file %s: %s", job.InputPath, err)
		}
	}
	fmt.Fprintln(c.App.Writer, result.OutputPath)
	return nil
}
