package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/playblast/pkg/config"
	"github.com/user/playblast/pkg/remote"
)

func portFlag() cli.Flag {
	return &cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: l10n.T("Host command port")}
}

func pingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: l10n.T("Check that the host's command port answers"),
		Flags: []cli.Flag{portFlag()},
		Action: withHost(func(ctx context.Context, c *cli.Context, host *remote.Client) error {
			v, err := host.HostVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, l10n.F("Connected to port %d, host version %s", host.Port(), v))
			return nil
		}),
	}
}

func rangeCommand() *cli.Command {
	return &cli.Command{
		Name:  "range",
		Usage: l10n.T("Print the host's playback range"),
		Flags: []cli.Flag{portFlag()},
		Action: withHost(func(ctx context.Context, c *cli.Context, host *remote.Client) error {
			start, end, err := host.PlaybackRange(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s %s\n", formatFrame(start), formatFrame(end))
			return nil
		}),
	}
}

// withHost connects a Client using stored settings and the --port flag,
// runs fn and disconnects.
func withHost(fn func(ctx context.Context, c *cli.Context, host *remote.Client) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := setup(c)
		if err != nil {
			return err
		}
		defer e.close()

		cfg, err := config.Load(e.settings)
		if err != nil {
			return err
		}
		if c.IsSet("port") {
			cfg.Port = c.Int("port")
		}

		ctx, cancel := interruptContext(e.log)
		defer cancel()

		host := remote.New(remote.Options{
			Port:         cfg.Port,
			ReplyTimeout: cfg.ReplyTimeout,
			Logger:       e.log,
		})
		if err := host.Connect(ctx, cfg.Port); err != nil {
			return err
		}
		defer func() {
			if err := host.Disconnect(); err != nil {
				e.log.Warn("Could not disconnect: %s", err)
			}
		}()
		return fn(ctx, c, host)
	}
}

func formatFrame(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
