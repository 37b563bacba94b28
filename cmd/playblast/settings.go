package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/playblast/pkg/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: l10n.T("Show or change stored settings"),
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     l10n.T("Print one setting"),
				ArgsUsage: "<key>",
				Action:    runConfigGet,
			},
			{
				Name:      "set",
				Usage:     l10n.T("Change one setting"),
				ArgsUsage: "<key> <value>",
				Action:    runConfigSet,
			},
			{
				Name:   "list",
				Usage:  l10n.T("Print all settings"),
				Action: runConfigList,
			},
			{
				Name:   "reset",
				Usage:  l10n.T("Restore default settings"),
				Action: runConfigReset,
			},
			{
				Name:   "path",
				Usage:  l10n.T("Print the settings file path"),
				Action: runConfigPath,
			},
		},
	}
}

func runConfigGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("config get takes one key"), 2)
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	// Loading records defaults for absent keys.
	if _, err := config.Load(e.settings); err != nil {
		return err
	}
	key := c.Args().First()
	v := e.settings.Get(key, nil)
	if v == nil {
		return cli.Exit(l10n.F("unknown setting %q", key), 1)
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}

func runConfigSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(l10n.T("config set takes a key and a value"), 2)
	}
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	key, text := c.Args().Get(0), c.Args().Get(1)
	v, err := config.ParseValue(key, text)
	if err != nil {
		return err
	}
	if err := e.settings.Set(key, v); err != nil {
		return err
	}
	_, err = config.Load(e.settings)
	return err
}

func runConfigList(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	if _, err := config.Load(e.settings); err != nil {
		return err
	}
	for _, key := range e.settings.Keys() {
		fmt.Fprintf(c.App.Writer, "%s = %v\n", key, e.settings.Get(key, nil))
	}
	return nil
}

func runConfigReset(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()
	return e.settings.Reset()
}

func runConfigPath(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()
	fmt.Fprintln(c.App.Writer, e.settings.Path())
	return nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("playblast version %s", version))
			return nil
		},
	}
}
