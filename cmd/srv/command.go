package main

import "github.com/urfave/cli/v2"

// NewApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Relayer"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startRelayer,
			Name:        "relayer",
			Usage:       "Start the transaction relayer",
			Flags:       []cli.Flag{},
			Category:    "Relayer",
			Description: `Runs the single-account transaction queue and exposes it over RPC.`,
		},
	}

	s.app = app
}
