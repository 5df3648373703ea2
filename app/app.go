package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pagetime/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the pagetime app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "pagetime",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		pagetime measures how long you actually spend reading or listening to a 
		book and reports it to your library server. Paused time is never counted, 
		and progress is saved periodically so an abrupt exit loses little.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "read",
				Usage:     "Track a reading session",
				UsageText: "pagetime read --book <id> [--page <n>] [--pages <n>] [--aux <id>]",
				Flags:     append([]cli.Flag{pageFlag, pagesFlag}, sessionFlags...),
				Action:    readAction,
			},
			{
				Name:      "listen",
				Usage:     "Track a listening session",
				UsageText: "pagetime listen --book <id> [--offset <ms>] [--track <n>] [--rate <x>]",
				Flags: append(
					[]cli.Flag{offsetFlag, trackFlag, rateFlag},
					sessionFlags...,
				),
				Action: listenAction,
			},
			{
				Name:   "flush",
				Usage:  "Deliver summaries saved while pagetime was shutting down",
				Action: flushAction,
			},
			{
				Name:   "pending",
				Usage:  "List summaries waiting to be delivered",
				Action: pendingAction,
			},
			{
				Name:   "serve",
				Usage:  "Run a development backend that accepts session summaries",
				Flags:  []cli.Flag{portFlag},
				Action: serveAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			backendURLFlag,
			logLevelFlag,
			noColorFlag,
		},
		Before: beforeAction,
	}
}
