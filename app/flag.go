package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	backendURLFlag = &cli.StringFlag{
		Name:    "backend-url",
		Aliases: []string{"u"},
		Usage:   "Base URL of the backend that receives session summaries",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Minimum level written to the log file (debug, info, warn, error)",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	minDurationFlag = &cli.StringFlag{
		Name:  "min-duration",
		Usage: "Sessions shorter than this are not reported (default: 30s)",
	}

	intervalFlag = &cli.StringFlag{
		Name:    "interval",
		Aliases: []string{"i"},
		Usage:   "How often progress is reported during a session (default: 5m)",
	}

	bookFlag = &cli.Int64Flag{
		Name:     "book",
		Aliases:  []string{"b"},
		Usage:    "Identifier of the book being read or listened to",
		Required: true,
	}

	auxFlag = &cli.Int64Flag{
		Name:  "aux",
		Usage: "Identifier of the file variant being consumed",
	}

	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "Title shown on screen",
	}

	pageFlag = &cli.IntFlag{
		Name:    "page",
		Aliases: []string{"p"},
		Usage:   "Page to start reading from",
		Value:   1,
	}

	pagesFlag = &cli.IntFlag{
		Name:  "pages",
		Usage: "Number of pages in the book, used to report progress as a percentage",
	}

	offsetFlag = &cli.Int64Flag{
		Name:  "offset",
		Usage: "Playback offset in milliseconds to start listening from",
	}

	trackFlag = &cli.IntFlag{
		Name:  "track",
		Usage: "Zero-based index of the audio file for multi-file audiobooks",
		Value: -1,
	}

	rateFlag = &cli.Float64Flag{
		Name:  "rate",
		Usage: "Playback speed, from 0.5 to 3",
		Value: 1.0,
	}

	portFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Port for the development backend",
		Value: 8080,
	}
)

var sessionFlags = []cli.Flag{
	bookFlag,
	auxFlag,
	titleFlag,
	sessionCmdFlag,
	minDurationFlag,
	intervalFlag,
}
