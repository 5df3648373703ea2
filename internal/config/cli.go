package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	BackendURL  string
	SessionCmd  string
	LogLevel    string
	MinDuration string
	Interval    string
	Listening   bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			BackendURL:  ctx.String("backend-url"),
			SessionCmd:  ctx.String("session-cmd"),
			LogLevel:    ctx.String("log-level"),
			MinDuration: ctx.String("min-duration"),
			Interval:    ctx.String("interval"),
			Listening:   ctx.Command != nil && ctx.Command.Name == "listen",
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config. Flags that were not
// set leave the file values untouched.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.BackendURL != "" {
		c.Backend.URL = strings.TrimSpace(opts.BackendURL)
	}

	if opts.SessionCmd != "" {
		c.Session.Cmd = opts.SessionCmd
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	if opts.MinDuration != "" {
		d, err := parseDuration(opts.MinDuration)
		if err != nil {
			return errInvalidCLIDuration.Fmt("min-duration", opts.MinDuration).Wrap(err)
		}

		c.Session.MinDuration = d
	}

	if opts.Interval != "" {
		d, err := parseDuration(opts.Interval)
		if err != nil {
			return errInvalidCLIDuration.Fmt("interval", opts.Interval).Wrap(err)
		}

		if opts.Listening {
			c.Session.ListeningInterval = d
		} else {
			c.Session.ReadingInterval = d
		}
	}

	return nil
}

// parseDuration accepts Go duration strings, or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	return time.ParseDuration(s + "s")
}
