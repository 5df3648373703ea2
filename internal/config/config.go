// Package config loads pagetime settings from the config file, first-run
// prompts and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Backend BackendConfig `mapstructure:"backend"`
		Session SessionConfig `mapstructure:"session"`
		Log     LogConfig     `mapstructure:"log"`
		Display DisplayConfig `mapstructure:"display"`
		System  SystemConfig  `mapstructure:"-"`
	}

	// BackendConfig holds the delivery endpoint settings
	BackendConfig struct {
		URL           string        `mapstructure:"url"`
		Timeout       time.Duration `mapstructure:"timeout"`
		BeaconTimeout time.Duration `mapstructure:"beacon_timeout"`
	}

	// SessionConfig holds tracking settings
	SessionConfig struct {
		Cmd               string        `mapstructure:"cmd"`
		MinDuration       time.Duration `mapstructure:"min_duration"`
		ReadingInterval   time.Duration `mapstructure:"reading_interval"`
		ListeningInterval time.Duration `mapstructure:"listening_interval"`
	}

	// LogConfig holds logging settings
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// SystemConfig holds resolved file locations. It is never read from or
	// written to the config file.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		LogPath    string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order. The result is
// validated before it is returned.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}

// WithPaths records where the config, database and log files live.
func WithPaths(configPath, dbPath, logPath string) Option {
	return func(c *Config) error {
		c.System = SystemConfig{
			ConfigPath: configPath,
			DBPath:     dbPath,
			LogPath:    logPath,
		}

		return nil
	}
}

// Interval returns the checkpoint interval for the given media kind.
func (c *Config) Interval(listening bool) time.Duration {
	if listening {
		return c.Session.ListeningInterval
	}

	return c.Session.ReadingInterval
}
