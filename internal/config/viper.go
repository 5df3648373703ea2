package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyBackendURL        = "backend.url"
	keyBackendTimeout    = "backend.timeout"
	keyBeaconTimeout     = "backend.beacon_timeout"
	keyMinDuration       = "session.min_duration"
	keyReadingInterval   = "session.reading_interval"
	keyListeningInterval = "session.listening_interval"
	keySessionCmd        = "session.cmd"
	keyLogLevel          = "log.level"
	keyDarkTheme         = "display.dark_theme"
)

const (
	DefaultBackendURL        = "http://localhost:8080/api"
	defaultBackendTimeout    = "10s"
	defaultBeaconTimeout     = "2s"
	defaultMinDuration       = "30s"
	defaultReadingInterval   = "5m"
	defaultListeningInterval = "5m"
)

// WithViperConfig returns an Option that loads configuration from Viper. A
// config file with default values is written if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyBackendURL, DefaultBackendURL)
	v.SetDefault(keyBackendTimeout, defaultBackendTimeout)
	v.SetDefault(keyBeaconTimeout, defaultBeaconTimeout)
	v.SetDefault(keyMinDuration, defaultMinDuration)
	v.SetDefault(keyReadingInterval, defaultReadingInterval)
	v.SetDefault(keyListeningInterval, defaultListeningInterval)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDarkTheme, true)

	if c.Backend.URL != "" {
		v.Set(keyBackendURL, c.Backend.URL)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
