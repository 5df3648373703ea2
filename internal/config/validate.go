package config

import (
	"log/slog"
	"net/url"
	"time"
)

var (
	minMinDuration = 1 * time.Second
	maxMinDuration = 10 * time.Minute

	minInterval = 10 * time.Second
	maxInterval = 1 * time.Hour
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateBackendURL(c.Backend.URL); err != nil {
		return err
	}

	if c.Backend.Timeout <= 0 {
		return errInvalidTimeout.Fmt("backend timeout")
	}

	if c.Backend.BeaconTimeout <= 0 {
		return errInvalidTimeout.Fmt("beacon timeout")
	}

	if err := validateRange(
		"minimum session duration",
		c.Session.MinDuration,
		minMinDuration,
		maxMinDuration,
	); err != nil {
		return err
	}

	if err := validateRange(
		"reading interval",
		c.Session.ReadingInterval,
		minInterval,
		maxInterval,
	); err != nil {
		return err
	}

	if err := validateRange(
		"listening interval",
		c.Session.ListeningInterval,
		minInterval,
		maxInterval,
	); err != nil {
		return err
	}

	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return nil
}

func validateRange(name string, d, lo, hi time.Duration) error {
	if d < lo || d > hi {
		return errInvalidDuration.Fmt(name, lo, hi, d)
	}

	return nil
}

func validateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return errInvalidBackendURL.Fmt(raw)
	}

	return nil
}
