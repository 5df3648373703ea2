package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pagetime/internal/config"
	"github.com/ayoisaiah/pagetime/internal/dispatch"
	"github.com/ayoisaiah/pagetime/internal/logger"
	"github.com/ayoisaiah/pagetime/internal/pathutil"
	"github.com/ayoisaiah/pagetime/internal/session"
	"github.com/ayoisaiah/pagetime/internal/ui"
	"github.com/ayoisaiah/pagetime/store"
)

// env is everything a command needs once configuration has been loaded.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *store.Client
	client    *dispatch.Client
	logCloser io.Closer
	bg        sync.WaitGroup
}

func setup(ctx *cli.Context) (*env, error) {
	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
		config.WithPaths(
			configPath,
			pathutil.DBFilePath(),
			pathutil.LogFilePath(),
		),
	)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	l, closer, err := logger.New(cfg.System.LogPath, level)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:       cfg,
		logger:    l,
		logCloser: closer,
	}

	e.db, err = store.NewClient(cfg.System.DBPath)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.client = dispatch.New(
		cfg.Backend.URL,
		dispatch.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		dispatch.WithOutbox(e.db),
		dispatch.WithBeaconTimeout(cfg.Backend.BeaconTimeout),
		dispatch.WithLogger(l),
	)

	l.Debug("pagetime started",
		slog.String("command", ctx.Command.Name),
		slog.String("backend", e.client.Endpoint()))

	return e, nil
}

func (e *env) trackerOptions(interval time.Duration) session.Options {
	return session.Options{
		Dispatcher:  e.client,
		Logger:      e.logger,
		Interval:    interval,
		MinDuration: e.cfg.Session.MinDuration,
		SendTimeout: e.cfg.Backend.Timeout,
	}
}

// drainInBackground delivers summaries left over from earlier runs without
// holding up the command.
func (e *env) drainInBackground() {
	e.bg.Add(1)

	go func() {
		defer e.bg.Done()

		ctx, cancel := context.WithTimeout(
			context.Background(),
			e.cfg.Backend.Timeout,
		)
		defer cancel()

		n, err := e.client.Drain(ctx)
		if err != nil {
			e.logger.Warn("outbox drain failed",
				slog.Int("delivered", n),
				slog.Any("error", err))

			return
		}

		if n > 0 {
			e.logger.Info("outbox drained", slog.Int("delivered", n))
		}
	}()
}

// Close waits for background work and releases the database and log file.
func (e *env) Close() {
	e.bg.Wait()

	if e.db != nil {
		_ = e.db.Close()
	}

	if e.logCloser != nil {
		_ = e.logCloser.Close()
	}
}
