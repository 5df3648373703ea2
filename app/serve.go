package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pagetime/backend"
	"github.com/ayoisaiah/pagetime/internal/config"
	"github.com/ayoisaiah/pagetime/internal/logger"
	"github.com/ayoisaiah/pagetime/internal/teardown"
	"github.com/ayoisaiah/pagetime/report"
)

const shutdownTimeout = 5 * time.Second

// serveAction runs the development backend until interrupted.
func serveAction(ctx *cli.Context) error {
	level := slog.LevelInfo

	if s := ctx.String("log-level"); s != "" {
		var err error

		level, err = logger.ParseLevel(s)
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", ctx.Uint("port")),
		Handler:           backend.New(logger.NewWithWriter(config.Stdout, level)).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, teardown.Signals...)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	report.Serving(srv.Addr)

	select {
	case err := <-errCh:
		return errServe.Wrap(err)
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
