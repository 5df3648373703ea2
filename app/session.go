package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pagetime/internal/session"
	"github.com/ayoisaiah/pagetime/internal/teardown"
	"github.com/ayoisaiah/pagetime/internal/ui/player"
	"github.com/ayoisaiah/pagetime/report"
)

// exitGrace bounds how long a signal-triggered exit waits for the terminal
// to be restored.
const exitGrace = 2 * time.Second

func bookID(ctx *cli.Context) (int64, error) {
	id := ctx.Int64("book")
	if id <= 0 {
		return 0, errInvalidBook.Fmt(id)
	}

	return id, nil
}

func title(ctx *cli.Context, id int64) string {
	return firstNonEmptyString(ctx.String("title"), fmt.Sprintf("Book %d", id))
}

func startOptions(ctx *cli.Context) []session.StartOption {
	if !ctx.IsSet("aux") {
		return nil
	}

	return []session.StartOption{session.WithAuxiliaryID(ctx.Int64("aux"))}
}

// readAction handles the read command.
func readAction(ctx *cli.Context) error {
	id, err := bookID(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	e.drainInBackground()

	tr := session.NewReadingTracker(e.trackerOptions(e.cfg.Session.ReadingInterval))

	r := player.NewReader(tr, title(ctx, id), id, ctx.Int("page"), ctx.Int("pages"))
	r.Start(startOptions(ctx)...)

	return e.run(r, tr.Teardown, tr.Wait)
}

// listenAction handles the listen command.
func listenAction(ctx *cli.Context) error {
	id, err := bookID(ctx)
	if err != nil {
		return err
	}

	rate := ctx.Float64("rate")
	if !session.ValidRate(rate) || rate < player.MinRate || rate > player.MaxRate {
		return errInvalidRate.Fmt(player.MinRate, player.MaxRate, rate)
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	e.drainInBackground()

	tr := session.NewListeningTracker(e.trackerOptions(e.cfg.Session.ListeningInterval))

	pos := session.AudioAt(max(ctx.Int64("offset"), 0))
	if track := ctx.Int("track"); track >= 0 {
		pos = session.TrackAt(track, pos.OffsetMs)
	}

	l := player.NewListener(tr, title(ctx, id), id, pos, rate)
	l.Start(startOptions(ctx)...)

	return e.run(l, tr.Teardown, tr.Wait)
}

// run shows the session screen until the user finishes the session or the
// process is told to stop. abort must deliver whatever is unreported
// without blocking on the network.
func (e *env) run(ctrl player.Controller, abort, wait func()) error {
	done := make(chan struct{})

	hook := teardown.New(func(code int) {
		select {
		case <-done:
		case <-time.After(exitGrace):
		}

		os.Exit(code)
	})

	model := player.New(
		ctrl,
		player.WithAbort(func() { hook.Trigger() }),
		player.WithDarkTheme(e.cfg.Display.DarkTheme),
	)

	p := tea.NewProgram(model, tea.WithoutSignalHandler())

	hook.Register(abort)
	hook.Register(p.Kill)
	hook.Listen()

	defer hook.Stop()

	_, err := p.Run()

	close(done)

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		hook.Trigger()
		return err
	}

	if hook.Fired() {
		e.logger.Info("session torn down")
		return nil
	}

	waitFor(wait, e.cfg.Backend.Timeout)

	if err := runSessionCmd(e.cfg.Session.Cmd); err != nil {
		report.Error(err)
	}

	return nil
}

// waitFor calls wait but gives up after d.
func waitFor(wait func(), d time.Duration) {
	finished := make(chan struct{})

	go func() {
		wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(d):
	}
}

// runSessionCmd executes the user's session command after a session ends.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
