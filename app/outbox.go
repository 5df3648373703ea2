package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/pagetime/internal/session"
	"github.com/ayoisaiah/pagetime/internal/ui"
	"github.com/ayoisaiah/pagetime/report"
	"github.com/ayoisaiah/pagetime/store"
)

// flushAction handles the flush command which delivers every spooled
// summary.
func flushAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	c, cancel := context.WithTimeout(ctx.Context, e.cfg.Backend.Timeout)
	defer cancel()

	n, err := e.client.Drain(c)

	report.Delivered(n)

	return err
}

// pendingAction handles the pending command which lists spooled summaries.
func pendingAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	queued, err := e.db.Pending()
	if err != nil {
		return err
	}

	rejected, err := e.db.Dead()
	if err != nil {
		return err
	}

	if len(queued) == 0 && len(rejected) == 0 {
		report.NothingPending()
		return nil
	}

	return printPendingTable(os.Stdout, queued, rejected)
}

// printPendingTable prints queued entries followed by rejected ones to w.
func printPendingTable(w io.Writer, queued, rejected []store.Entry) error {
	header := []string{
		"#", "QUEUED AT", "STATUS", "BOOK", "KIND", "DURATION", "FROM", "TO",
	}

	rows := make([][]string, 0, len(queued)+len(rejected))

	for _, e := range queued {
		rows = append(rows, pendingRow(e, "queued"))
	}

	for _, e := range rejected {
		rows = append(rows, pendingRow(e, ui.Red("rejected: "+e.Reason)))
	}

	return ui.PrintTable(w, header, rows)
}

func pendingRow(e store.Entry, status string) []string {
	row := []string{
		fmt.Sprintf("%d", e.ID),
		"",
		status,
	}

	if !e.QueuedAt.IsZero() {
		row[1] = e.QueuedAt.Local().Format("Jan 02, 2006 03:04 PM")
	}

	var s session.Summary

	if e.Corrupt || json.Unmarshal(e.Body, &s) != nil {
		return append(row, ui.Red("unreadable"), "", "", "", "")
	}

	return append(row,
		fmt.Sprintf("%d", s.SubjectID),
		ui.Cyan(string(s.MediaKind)),
		ui.Green(s.DurationFormatted),
		s.StartLocation,
		s.EndLocation,
	)
}
