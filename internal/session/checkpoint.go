package session

import "log/slog"

// checkpoint reports the time accrued in the current window and starts a new
// one. It runs on the scheduler, so it first makes sure sess is still the
// session the task was started for.
//
// The window is reset once the summary is handed off, not once delivery is
// confirmed. A failed delivery loses at most one interval; no interval is
// ever reported twice.
func (t *Tracker[P]) checkpoint(sess *Session[P]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != sess || !sess.acc.Running() {
		return
	}

	now := t.opts.Clock.Now()

	total := sess.acc.Total(now)
	if !t.reportable(total) {
		t.logger.Debug("skipping checkpoint", slog.Float64("seconds", total))
		return
	}

	t.sendAsync(sess.summary(now, total), "checkpoint")

	sess.acc.Reset(now)
	sess.StartPosition = sess.CurrentPosition
	sess.WindowStart = now
}
