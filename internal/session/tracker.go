package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/pagetime/internal/clock"
	"github.com/ayoisaiah/pagetime/internal/scheduler"
	"github.com/ayoisaiah/pagetime/internal/timeutil"
)

const (
	DefaultMinDuration = 30 * time.Second
	DefaultInterval    = 5 * time.Minute
	DefaultSendTimeout = 10 * time.Second
)

// Options configures a Tracker. Only Dispatcher is required.
type Options struct {
	Dispatcher  Dispatcher
	Clock       clock.Clock
	Scheduler   scheduler.Scheduler
	Logger      *slog.Logger
	Interval    time.Duration
	MinDuration time.Duration
	SendTimeout time.Duration
}

func (o *Options) setDefaults() {
	if o.Dispatcher == nil {
		panic("session: tracker requires a Dispatcher")
	}

	if o.Clock == nil {
		o.Clock = clock.System{}
	}

	if o.Scheduler == nil {
		o.Scheduler = scheduler.Interval{}
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}

	if o.MinDuration <= 0 {
		o.MinDuration = DefaultMinDuration
	}

	if o.SendTimeout <= 0 {
		o.SendTimeout = DefaultSendTimeout
	}
}

type startOptions struct {
	auxiliaryID *int64
}

// StartOption customises a new session.
type StartOption func(*startOptions)

// WithAuxiliaryID attaches a secondary identifier, such as the file variant
// being consumed, which is passed through to every summary unchanged.
func WithAuxiliaryID(id int64) StartOption {
	return func(o *startOptions) {
		o.auxiliaryID = &id
	}
}

// Tracker owns at most one session at a time and exposes its lifecycle.
// Every method is safe for concurrent use; callers may invoke them
// speculatively since operations without a session do nothing.
type Tracker[P Position] struct {
	opts     Options
	logger   *slog.Logger
	current  *Session[P]
	task     scheduler.Task
	inflight sync.WaitGroup
	kind     Kind
	mu       sync.Mutex
}

// New returns a tracker for sessions of the given kind.
func New[P Position](kind Kind, opts Options) *Tracker[P] {
	opts.setDefaults()

	return &Tracker[P]{
		kind:   kind,
		opts:   opts,
		logger: opts.Logger.With(slog.String("kind", string(kind))),
	}
}

// NewReadingTracker returns a tracker for page-based reading sessions.
func NewReadingTracker(opts Options) *Tracker[Page] {
	return New[Page](KindText, opts)
}

// NewListeningTracker returns a tracker for audiobook listening sessions.
func NewListeningTracker(opts Options) *Tracker[Audio] {
	return New[Audio](KindAudiobook, opts)
}

// Kind reports the kind of sessions this tracker records.
func (t *Tracker[P]) Kind() Kind {
	return t.kind
}

// Start begins a new running session. Any session already in progress is
// ended first, exactly as if End had been called.
func (t *Tracker[P]) Start(
	subjectID int64,
	pos P,
	rate float64,
	opts ...StartOption,
) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		t.logger.Debug("ending previous session before starting a new one",
			slog.Int64("subject_id", t.current.SubjectID))
		t.endLocked()
	}

	if !ValidRate(rate) {
		t.logger.Warn("invalid rate, using default",
			slog.Float64("rate", rate))

		rate = DefaultRate
	}

	var o startOptions
	for _, opt := range opts {
		opt(&o)
	}

	now := t.opts.Clock.Now()

	sess := &Session[P]{
		SubjectID:       subjectID,
		Kind:            t.kind,
		StartTime:       now,
		WindowStart:     now,
		StartPosition:   pos,
		CurrentPosition: pos,
		AuxiliaryID:     o.auxiliaryID,
		acc:             NewAccumulator(now, rate),
	}

	t.current = sess

	t.task = t.opts.Scheduler.Every(t.opts.Interval, func() {
		t.checkpoint(sess)
	})

	t.logger.Info("session started",
		slog.Int64("subject_id", subjectID),
		slog.String("position", pos.String()),
		slog.Float64("rate", rate))
}

// Pause stops accruing time and records the position.
func (t *Tracker[P]) Pause(pos P) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess := t.current
	if sess == nil || !sess.acc.Running() {
		return
	}

	sess.acc.Pause(t.opts.Clock.Now())
	sess.CurrentPosition = pos
}

// Resume starts accruing time again and records the position.
func (t *Tracker[P]) Resume(pos P) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess := t.current
	if sess == nil || sess.acc.Running() {
		return
	}

	sess.acc.Resume(t.opts.Clock.Now())
	sess.CurrentPosition = pos
}

// UpdatePosition records the position without touching the timing.
func (t *Tracker[P]) UpdatePosition(pos P) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return
	}

	t.current.CurrentPosition = pos
}

// UpdateRate changes the playback or reading speed. Time elapsed so far is
// accrued at the old rate.
func (t *Tracker[P]) UpdateRate(rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return
	}

	if !ValidRate(rate) {
		t.logger.Warn("ignoring invalid rate", slog.Float64("rate", rate))
		return
	}

	t.current.acc.SetRate(t.opts.Clock.Now(), rate)
}

// End finishes the session at its current position and dispatches the final
// summary asynchronously, unless too little time was accrued.
func (t *Tracker[P]) End() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.endLocked()
}

// EndAt records the final position and ends the session.
func (t *Tracker[P]) EndAt(pos P) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return
	}

	t.current.CurrentPosition = pos

	t.endLocked()
}

func (t *Tracker[P]) endLocked() {
	summary, ok := t.finishLocked()
	if !ok {
		return
	}

	t.sendAsync(summary, "end")
}

// Teardown flushes the session when the client is going away. The summary
// is delivered through the dispatcher's beacon path only, since ordinary
// requests may not survive the process.
func (t *Tracker[P]) Teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary, ok := t.finishLocked()
	if !ok {
		return
	}

	if !t.opts.Dispatcher.Beacon(summary) {
		t.logger.Error("teardown flush was not accepted", slog.Any("summary", summary))
		return
	}

	t.logger.Info("teardown flush accepted", slog.Any("summary", summary))
}

// finishLocked stops the checkpoints, accrues the final interval and clears
// the session. It returns the final summary if it is long enough to report.
func (t *Tracker[P]) finishLocked() (Summary, bool) {
	sess := t.current
	if sess == nil {
		return Summary{}, false
	}

	t.stopCheckpointsLocked()

	t.current = nil

	now := t.opts.Clock.Now()

	sess.acc.Pause(now)

	if !t.reportable(sess.acc.Seconds) {
		t.logger.Debug("discarding short session",
			slog.Int64("subject_id", sess.SubjectID),
			slog.Float64("seconds", sess.acc.Seconds))

		return Summary{}, false
	}

	return sess.summary(now, sess.acc.Seconds), true
}

func (t *Tracker[P]) stopCheckpointsLocked() {
	if t.task == nil {
		return
	}

	t.task.Stop()
	t.task = nil
}

// reportable applies the minimum duration rule to whole seconds.
func (t *Tracker[P]) reportable(seconds float64) bool {
	return timeutil.Round(seconds) >= int(t.opts.MinDuration/time.Second)
}

// sendAsync hands the summary to the dispatcher on a separate goroutine.
// Failures are logged and dropped.
func (t *Tracker[P]) sendAsync(summary Summary, reason string) {
	t.inflight.Add(1)

	go func() {
		defer t.inflight.Done()

		ctx, cancel := context.WithTimeout(
			context.Background(),
			t.opts.SendTimeout,
		)
		defer cancel()

		err := t.opts.Dispatcher.Send(ctx, summary)
		if err != nil {
			t.logger.Warn("session dispatch failed",
				slog.String("reason", reason),
				slog.Any("summary", summary),
				slog.Any("error", err))

			return
		}

		t.logger.Debug("session dispatched",
			slog.String("reason", reason),
			slog.Any("summary", summary))
	}()
}

// Wait blocks until every asynchronous dispatch started so far has
// returned.
func (t *Tracker[P]) Wait() {
	t.inflight.Wait()
}

// Active reports whether a session exists.
func (t *Tracker[P]) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current != nil
}

// Running reports whether a session exists and is not paused.
func (t *Tracker[P]) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current != nil && t.current.acc.Running()
}

// Snapshot returns a copy of the current session state.
func (t *Tracker[P]) Snapshot() (Snapshot[P], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess := t.current
	if sess == nil {
		return Snapshot[P]{}, false
	}

	return Snapshot[P]{
		SubjectID:       sess.SubjectID,
		Kind:            sess.Kind,
		StartTime:       sess.StartTime,
		StartPosition:   sess.StartPosition,
		CurrentPosition: sess.CurrentPosition,
		EngagedSeconds:  sess.acc.Total(t.opts.Clock.Now()),
		Rate:            sess.acc.Rate,
		Running:         sess.acc.Running(),
	}, true
}
