package player

import (
	"time"

	"github.com/ayoisaiah/pagetime/internal/session"
)

// Playback rates a listener supports.
const (
	MinRate = 0.5
	MaxRate = 3.0
)

const (
	rateStep = 0.25

	seekForward = 30 * time.Second
	seekBack    = 15 * time.Second
)

// Status is what the screen shows about the current session.
type Status struct {
	Title     string
	Position  string
	Unsent    time.Duration
	Rate      float64
	Running   bool
	Active    bool
	Listening bool
}

// Controller translates key presses into tracker calls for one kind of
// media.
type Controller interface {
	Toggle()
	Forward()
	Back()
	Next()
	Faster()
	Slower()
	// Advance moves the position along with playback. elapsed is wall time.
	Advance(elapsed time.Duration)
	End()
	Status() Status
}

func unsent(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// Reader drives a reading session. Pages are 1-based.
type Reader struct {
	tracker   *session.Tracker[session.Page]
	title     string
	subjectID int64
	page      int
	pages     int
}

// NewReader returns a Reader positioned at page. pages is the length of the
// book, or zero when unknown.
func NewReader(
	tr *session.Tracker[session.Page],
	title string,
	subjectID int64,
	page, pages int,
) *Reader {
	if page < 1 {
		page = 1
	}

	return &Reader{
		tracker:   tr,
		title:     title,
		subjectID: subjectID,
		page:      page,
		pages:     pages,
	}
}

// Start begins a session at the current page.
func (r *Reader) Start(opts ...session.StartOption) {
	r.tracker.Start(r.subjectID, r.position(), session.DefaultRate, opts...)
}

func (r *Reader) position() session.Page {
	p := session.Page{Number: r.page}

	if r.pages > 0 {
		p.Percent = float64(r.page) / float64(r.pages) * 100
	}

	return p
}

func (r *Reader) Toggle() {
	if r.tracker.Running() {
		r.tracker.Pause(r.position())
		return
	}

	r.tracker.Resume(r.position())
}

func (r *Reader) Forward() {
	if r.pages > 0 && r.page >= r.pages {
		return
	}

	r.page++
	r.tracker.UpdatePosition(r.position())
}

func (r *Reader) Back() {
	if r.page <= 1 {
		return
	}

	r.page--
	r.tracker.UpdatePosition(r.position())
}

func (r *Reader) Next() {
	r.Forward()
}

func (r *Reader) Faster() {}

func (r *Reader) Slower() {}

func (r *Reader) Advance(time.Duration) {}

func (r *Reader) End() {
	r.tracker.EndAt(r.position())
}

func (r *Reader) Status() Status {
	st := Status{
		Title:    r.title,
		Position: "page " + r.position().String(),
		Rate:     session.DefaultRate,
	}

	snap, ok := r.tracker.Snapshot()
	if ok {
		st.Active = true
		st.Running = snap.Running
		st.Unsent = unsent(snap.EngagedSeconds)
	}

	return st
}

// Listener drives a listening session. The position follows playback at
// the current speed while the session is running.
type Listener struct {
	tracker   *session.Tracker[session.Audio]
	title     string
	pos       session.Audio
	subjectID int64
	rate      float64
	carry     float64
}

// NewListener returns a Listener at pos playing at rate. Rates outside the
// supported range are clamped.
func NewListener(
	tr *session.Tracker[session.Audio],
	title string,
	subjectID int64,
	pos session.Audio,
	rate float64,
) *Listener {
	if !session.ValidRate(rate) {
		rate = session.DefaultRate
	}

	return &Listener{
		tracker:   tr,
		title:     title,
		subjectID: subjectID,
		pos:       pos,
		rate:      min(max(rate, MinRate), MaxRate),
	}
}

// Start begins a session at the current position and speed.
func (l *Listener) Start(opts ...session.StartOption) {
	l.tracker.Start(l.subjectID, l.pos, l.rate, opts...)
}

func (l *Listener) Toggle() {
	if l.tracker.Running() {
		l.tracker.Pause(l.pos)
		return
	}

	l.tracker.Resume(l.pos)
}

func (l *Listener) Advance(elapsed time.Duration) {
	if elapsed <= 0 || !l.tracker.Running() {
		return
	}

	ms := float64(elapsed.Milliseconds())*l.rate + l.carry
	whole := int64(ms)

	l.carry = ms - float64(whole)
	l.pos.OffsetMs += whole

	l.tracker.UpdatePosition(l.pos)
}

func (l *Listener) seek(d time.Duration) {
	l.pos.OffsetMs = max(l.pos.OffsetMs+d.Milliseconds(), 0)
	l.carry = 0

	l.tracker.UpdatePosition(l.pos)
}

func (l *Listener) Forward() {
	l.seek(seekForward)
}

func (l *Listener) Back() {
	l.seek(-seekBack)
}

// Next skips to the start of the following file. Single-file audiobooks
// have no next file.
func (l *Listener) Next() {
	if l.pos.Track == session.NoTrack {
		return
	}

	l.pos = session.TrackAt(l.pos.Track+1, 0)
	l.carry = 0

	l.tracker.UpdatePosition(l.pos)
}

func (l *Listener) setRate(rate float64) {
	rate = min(max(rate, MinRate), MaxRate)
	if rate == l.rate {
		return
	}

	l.rate = rate
	l.tracker.UpdateRate(rate)
}

func (l *Listener) Faster() {
	l.setRate(l.rate + rateStep)
}

func (l *Listener) Slower() {
	l.setRate(l.rate - rateStep)
}

func (l *Listener) End() {
	l.tracker.EndAt(l.pos)
}

func (l *Listener) Status() Status {
	st := Status{
		Title:     l.title,
		Position:  formatAudio(l.pos),
		Rate:      l.rate,
		Listening: true,
	}

	snap, ok := l.tracker.Snapshot()
	if ok {
		st.Active = true
		st.Running = snap.Running
		st.Unsent = unsent(snap.EngagedSeconds)
	}

	return st
}
