// Package session measures how long a user actively engages with a book. It
// accrues engaged time across pauses and playback speed changes, checkpoints
// it to a backend periodically and flushes the remainder when the session
// ends or the client is torn down.
package session

import (
	"time"

	"github.com/ayoisaiah/pagetime/internal/timeutil"
)

// Kind distinguishes reading sessions from listening sessions.
type Kind string

const (
	KindText      Kind = "TEXT"
	KindAudiobook Kind = "AUDIOBOOK"
)

// DefaultRate is the rate applied when none, or an invalid one, is given.
const DefaultRate = 1.0

// Session is the record of one in-progress session.
type Session[P Position] struct {
	// StartTime is when the session began
	StartTime time.Time
	// WindowStart is the start of the current reporting window. It moves
	// forward every time a checkpoint is dispatched.
	WindowStart     time.Time
	StartPosition   P
	CurrentPosition P
	AuxiliaryID     *int64
	Kind            Kind
	SubjectID       int64
	acc             Accumulator
}

// summary reports the current window ending at now with the given number of
// engaged seconds.
func (s *Session[P]) summary(now time.Time, seconds float64) Summary {
	secs := timeutil.Round(seconds)

	return Summary{
		SubjectID:         s.SubjectID,
		MediaKind:         s.Kind,
		StartTime:         s.WindowStart.UTC(),
		EndTime:           now.UTC(),
		DurationSeconds:   secs,
		DurationFormatted: timeutil.FormatSeconds(secs),
		StartLocation:     s.StartPosition.String(),
		EndLocation:       s.CurrentPosition.String(),
		AuxiliaryID:       s.AuxiliaryID,
	}
}

// Snapshot is a read-only view of the current session.
type Snapshot[P Position] struct {
	StartTime       time.Time
	StartPosition   P
	CurrentPosition P
	Kind            Kind
	SubjectID       int64
	EngagedSeconds  float64
	Rate            float64
	Running         bool
}
