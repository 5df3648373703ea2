package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Summary is the payload delivered to the backend at every checkpoint and
// at the end of a session.
type Summary struct {
	StartTime         time.Time `json:"startTime"         validate:"required"`
	EndTime           time.Time `json:"endTime"           validate:"required"`
	AuxiliaryID       *int64    `json:"auxiliaryId,omitempty"`
	MediaKind         Kind      `json:"mediaKind"         validate:"required,oneof=TEXT AUDIOBOOK"`
	DurationFormatted string    `json:"durationFormatted" validate:"required"`
	StartLocation     string    `json:"startLocation"`
	EndLocation       string    `json:"endLocation"`
	SubjectID         int64     `json:"subjectId"         validate:"gt=0"`
	DurationSeconds   int       `json:"durationSeconds"   validate:"gte=0"`
}

// Validate checks that the summary is fit to be delivered.
func (s Summary) Validate() error {
	return validate.Struct(s)
}

// LogValue keeps log lines compact.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("subject_id", s.SubjectID),
		slog.String("kind", string(s.MediaKind)),
		slog.Int("duration_seconds", s.DurationSeconds),
		slog.String("start_location", s.StartLocation),
		slog.String("end_location", s.EndLocation),
	)
}

// Dispatcher delivers summaries to the backend.
type Dispatcher interface {
	// Send performs an ordinary request/response delivery. The tracker calls
	// it on its own goroutine and never waits for it.
	Send(ctx context.Context, s Summary) error
	// Beacon hands the summary to a delivery mechanism that outlives the
	// process. It reports whether the summary was accepted for sending, not
	// whether it arrived.
	Beacon(s Summary) bool
}
