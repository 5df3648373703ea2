package session

import (
	"math"
	"time"
)

// Accumulator converts running wall-clock intervals into engaged seconds. A
// zero RunningSince means the clock is paused.
type Accumulator struct {
	RunningSince time.Time
	Seconds      float64
	Rate         float64
}

// NewAccumulator returns an accumulator that starts running at now.
func NewAccumulator(now time.Time, rate float64) Accumulator {
	if !ValidRate(rate) {
		rate = DefaultRate
	}

	return Accumulator{
		RunningSince: now,
		Rate:         rate,
	}
}

// Running reports whether time is currently being accrued.
func (a *Accumulator) Running() bool {
	return !a.RunningSince.IsZero()
}

// slice returns the engaged seconds of the open interval, scaled by the
// current rate. Clock regressions contribute nothing.
func (a *Accumulator) slice(now time.Time) float64 {
	if !a.Running() {
		return 0
	}

	elapsed := now.Sub(a.RunningSince).Seconds()
	if elapsed < 0 {
		return 0
	}

	return elapsed * a.Rate
}

// Total returns the engaged seconds including the open interval without
// modifying the accumulator.
func (a *Accumulator) Total(now time.Time) float64 {
	return a.Seconds + a.slice(now)
}

// Pause closes the open interval. Pausing a paused accumulator does nothing.
func (a *Accumulator) Pause(now time.Time) {
	if !a.Running() {
		return
	}

	a.Seconds += a.slice(now)
	a.RunningSince = time.Time{}
}

// Resume opens a new interval at now. Resuming a running accumulator does
// nothing so no accrued time is lost.
func (a *Accumulator) Resume(now time.Time) {
	if a.Running() {
		return
	}

	a.RunningSince = now
}

// SetRate accrues the open interval at the old rate before switching, so a
// rate change never rescales time that has already elapsed.
func (a *Accumulator) SetRate(now time.Time, rate float64) {
	if a.Running() {
		a.Seconds += a.slice(now)
		a.RunningSince = now
	}

	a.Rate = rate
}

// Reset discards everything accrued so far. A running accumulator keeps
// running from now.
func (a *Accumulator) Reset(now time.Time) {
	a.Seconds = 0

	if a.Running() {
		a.RunningSince = now
	}
}

// ValidRate reports whether rate can be used to scale elapsed time.
func ValidRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}
