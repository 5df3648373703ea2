package session

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func at(secs float64) time.Time {
	return t0.Add(time.Duration(secs * float64(time.Second)))
}

func TestAccumulatorPauseResume(t *testing.T) {
	a := NewAccumulator(at(0), 1)

	a.Pause(at(40))
	a.Pause(at(45))
	a.Resume(at(50))
	a.Resume(at(52))

	if got := a.Total(at(55)); got != 45 {
		t.Errorf("expected 45 engaged seconds, but got %v", got)
	}
}

func TestAccumulatorRateChange(t *testing.T) {
	a := NewAccumulator(at(0), 1)

	a.SetRate(at(10), 2)

	if got := a.Total(at(20)); got != 30 {
		t.Errorf("expected 30 engaged seconds, but got %v", got)
	}

	a.Pause(at(20))
	a.SetRate(at(25), 0.5)
	a.Resume(at(30))

	if got := a.Total(at(40)); got != 35 {
		t.Errorf("expected 35 engaged seconds, but got %v", got)
	}
}

func TestAccumulatorIgnoresClockRegression(t *testing.T) {
	a := NewAccumulator(at(10), 1)

	if got := a.Total(at(5)); got != 0 {
		t.Errorf("expected 0 engaged seconds, but got %v", got)
	}
}

func TestAccumulatorReset(t *testing.T) {
	a := NewAccumulator(at(0), 1.5)

	a.Reset(at(100))

	if !a.RunningSince.Equal(at(100)) {
		t.Errorf("expected running since %v, but got %v", at(100), a.RunningSince)
	}

	if got := a.Total(at(110)); got != 15 {
		t.Errorf("expected 15 engaged seconds, but got %v", got)
	}

	a.Pause(at(110))
	a.Reset(at(120))

	if a.Running() {
		t.Error("expected a paused accumulator to stay paused after a reset")
	}
}

func TestValidRate(t *testing.T) {
	cases := map[float64]bool{
		1:           true,
		0.75:        true,
		0:           false,
		-1:          false,
		math.NaN():  false,
		math.Inf(1): false,
	}

	for rate, want := range cases {
		if got := ValidRate(rate); got != want {
			t.Errorf("ValidRate(%v): expected %v, but got %v", rate, want, got)
		}
	}

	if a := NewAccumulator(t0, -2); a.Rate != DefaultRate {
		t.Errorf("expected invalid rate to fall back to %v, but got %v", DefaultRate, a.Rate)
	}
}
