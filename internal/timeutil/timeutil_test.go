package timeutil

import (
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{120, "2m 0s"},
		{3723, "1h 2m 3s"},
		{3603, "1h 0m 3s"},
		{-5, "0s"},
	}

	for _, tc := range cases {
		got := FormatSeconds(tc.in)
		if got != tc.want {
			t.Errorf("FormatSeconds(%d): expected %q, but got %q", tc.in, tc.want, got)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(29.4); got != 29 {
		t.Errorf("expected 29, but got %d", got)
	}

	if got := Round(29.5); got != 30 {
		t.Errorf("expected 30, but got %d", got)
	}
}

func TestClock(t *testing.T) {
	got := Clock(time.Hour + 2*time.Minute + 3*time.Second + 400*time.Millisecond)
	if got != "01:02:03" {
		t.Errorf("expected 01:02:03, but got %s", got)
	}
}
