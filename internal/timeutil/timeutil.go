// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToHoursMinsSecs expresses a seconds value in hours, minutes and seconds.
func SecsToHoursMinsSecs(val int) (hrs, mins, secs int) {
	if val < 0 {
		val = 0
	}

	hrs = val / secondsInAnHour
	mins = (val % secondsInAnHour) / secondsInAMinute
	secs = val % secondsInAMinute

	return
}

// FormatSeconds renders a whole number of seconds in the human-readable form
// used in session summaries, e.g. "45s", "2m 0s" or "1h 2m 3s". Leading zero
// units are omitted.
func FormatSeconds(val int) string {
	hrs, mins, secs := SecsToHoursMinsSecs(val)

	var parts []string

	if hrs > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hrs))
	}

	if hrs > 0 || mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}

	parts = append(parts, fmt.Sprintf("%ds", secs))

	return strings.Join(parts, " ")
}

// Clock renders a duration as HH:MM:SS.
func Clock(d time.Duration) string {
	hrs, mins, secs := SecsToHoursMinsSecs(int(d / time.Second))

	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
