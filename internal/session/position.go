package session

import (
	"fmt"
	"strconv"
)

// Position is an opaque location marker. It is recorded for reporting only
// and never takes part in timing.
type Position interface {
	String() string
}

// Page locates a reader within a text: the page number and how far through
// the book that page is.
type Page struct {
	Number  int
	Percent float64
}

func (p Page) String() string {
	return fmt.Sprintf("%d (%.1f%%)", p.Number, p.Percent)
}

// NoTrack marks an Audio position in a single-file audiobook.
const NoTrack = -1

// Audio locates a listener within an audiobook: a millisecond offset,
// optionally paired with the index of the file being played.
type Audio struct {
	OffsetMs int64
	Track    int
}

// AudioAt returns a position in a single-file audiobook.
func AudioAt(offsetMs int64) Audio {
	return Audio{OffsetMs: offsetMs, Track: NoTrack}
}

// TrackAt returns a position within one file of a multi-file audiobook.
func TrackAt(track int, offsetMs int64) Audio {
	return Audio{OffsetMs: offsetMs, Track: track}
}

func (a Audio) String() string {
	if a.Track < 0 {
		return strconv.FormatInt(a.OffsetMs, 10)
	}

	return strconv.Itoa(a.Track) + ":" + strconv.FormatInt(a.OffsetMs, 10)
}

// Marker is a free-form position for callers that track location themselves.
type Marker string

func (m Marker) String() string {
	return string(m)
}
