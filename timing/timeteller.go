// Package timing provides the clock used by the scopetrace instrumentation.
package timing

import "time"

// TimeInUS is a timestamp in microseconds, measured from a fixed but
// arbitrary per-process epoch. Timestamps from the wall clock are
// monotonically non-decreasing and carry no calendar meaning.
type TimeInUS int64

// A TimeTeller can tell the current time.
type TimeTeller interface {
	CurrentTime() TimeInUS
}

// processEpoch is the shared zero point of all wall clocks in one run.
var processEpoch = time.Now()

type wallClock struct{}

// NewWallClock returns a TimeTeller backed by the monotonic wall clock.
// All wall clocks in a process measure from the same epoch.
func NewWallClock() TimeTeller {
	return wallClock{}
}

func (wallClock) CurrentTime() TimeInUS {
	return TimeInUS(time.Since(processEpoch) / time.Microsecond)
}
