package tracing

import "github.com/sarchlab/scopetrace/timing"

// A ScopeRecord is one completed timed scope.
type ScopeRecord struct {
	Name     string
	Start    timing.TimeInUS
	End      timing.TimeInUS
	ThreadID uint64
}

// Duration returns the time spent in the scope.
func (r ScopeRecord) Duration() timing.TimeInUS {
	return r.End - r.Start
}

// ScopeFilter is a function that can filter interesting records. If this
// function returns true, the record is considered useful.
type ScopeFilter func(r ScopeRecord) bool
