package tracing

import (
	"sync"

	"github.com/sarchlab/scopetrace/timing"
)

// TotalTimeTracer can collect the total time spent in a certain type of
// scope. If the execution of two scopes overlaps, this tracer will simply add
// the two scope durations together.
type TotalTimeTracer struct {
	filter    ScopeFilter
	lock      sync.Mutex
	totalTime timing.TimeInUS
}

// NewTotalTimeTracer creates a new TotalTimeTracer. A nil filter accepts
// every record.
func NewTotalTimeTracer(filter ScopeFilter) *TotalTimeTracer {
	return &TotalTimeTracer{filter: filter}
}

// TotalTime returns the total time that has been spent in matching scopes.
func (t *TotalTimeTracer) TotalTime() timing.TimeInUS {
	t.lock.Lock()
	time := t.totalTime
	t.lock.Unlock()

	return time
}

// WriteRecord accumulates the duration of one completed scope.
func (t *TotalTimeTracer) WriteRecord(r ScopeRecord) {
	if t.filter != nil && !t.filter(r) {
		return
	}

	t.lock.Lock()
	t.totalTime += r.Duration()
	t.lock.Unlock()
}
