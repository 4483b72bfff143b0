package tracing

import (
	"sync"

	"github.com/sarchlab/scopetrace/timing"
)

// AverageTimeTracer can collect the average time spent in a certain type of
// scope.
type AverageTimeTracer struct {
	filter      ScopeFilter
	lock        sync.Mutex
	averageTime float64
	scopeCount  uint64
}

// NewAverageTimeTracer creates a new AverageTimeTracer. A nil filter accepts
// every record.
func NewAverageTimeTracer(filter ScopeFilter) *AverageTimeTracer {
	return &AverageTimeTracer{filter: filter}
}

// AverageTime returns the average time spent in matching scopes, in
// microseconds.
func (t *AverageTimeTracer) AverageTime() float64 {
	t.lock.Lock()
	time := t.averageTime
	t.lock.Unlock()

	return time
}

// TotalCount returns the total number of matching scopes.
func (t *AverageTimeTracer) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.scopeCount
}

// WriteRecord folds one completed scope into the running average.
func (t *AverageTimeTracer) WriteRecord(r ScopeRecord) {
	if t.filter != nil && !t.filter(r) {
		return
	}

	t.lock.Lock()
	t.averageTime = (t.averageTime*float64(t.scopeCount) +
		float64(r.Duration())) /
		float64(t.scopeCount+1)
	t.scopeCount++
	t.lock.Unlock()
}

// AverageTimeInUS returns the average rounded to whole microseconds.
func (t *AverageTimeTracer) AverageTimeInUS() timing.TimeInUS {
	return timing.TimeInUS(t.AverageTime())
}
