package tracing

import (
	"sync"

	"github.com/sarchlab/scopetrace/timing"
)

type scopeInterval struct {
	start, end timing.TimeInUS
}

// BusyTimeTracer traces the time during which at least one matching scope is
// running. Where scopes overlap, the overlapped time is only counted once,
// so under concurrency the busy time can be far below the total time.
type BusyTimeTracer struct {
	filter    ScopeFilter
	lock      sync.Mutex
	intervals []scopeInterval // disjoint, ordered by start
}

// NewBusyTimeTracer creates a new BusyTimeTracer. A nil filter accepts every
// record.
func NewBusyTimeTracer(filter ScopeFilter) *BusyTimeTracer {
	return &BusyTimeTracer{filter: filter}
}

// BusyTime returns the total time during which matching scopes were running.
func (t *BusyTimeTracer) BusyTime() timing.TimeInUS {
	t.lock.Lock()
	defer t.lock.Unlock()

	busy := timing.TimeInUS(0)
	for _, iv := range t.intervals {
		busy += iv.end - iv.start
	}

	return busy
}

// WriteRecord merges one completed scope into the covered intervals.
func (t *BusyTimeTracer) WriteRecord(r ScopeRecord) {
	if t.filter != nil && !t.filter(r) {
		return
	}

	t.lock.Lock()
	t.insert(scopeInterval{start: r.Start, end: r.End})
	t.lock.Unlock()
}

// insert keeps the interval list disjoint and ordered, collapsing every
// interval that touches the new one.
func (t *BusyTimeTracer) insert(iv scopeInterval) {
	merged := make([]scopeInterval, 0, len(t.intervals)+1)

	for _, existing := range t.intervals {
		switch {
		case existing.end < iv.start:
			merged = append(merged, existing)
		case iv.end < existing.start:
			// Everything from here on starts after the new interval.
			merged = append(merged, iv)
			iv = existing
		default:
			iv = extendInterval(iv, existing)
		}
	}

	merged = append(merged, iv)
	t.intervals = merged
}

func extendInterval(base, other scopeInterval) scopeInterval {
	if other.start < base.start {
		base.start = other.start
	}

	if other.end > base.end {
		base.end = other.end
	}

	return base
}
