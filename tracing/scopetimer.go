package tracing

import (
	"runtime"

	"github.com/sarchlab/scopetrace/timing"
)

// A ScopeTimer measures one lexical scope. Create it where the scope begins
// and arrange for Stop to run on every exit path:
//
//	defer tracing.StartScope("load assets").Stop()
//
// The deferred Stop covers normal returns, early returns, and panic
// unwinding. In nested scopes the inner timers stop before the outer one, so
// the session must stay open until the outermost instrumented scope exits.
//
// Stop is idempotent: a timer emits at most one record. The timer itself has
// no failure path; an empty name yields an empty-name record.
type ScopeTimer struct {
	name    string
	session *Session
	start   timing.TimeInUS
	stopped bool
}

// StartScope starts a timer on the session, capturing the start timestamp.
// When instrumentation is disabled the returned timer records nothing.
func (s *Session) StartScope(name string) *ScopeTimer {
	if !Enabled() {
		return &ScopeTimer{stopped: true}
	}

	return &ScopeTimer{
		name:    name,
		session: s,
		start:   s.timeTeller.CurrentTime(),
	}
}

// StartFunctionScope starts a timer named after the calling function.
func (s *Session) StartFunctionScope() *ScopeTimer {
	return s.StartScope(callerFunctionName(2))
}

// StartScope starts a timer on the default session.
func StartScope(name string) *ScopeTimer {
	return DefaultSession().StartScope(name)
}

// StartFunctionScope starts a timer on the default session, named after the
// calling function.
func StartFunctionScope() *ScopeTimer {
	return DefaultSession().StartScope(callerFunctionName(2))
}

// Stop captures the end timestamp and hands the completed record to the
// session. The first call wins; later calls are no-ops.
func (t *ScopeTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true

	end := t.session.timeTeller.CurrentTime()

	t.session.WriteRecord(ScopeRecord{
		Name:     t.name,
		Start:    t.start,
		End:      end,
		ThreadID: currentGoroutineID(),
	})
}

// callerFunctionName resolves the fully qualified name of the function `skip`
// frames above this one.
func callerFunctionName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}

	return fn.Name()
}
