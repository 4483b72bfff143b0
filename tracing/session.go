package tracing

import (
	"fmt"
	"os"
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/scopetrace/timing"
)

// DefaultTracePath is used when Begin is given an empty path.
const DefaultTracePath = "results.json"

// A Session owns one trace output destination. All the scope timers that
// point at a session write into that destination. A session is either closed
// or open with a valid partial document in its sink; Begin and End move it
// between the two states.
//
// Begin, End, and WriteRecord serialize on one lock, so timers on different
// goroutines never interleave their bytes or corrupt the comma structure.
// Records land in the file in lock-acquisition order, which is completion
// order across goroutines, not start-timestamp order.
type Session struct {
	mu sync.Mutex

	name       string
	open       bool
	timeTeller timing.TimeTeller

	file    *os.File
	writer  *ChromeTraceWriter
	tracers []Tracer
}

// NewSession creates a closed session that reads time from the given
// TimeTeller. Passing nil selects the monotonic wall clock.
func NewSession(timeTeller timing.TimeTeller) *Session {
	if timeTeller == nil {
		timeTeller = timing.NewWallClock()
	}

	return &Session{timeTeller: timeTeller}
}

// Begin opens and truncates the trace destination, writes the document
// header, and resets the record counter. An empty path selects
// DefaultTracePath. Beginning over an already-open session abandons the
// previous sink without a footer; the old file stays unterminated.
//
// If the destination cannot be opened the session still counts as open, but
// every write becomes a no-op. Instrumentation must never be the reason the
// instrumented program fails.
func (s *Session) Begin(name, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open && s.file != nil {
		s.file.Close()
	}

	if path == "" {
		path = DefaultTracePath
	}

	s.name = name
	s.open = true

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr,
			"scopetrace: cannot open %s: %v; session %q will record nothing\n",
			path, err, name)
		s.file = nil
		s.writer = nil

		return
	}

	s.file = f
	s.writer = NewChromeTraceWriter(f)
	s.writer.WriteHeader()

	fmt.Fprintf(os.Stderr, "scopetrace: session %q started, tracing to %s\n",
		name, path)
}

// End writes the document footer, closes the sink, and clears the session
// state. Ending a session that is not open is a no-op; in particular it does
// not create a file.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}

	if s.writer != nil {
		s.writer.WriteFooter()
	}

	if s.file != nil {
		s.file.Close()
	}

	fmt.Fprintf(os.Stderr, "scopetrace: session %q ended\n", s.name)

	s.name = ""
	s.open = false
	s.file = nil
	s.writer = nil
}

// WriteRecord appends one record to the sink and hands it to every attached
// tracer. Writing to a closed session, or to a session whose sink failed to
// open, is a no-op.
func (s *Session) WriteRecord(r ScopeRecord) {
	s.mu.Lock()

	if !s.open {
		s.mu.Unlock()
		return
	}

	if s.writer != nil {
		s.writer.WriteRecord(r)
	}

	tracers := s.tracers
	s.mu.Unlock()

	for _, t := range tracers {
		t.WriteRecord(r)
	}
}

// AttachTracer registers a tracer that observes every record the session
// accepts while open.
func (s *Session) AttachTracer(t Tracer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracers = append(s.tracers, t)
}

// Name returns the session name. The name is informational only; it is not
// serialized into the trace file.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.name
}

// IsOpen reports whether the session is between a Begin and an End.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}

// RecordCount returns the number of records written since Begin.
func (s *Session) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer == nil {
		return 0
	}

	return s.writer.RecordCount()
}

var defaultSession *Session
var defaultSessionOnce sync.Once

// DefaultSession returns the process-wide session shared by the package-level
// entry points. It is created lazily; an at-exit hook ends it so that a
// session left open at process exit still gets its footer.
func DefaultSession() *Session {
	defaultSessionOnce.Do(func() {
		defaultSession = NewSession(nil)
		atexit.Register(func() { defaultSession.End() })
	})

	return defaultSession
}

// BeginSession begins the default session. An empty path selects
// DefaultTracePath.
func BeginSession(name, path string) {
	DefaultSession().Begin(name, path)
}

// EndSession ends the default session.
func EndSession() {
	DefaultSession().End()
}
