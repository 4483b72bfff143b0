package tracing

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter is a tracer that can store scope records into a CSV file.
// It is safe for concurrent use, so it can be attached to a session that
// completes scopes on many goroutines.
type CSVTraceWriter struct {
	path string
	file *os.File

	lock       sync.Mutex
	records    []ScopeRecord
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing CSV file. If the file already exists, Init
// panics.
func (t *CSVTraceWriter) Init() {
	if t.path == "" {
		t.path = "scopetrace_" + xid.New().String()
	}

	filename := t.path + ".csv"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file, "Name, Start, End, ThreadID\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// WriteRecord buffers a record for the CSV file.
func (t *CSVTraceWriter) WriteRecord(r ScopeRecord) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.records = append(t.records, r)
	if len(t.records) >= t.bufferSize {
		t.flush()
	}
}

// Flush flushes the buffered records to the CSV file.
func (t *CSVTraceWriter) Flush() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.flush()
}

func (t *CSVTraceWriter) flush() {
	for _, r := range t.records {
		name := strings.ReplaceAll(r.Name, `"`, `'`)
		name = strings.ReplaceAll(name, ",", ";")

		fmt.Fprintf(t.file, "%s, %d, %d, %d\n",
			name,
			r.Start,
			r.End,
			r.ThreadID,
		)
	}

	t.records = nil
}
