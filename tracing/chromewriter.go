package tracing

import (
	"fmt"
	"io"
	"strings"
)

// The fixed parts of the trace-event document. A file that starts with
// traceHeader and ends with traceFooter is a complete JSON document.
const (
	traceHeader = `{"otherData": {},"traceEvents":[`
	traceFooter = `]}`
)

// ChromeTraceWriter streams scope records as a Chrome trace-event JSON
// document, the format consumed by chrome://tracing and compatible timeline
// viewers. After WriteHeader, the sink always holds a valid partial document
// (header plus zero or more comma-separated records); WriteFooter completes
// it. Write errors are ignored, this is a best-effort diagnostic sink.
type ChromeTraceWriter struct {
	w           io.Writer
	recordCount int
}

// NewChromeTraceWriter creates a ChromeTraceWriter, injecting the sink as a
// dependency.
func NewChromeTraceWriter(w io.Writer) *ChromeTraceWriter {
	return &ChromeTraceWriter{w: w}
}

// WriteHeader writes the opening of the document and resets the record
// counter.
func (t *ChromeTraceWriter) WriteHeader() {
	t.recordCount = 0
	fmt.Fprint(t.w, traceHeader)
	t.flush()
}

// WriteRecord appends one record, comma-separated from the previous one, and
// flushes so a crash still leaves the file valid up to the last complete
// record. Quote characters in the name are replaced with apostrophes to keep
// the document structurally valid.
func (t *ChromeTraceWriter) WriteRecord(r ScopeRecord) {
	if t.recordCount > 0 {
		fmt.Fprint(t.w, ",")
	}
	t.recordCount++

	name := strings.ReplaceAll(r.Name, `"`, `'`)

	fmt.Fprintf(t.w,
		`{"cat":"function","dur":%d,"name":"%s","ph":"X","pid":0,"tid":%d,"ts":%d}`,
		r.End-r.Start, name, r.ThreadID, r.Start)

	t.flush()
}

// WriteFooter closes the traceEvents array and the document.
func (t *ChromeTraceWriter) WriteFooter() {
	fmt.Fprint(t.w, traceFooter)
	t.flush()
}

// RecordCount returns the number of records written since the last header.
func (t *ChromeTraceWriter) RecordCount() int {
	return t.recordCount
}

type flusher interface {
	Flush() error
}

func (t *ChromeTraceWriter) flush() {
	if f, ok := t.w.(flusher); ok {
		_ = f.Flush()
	}
}
