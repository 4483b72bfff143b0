package tracing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/scopetrace/timing"
)

// TraceEvent mirrors one element of the traceEvents array of an emitted
// trace file.
type TraceEvent struct {
	Category  string `json:"cat"`
	Duration  int64  `json:"dur"`
	Name      string `json:"name"`
	Phase     string `json:"ph"`
	PID       int    `json:"pid"`
	TID       uint64 `json:"tid"`
	Timestamp int64  `json:"ts"`
}

// Record converts the event back into a scope record.
func (e TraceEvent) Record() ScopeRecord {
	return ScopeRecord{
		Name:     e.Name,
		Start:    timing.TimeInUS(e.Timestamp),
		End:      timing.TimeInUS(e.Timestamp + e.Duration),
		ThreadID: e.TID,
	}
}

// TraceDocument is a parsed trace file.
type TraceDocument struct {
	OtherData   map[string]any `json:"otherData"`
	TraceEvents []TraceEvent   `json:"traceEvents"`
}

// ReadTrace parses the trace file at path. A file whose session crashed
// before End is missing only the footer; such a file is parsed after an
// in-memory repair and reported as truncated. The file on disk is never
// modified.
func ReadTrace(path string) (doc *TraceDocument, truncated bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	doc = &TraceDocument{}
	if err := json.Unmarshal(data, doc); err == nil {
		return doc, false, nil
	}

	repaired, changed := RepairTrace(data)
	if !changed {
		return nil, false, fmt.Errorf("%s is not a trace file", path)
	}

	doc = &TraceDocument{}
	if err := json.Unmarshal(repaired, doc); err != nil {
		return nil, true, fmt.Errorf("%s is not repairable: %w", path, err)
	}

	return doc, true, nil
}

// RepairTrace restores the footer of a truncated trace document. A partial
// record at the tail, from a crash in the middle of a write, is dropped.
// The returned flag reports whether anything had to change; an already
// complete document is returned as is.
func RepairTrace(data []byte) (repaired []byte, changed bool) {
	trimmed := bytes.TrimRight(data, " \t\r\n")

	if bytes.HasSuffix(trimmed, []byte(traceFooter)) {
		return data, false
	}

	if !bytes.HasPrefix(trimmed, []byte(traceHeader)) {
		return data, false
	}

	body := trimmed[len(traceHeader):]

	// Records are flat objects, so the last '}' closes the last complete
	// record. Anything after it is a partial record.
	cut := bytes.LastIndexByte(body, '}')
	if cut < 0 {
		body = nil
	} else {
		body = body[:cut+1]
	}

	repaired = make([]byte, 0, len(traceHeader)+len(body)+len(traceFooter))
	repaired = append(repaired, traceHeader...)
	repaired = append(repaired, body...)
	repaired = append(repaired, traceFooter...)

	return repaired, true
}

// RepairTraceFile repairs the trace file at path in place. It reports
// whether the file needed repair.
func RepairTraceFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	repaired, changed := RepairTrace(data)
	if !changed {
		return false, nil
	}

	if err := json.Unmarshal(repaired, &TraceDocument{}); err != nil {
		return false, fmt.Errorf("%s is not repairable: %w", path, err)
	}

	if err := os.WriteFile(path, repaired, 0o644); err != nil {
		return false, err
	}

	return true, nil
}
