package tracing

// A Tracer consumes completed scope records.
type Tracer interface {
	WriteRecord(r ScopeRecord)
}
