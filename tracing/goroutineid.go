package tracing

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID returns the numeric ID of the calling goroutine, parsed
// from the runtime stack header ("goroutine 42 [running]:"). Goroutines are
// the unit of concurrency here, so their ID fills the trace tid field. The ID
// is stable for the lifetime of the goroutine and has no meaning across
// processes.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}

	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}

	return id
}
