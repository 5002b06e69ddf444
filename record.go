// FILE: lixenwraith/sawlog/record.go
package sawlog

import (
	"time"

	"github.com/lixenwraith/sawlog/formatter"
)

// Location identifies the call site of a record
type Location = formatter.Source

// Record is one log entry. It is immutable after construction and travels
// from the producer through the queue to the worker.
type Record struct {
	Severity Severity
	Time     time.Time
	Producer uint64 // goroutine id of the emitter
	Location Location
	Message  string
}

// newRecord builds a record stamped with the current time and goroutine
func newRecord(sev Severity, loc Location, message string) Record {
	return Record{
		Severity: sev,
		Time:     time.Now(),
		Producer: goroutineID(),
		Location: loc,
		Message:  message,
	}
}
