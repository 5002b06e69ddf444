// FILE: lixenwraith/sawlog/constant.go
package sawlog

import (
	"time"

	"github.com/lixenwraith/sawlog/formatter"
)

// Severity orders records by urgency; a lower value is more urgent
type Severity int64

// Severity levels
const (
	SeverityError   = Severity(formatter.LevelError)
	SeverityWarning = Severity(formatter.LevelWarning)
	SeverityNotice  = Severity(formatter.LevelNotice)
	SeverityInfo    = Severity(formatter.LevelInfo)
	SeverityDebug   = Severity(formatter.LevelDebug)
)

// String returns the lower-case name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNotice:
		return "notice"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the five defined severities
func (s Severity) Valid() bool {
	return s >= SeverityError && s <= SeverityDebug
}

// Output targets
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// Color modes
const (
	ColorAuto   = "auto"   // colour iff the destination is a terminal
	ColorAlways = "always" // force escapes
	ColorNever  = "never"  // never colour
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
)

// Producer id shift bounds
const maxProducerShift = 63

// File creation mode for owned output files
const outputFileMode = 0o644
