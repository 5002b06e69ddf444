// FILE: interface.go
package sawlog

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// dumpConfig renders values inline and without pointer addresses, so a dump
// stays on the record's single line and is stable across runs
var dumpConfig = &spew.ConfigState{
	Indent:                  "",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Emit submits a record for the given call site. format is rendered with
// fmt semantics, so a literal percent sign must be written as "%%".
// Records less urgent than the threshold are discarded before any formatting.
func (l *Logger) Emit(sev Severity, loc Location, format string, args ...any) {
	if !l.Enabled(sev) {
		return
	}
	l.emit(sev, loc, format, args)
}

// Error logs a message at error severity with the caller's location
func (l *Logger) Error(format string, args ...any) {
	l.logf(SeverityError, 1, format, args)
}

// Warning logs a message at warning severity with the caller's location
func (l *Logger) Warning(format string, args ...any) {
	l.logf(SeverityWarning, 1, format, args)
}

// Notice logs a message at notice severity with the caller's location
func (l *Logger) Notice(format string, args ...any) {
	l.logf(SeverityNotice, 1, format, args)
}

// Info logs a message at info severity with the caller's location
func (l *Logger) Info(format string, args ...any) {
	l.logf(SeverityInfo, 1, format, args)
}

// Debug logs a message at debug severity with the caller's location
func (l *Logger) Debug(format string, args ...any) {
	l.logf(SeverityDebug, 1, format, args)
}

// Dump logs the values in a spew representation with the caller's location
func (l *Logger) Dump(sev Severity, values ...any) {
	l.dump(sev, 1, values)
}

func (l *Logger) dump(sev Severity, skip int, values []any) {
	if !l.Enabled(sev) {
		return
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = dumpConfig.Sprintf("%#v", v)
	}
	l.emit(sev, Caller(skip+1), "%s", []any{strings.Join(parts, " ")})
}

// logf resolves the location skip frames above its caller
func (l *Logger) logf(sev Severity, skip int, format string, args []any) {
	if !l.Enabled(sev) {
		return
	}
	l.emit(sev, Caller(skip+1), format, args)
}

func (l *Logger) emit(sev Severity, loc Location, format string, args []any) {
	rec := newRecord(sev, loc, "")
	l.ensureStarted()
	rec.Message = buildMessage(format, args)
	l.dispatch(rec)
}

// dispatch queues rec for the worker, or writes it inline when the logger is
// synchronous, shut down, or the worker has failed
func (l *Logger) dispatch(rec Record) {
	if l.getConfig().Async && l.state.Phase() == PhaseRunning && l.queue.push(rec) {
		return
	}
	l.writeSync(rec)
}
