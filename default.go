// FILE: default.go
package sawlog

import (
	"io"
	"time"
)

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default returns the process-wide logger behind the package-level functions
func Default() *Logger {
	return defaultLogger
}

// ApplyConfig applies a configuration to the default logger
func ApplyConfig(cfg *Config) error {
	return defaultLogger.ApplyConfig(cfg)
}

// ApplyConfigString applies "key=value" overrides to the default logger
func ApplyConfigString(overrides ...string) error {
	return defaultLogger.ApplyConfigString(overrides...)
}

// Shutdown drains and stops the default logger
func Shutdown(timeout ...time.Duration) error {
	return defaultLogger.Shutdown(timeout...)
}

// Flush waits until the default logger has written everything queued
func Flush(timeout time.Duration) error {
	return defaultLogger.Flush(timeout)
}

// SetLevel sets the default logger's threshold
func SetLevel(sev Severity) {
	defaultLogger.SetLevel(sev)
}

// SetOutput redirects the default logger; nil means stdout
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// Emit submits a record with an explicit location to the default logger
func Emit(sev Severity, loc Location, format string, args ...any) {
	defaultLogger.Emit(sev, loc, format, args...)
}

// Error logs a message at error severity
func Error(format string, args ...any) {
	defaultLogger.logf(SeverityError, 1, format, args)
}

// Warning logs a message at warning severity
func Warning(format string, args ...any) {
	defaultLogger.logf(SeverityWarning, 1, format, args)
}

// Notice logs a message at notice severity
func Notice(format string, args ...any) {
	defaultLogger.logf(SeverityNotice, 1, format, args)
}

// Info logs a message at info severity
func Info(format string, args ...any) {
	defaultLogger.logf(SeverityInfo, 1, format, args)
}

// Debug logs a message at debug severity
func Debug(format string, args ...any) {
	defaultLogger.logf(SeverityDebug, 1, format, args)
}

// Dump logs values in a spew representation
func Dump(sev Severity, values ...any) {
	defaultLogger.dump(sev, 1, values)
}

// Stats returns the default logger's counters
func Stats() LoggerStats {
	return defaultLogger.Stats()
}
