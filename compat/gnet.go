// FILE: lixenwraith/sawlog/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/sawlog"
)

// fatalFlushTimeout bounds the wait for queued lines before a fatal exit
const fatalFlushTimeout = 100 * time.Millisecond

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps sawlog.Logger to implement gnet logging.Logger interface
type GnetAdapter struct {
	logger       *sawlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *sawlog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug severity with the gnet call site as location
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Emit(sawlog.SeverityDebug, sawlog.Caller(1), format, args...)
}

// Infof logs at info severity
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Emit(sawlog.SeverityInfo, sawlog.Caller(1), format, args...)
}

// Warnf logs at warning severity
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Emit(sawlog.SeverityWarning, sawlog.Caller(1), format, args...)
}

// Errorf logs at error severity
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Emit(sawlog.SeverityError, sawlog.Caller(1), format, args...)
}

// Fatalf logs at error severity, flushes, then triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Emit(sawlog.SeverityError, sawlog.Caller(1), "fatal: %s", msg)

	// Ensure log is flushed before exit
	_ = a.logger.Flush(fatalFlushTimeout)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
