// FILE: lixenwraith/sawlog/compat/fiber.go
package compat

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/sawlog"
)

// FiberAdapter wraps sawlog.Logger to implement Fiber's CommonLogger interface
// (Logger, FormatLogger and WithLogger method sets) without importing Fiber.
// Trace maps to debug; structured key/value pairs are appended as k=v.
type FiberAdapter struct {
	logger       *sawlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(logger *sawlog.Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
		panicHandler: func(msg string) {
			panic(msg)
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// emit writes msg verbatim with the location of the Fiber call site, which is
// two frames above emit
func (a *FiberAdapter) emit(sev sawlog.Severity, msg string) {
	a.logger.Emit(sev, sawlog.Caller(2), "%s", msg)
}

// terminate writes msg at error severity, flushes and hands over to handler
func (a *FiberAdapter) terminate(kind, msg string, handler func(string)) {
	a.logger.Emit(sawlog.SeverityError, sawlog.Caller(2), "%s: %s", kind, msg)

	// Ensure log is flushed before the handler runs
	_ = a.logger.Flush(fatalFlushTimeout)

	if handler != nil {
		handler(msg)
	}
}

// --- Logger ---

func (a *FiberAdapter) Trace(v ...any) { a.emit(sawlog.SeverityDebug, fmt.Sprint(v...)) }
func (a *FiberAdapter) Debug(v ...any) { a.emit(sawlog.SeverityDebug, fmt.Sprint(v...)) }
func (a *FiberAdapter) Info(v ...any)  { a.emit(sawlog.SeverityInfo, fmt.Sprint(v...)) }
func (a *FiberAdapter) Warn(v ...any)  { a.emit(sawlog.SeverityWarning, fmt.Sprint(v...)) }
func (a *FiberAdapter) Error(v ...any) { a.emit(sawlog.SeverityError, fmt.Sprint(v...)) }

func (a *FiberAdapter) Fatal(v ...any) { a.terminate("fatal", fmt.Sprint(v...), a.fatalHandler) }
func (a *FiberAdapter) Panic(v ...any) { a.terminate("panic", fmt.Sprint(v...), a.panicHandler) }

// Write lets the adapter stand in as an io.Writer for Fiber's output options.
// Each write becomes one info line.
func (a *FiberAdapter) Write(p []byte) (int, error) {
	a.emit(sawlog.SeverityInfo, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// --- FormatLogger ---

func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.emit(sawlog.SeverityDebug, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.emit(sawlog.SeverityDebug, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Infof(format string, v ...any) {
	a.emit(sawlog.SeverityInfo, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.emit(sawlog.SeverityWarning, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.emit(sawlog.SeverityError, fmt.Sprintf(format, v...))
}

func (a *FiberAdapter) Fatalf(format string, v ...any) {
	a.terminate("fatal", fmt.Sprintf(format, v...), a.fatalHandler)
}

func (a *FiberAdapter) Panicf(format string, v ...any) {
	a.terminate("panic", fmt.Sprintf(format, v...), a.panicHandler)
}

// --- WithLogger ---

func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.emit(sawlog.SeverityDebug, appendPairs(msg, keysAndValues))
}

func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.emit(sawlog.SeverityDebug, appendPairs(msg, keysAndValues))
}

func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.emit(sawlog.SeverityInfo, appendPairs(msg, keysAndValues))
}

func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.emit(sawlog.SeverityWarning, appendPairs(msg, keysAndValues))
}

func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.emit(sawlog.SeverityError, appendPairs(msg, keysAndValues))
}

func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.terminate("fatal", appendPairs(msg, keysAndValues), a.fatalHandler)
}

func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.terminate("panic", appendPairs(msg, keysAndValues), a.panicHandler)
}

// appendPairs renders keysAndValues as " k=v" after msg. A trailing key
// without a value is written as k=<missing>.
func appendPairs(msg string, keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		sb.WriteByte(' ')
		fmt.Fprint(&sb, keysAndValues[i])
		sb.WriteByte('=')
		if i+1 < len(keysAndValues) {
			fmt.Fprint(&sb, keysAndValues[i+1])
		} else {
			sb.WriteString("<missing>")
		}
	}
	return sb.String()
}
