// FILE: logger.go
package sawlog

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sawlog/formatter"
)

// Logger is an asynchronous line logger. Producers hand records to an
// unbounded queue drained by one background worker that owns the output.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	level         atomic.Int64
	state         State
	initOnce      sync.Once
	initMu        sync.Mutex // serializes configuration and worker start/stop
	queue         *queue

	// writeMu guards everything below. It is held per record while a record is
	// taken from the queue and written, so lines are never interleaved or
	// reordered across a destination swap.
	writeMu   sync.Mutex
	sink      *sink
	formatter *formatter.Formatter
	ownedFile *os.File // file opened from Config.Output, closed on replace
}

// NewLogger creates a new Logger instance with default settings.
// Nothing is started until the first record or an explicit Start.
func NewLogger() *Logger {
	cfg := DefaultConfig()
	l := &Logger{
		queue:     newQueue(),
		sink:      newSink(os.Stdout, cfg.Color),
		formatter: newFormatter(cfg),
	}
	l.state.init()
	l.currentConfig.Store(cfg)
	l.level.Store(cfg.Level)
	return l
}

// ApplyConfig validates and applies a configuration.
// Output, colour and formatting changes take effect for the next written
// record; enabling async on a started logger spawns the worker.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()
	return l.applyConfig(cfg.Clone())
}

// applyConfig installs a validated configuration, initMu must be held
func (l *Logger) applyConfig(cfg *Config) error {
	old := l.getConfig()
	outputChanged := cfg.Output != old.Output

	var (
		dest    io.Writer
		newFile *os.File
	)
	if outputChanged {
		var err error
		dest, newFile, err = openOutput(cfg.Output)
		if err != nil {
			return err
		}
	}

	var closeErr error
	l.writeMu.Lock()
	switch {
	case outputChanged:
		prev := l.ownedFile
		l.ownedFile = newFile
		l.sink = newSink(dest, cfg.Color)
		if prev != nil {
			if err := prev.Close(); err != nil {
				closeErr = fmtErrorf("failed to close previous output file '%s': %w", prev.Name(), err)
			}
		}
	case cfg.Color != old.Color:
		l.sink = newSink(l.sink.dest, cfg.Color)
	}
	l.formatter = newFormatter(cfg)
	l.writeMu.Unlock()

	l.currentConfig.Store(cfg)
	l.level.Store(cfg.Level)

	if cfg.HeartbeatIntervalS != old.HeartbeatIntervalS {
		select {
		case l.state.reconfigure <- struct{}{}:
		default:
		}
	}

	if cfg.Async && l.state.IsInitialized.Load() && !l.state.WorkerStarted.Load() && !l.state.ShutdownCalled.Load() {
		l.startWorker()
	}
	return closeErr
}

// openOutput resolves a configured output target; files are owned by the logger
func openOutput(output string) (io.Writer, *os.File, error) {
	switch output {
	case OutputStdout:
		return os.Stdout, nil, nil
	case OutputStderr:
		return os.Stderr, nil, nil
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmtErrorf("failed to create output directory '%s': %w", dir, err)
		}
	}
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, outputFileMode)
	if err != nil {
		return nil, nil, fmtErrorf("failed to open output file '%s': %w", output, err)
	}
	return f, f, nil
}

// GetConfig returns a copy of the current configuration
func (l *Logger) GetConfig() *Config {
	cfg := l.getConfig().Clone()
	cfg.Level = l.level.Load()
	return cfg
}

func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// Start starts the logger explicitly; the first record starts it otherwise
func (l *Logger) Start() error {
	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}
	l.ensureStarted()
	return nil
}

func (l *Logger) ensureStarted() {
	l.initOnce.Do(l.start)
}

func (l *Logger) start() {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.state.LoggerStartTime.Store(time.Now())
	l.state.IsInitialized.Store(true)
	if l.getConfig().Async && !l.state.ShutdownCalled.Load() {
		l.startWorker()
	}
}

// SetLevel sets the least urgent severity that is still written.
// Values outside error..debug are ignored and reported on stderr.
func (l *Logger) SetLevel(sev Severity) {
	l.ensureStarted()
	if !sev.Valid() {
		l.internalLog("ignoring invalid severity %d, keeping %s\n", int64(sev), l.Level())
		return
	}
	l.level.Store(int64(sev))
}

// Level returns the current severity threshold
func (l *Logger) Level() Severity {
	return Severity(l.level.Load())
}

// Enabled reports whether a record of severity sev would be written
func (l *Logger) Enabled(sev Severity) bool {
	return int64(sev) <= l.level.Load()
}

// SetOutput redirects all subsequent lines to w; nil means stdout.
// Colour capability is recomputed for the new destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.ensureStarted()
	cfg := l.getConfig()

	l.writeMu.Lock()
	prev := l.ownedFile
	l.ownedFile = nil
	l.sink = newSink(w, cfg.Color)
	l.writeMu.Unlock()

	if prev != nil && io.Writer(prev) != w {
		if err := prev.Close(); err != nil {
			l.internalLog("failed to close previous output file '%s': %v\n", prev.Name(), err)
		}
	}
}

// ColorCapable reports whether lines are currently written with colour
func (l *Logger) ColorCapable() bool {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.sink.color
}
