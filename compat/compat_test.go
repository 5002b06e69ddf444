// FILE: lixenwraith/sawlog/compat/compat_test.go
package compat

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/sawlog"
)

// lockedBuffer is a goroutine-safe output sink
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimSuffix(b.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *sawlog.Logger, *lockedBuffer) {
	t.Helper()
	out := &lockedBuffer{}
	appLogger, err := sawlog.NewBuilder().
		LevelString("debug").
		Color(sawlog.ColorNever).
		Writer(out).
		Build()
	require.NoError(t, err)
	require.NoError(t, appLogger.Start())

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, out
}

// flushedLines flushes the logger and returns what was written so far
func flushedLines(t *testing.T, logger *sawlog.Logger, out *lockedBuffer) []string {
	t.Helper()
	require.NoError(t, logger.Flush(time.Second))
	return out.lines()
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Shutdown()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Equal(t, logger, gnetAdapter.logger)

		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.Equal(t, logger, fasthttpAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := sawlog.DefaultConfig()
		logCfg.Level = int64(sawlog.SeverityWarning)
		logCfg.Async = false

		builder := NewBuilder().WithConfig(logCfg)
		logger, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger.Shutdown()

		assert.Equal(t, sawlog.SeverityWarning, logger.Level())

		// The created logger is cached
		again, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger, again)
	})

	t.Run("with invalid config", func(t *testing.T) {
		logCfg := sawlog.DefaultConfig()
		logCfg.Color = "sometimes"
		_, err := NewBuilder().WithConfig(logCfg).BuildGnet()
		assert.Error(t, err)
	})

	t.Run("with overrides", func(t *testing.T) {
		logger, err := NewBuilder().
			WithOverrides("level=error", "async=false").
			GetLogger()
		require.NoError(t, err)
		defer logger.Shutdown()

		assert.Equal(t, sawlog.SeverityError, logger.Level())
		assert.False(t, logger.GetConfig().Async)

		_, err = NewBuilder().WithOverrides("rotate=hourly").GetLogger()
		assert.Error(t, err)
	})

	t.Run("fiber from existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Shutdown()

		fiberAdapter, err := builder.BuildFiber()
		require.NoError(t, err)
		assert.Equal(t, logger, fiberAdapter.logger)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildFastHTTP()
		assert.Error(t, err)
	})
}

func TestGnetAdapter(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)
	defer logger.Shutdown()

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	assert.Equal(t, "gnet fatal id=5", fatalMsg)

	lines := flushedLines(t, logger, out)
	require.Len(t, lines, 5)

	expected := []struct {
		tag string
		msg string
	}{
		{"DBG ", "gnet debug id=1"},
		{"INF ", "gnet info id=2"},
		{"WAR ", "gnet warn id=3"},
		{"ERR ", "gnet error id=4"},
		{"ERR ", "fatal: gnet fatal id=5"},
	}
	for i, exp := range expected {
		assert.True(t, strings.HasPrefix(lines[i], exp.tag), "line %d: %s", i, lines[i])
		assert.Contains(t, lines[i], exp.msg)
		assert.Contains(t, lines[i], ":compat_test.go+")
	}
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)
	defer logger.Shutdown()

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	adapter.Printf("this is some informational message")
	adapter.Printf("a debug message for the developers")
	adapter.Printf("warning: something looks off")
	adapter.Printf("an error occurred while processing")
	adapter.Printf("rate is 100%% of %s", "quota")
	adapter.Printf("%s", "50% off today")

	lines := flushedLines(t, logger, out)
	require.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[0], "INF "))
	assert.True(t, strings.HasPrefix(lines[1], "DBG "))
	assert.True(t, strings.HasPrefix(lines[2], "WAR "))
	assert.True(t, strings.HasPrefix(lines[3], "ERR "))
	assert.Contains(t, lines[4], "rate is 100% of quota")
	// A rendered message is not formatted a second time
	assert.Contains(t, lines[5], " 50% off today ")
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)
	defer logger.Shutdown()

	adapter, err := builder.BuildFastHTTP(
		WithDefaultSeverity(sawlog.SeverityNotice),
		WithSeverityDetector(func(string) sawlog.Severity { return 0 }),
	)
	require.NoError(t, err)

	adapter.Printf("an error that the detector ignores")

	lines := flushedLines(t, logger, out)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "NOT "))
}

func TestDetectSeverity(t *testing.T) {
	tests := []struct {
		msg      string
		expected sawlog.Severity
	}{
		{"request failed", sawlog.SeverityError},
		{"PANIC recovered", sawlog.SeverityError},
		{"deprecated header", sawlog.SeverityWarning},
		{"trace id 42", sawlog.SeverityDebug},
		{"served request", 0},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectSeverity(tt.msg))
		})
	}
}

func TestFiberAdapter(t *testing.T) {
	builder, logger, out := createTestCompatBuilder(t)
	defer logger.Shutdown()

	var fatalMsg, panicMsg string
	adapter, err := builder.BuildFiber(
		WithFiberFatalHandler(func(msg string) { fatalMsg = msg }),
		WithFiberPanicHandler(func(msg string) { panicMsg = msg }),
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		log  func()
		tag  string
		msg  string
	}{
		{"trace", func() { adapter.Trace("trace ", 1) }, "DBG ", "trace 1"},
		{"debug", func() { adapter.Debug("debug") }, "DBG ", "debug"},
		{"info", func() { adapter.Info("info") }, "INF ", "info"},
		{"warn", func() { adapter.Warn("warn") }, "WAR ", "warn"},
		{"error", func() { adapter.Error("error") }, "ERR ", "error"},
		{"tracef", func() { adapter.Tracef("id=%d", 7) }, "DBG ", "id=7"},
		{"infof literal percent", func() { adapter.Infof("%d%% done", 80) }, "INF ", "80% done"},
		{"warnf", func() { adapter.Warnf("slow %s", "handler") }, "WAR ", "slow handler"},
		{"errorf", func() { adapter.Errorf("code %d", 500) }, "ERR ", "code 500"},
		{"infow pairs", func() { adapter.Infow("request", "method", "GET", "status", 200) }, "INF ", "request method=GET status=200"},
		{"debugw odd pairs", func() { adapter.Debugw("dangling", "key") }, "DBG ", "dangling key=<missing>"},
		{"warnw no pairs", func() { adapter.Warnw("bare") }, "WAR ", "bare"},
		{"errorw", func() { adapter.Errorw("failed", "err", "timeout") }, "ERR ", "failed err=timeout"},
		{"fatalw", func() { adapter.Fatalw("stopping", "reason", "signal") }, "ERR ", "fatal: stopping reason=signal"},
		{"panicf", func() { adapter.Panicf("broken %s", "state") }, "ERR ", "panic: broken state"},
		{"write", func() { adapter.Write([]byte("from writer\n")) }, "INF ", "from writer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(flushedLines(t, logger, out))
			tt.log()
			lines := flushedLines(t, logger, out)
			require.Len(t, lines, before+1)
			line := lines[before]
			assert.True(t, strings.HasPrefix(line, tt.tag), "line: %s", line)
			assert.Contains(t, line, " "+tt.msg+" [")
			assert.Contains(t, line, ":compat_test.go+")
		})
	}

	assert.Equal(t, "stopping reason=signal", fatalMsg)
	assert.Equal(t, "broken state", panicMsg)
}
