// FILE: lixenwraith/sawlog/integration_test.go
package sawlog

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lifecycle.log")

	logger, err := NewBuilder().
		Output(path).
		LevelString("debug").
		Color(ColorNever).
		Sanitize("escape").
		InternalErrorsToStderr(false).
		Build()
	require.NoError(t, err, "Logger creation with builder should succeed")
	require.NotNil(t, logger)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Notice("notice message")
	logger.Warning("warning message")
	logger.Error("error message")
	logger.Dump(SeverityInfo, map[string]int{"b": 2, "a": 1})

	// Runtime override
	require.NoError(t, logger.ApplyConfigString("level=warning", "producer_brackets=<>"))
	logger.Info("filtered after override")
	logger.Warning("multi\nline")

	require.NoError(t, logger.Flush(time.Second))
	stats := logger.Stats()
	assert.Equal(t, uint64(7), stats.Written)
	assert.Zero(t, stats.WriteErrors)

	require.NoError(t, logger.Shutdown(2*time.Second), "Logger shutdown should be clean")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 7)

	tags := []string{"DBG ", "INF ", "NOT ", "WAR ", "ERR ", "INF ", "WAR "}
	for i, tag := range tags {
		assert.True(t, strings.HasPrefix(lines[i], tag), "line %d: %q", i, lines[i])
	}
	assert.Contains(t, lines[5], "map[a:1 b:2]")
	assert.Contains(t, lines[6], "multi\\nline")
	assert.Regexp(t, `<[0-9a-f]{7}>`, lines[6])
	assert.NotContains(t, string(data), "filtered after override")
}

// TestConcurrentStress runs several producers, each at its own severity, with
// random pauses, and checks every line arrives intact and attributed.
func TestConcurrentStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	path := filepath.Join(t.TempDir(), "stress.log")
	logger, err := NewBuilder().Output(path).Color(ColorNever).InternalErrorsToStderr(false).Build()
	require.NoError(t, err)

	const producers = 5
	const perProducer = 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(p)))
			sev := Severity(p%5 + 1)
			for i := 0; i < perProducer; i++ {
				logger.Emit(sev, Caller(0), "producer=%d seq=%d payload=%s", p, i, strings.Repeat("x", rng.Intn(64)))
				if rng.Intn(10) == 0 {
					time.Sleep(time.Duration(rng.Intn(200)) * time.Microsecond)
				}
			}
		}(p)
	}
	wg.Wait()
	require.NoError(t, logger.Shutdown())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, producers*perProducer)

	perTag := make(map[string]int)
	next := make(map[int]int)
	producerOf := make(map[int]string)
	for _, line := range lines {
		m := lineRE.FindStringSubmatch(line)
		require.NotNil(t, m, "malformed line: %q", line)
		perTag[m[1]]++

		var p, seq int
		_, err := fmt.Sscanf(m[2], "producer=%d seq=%d", &p, &seq)
		require.NoError(t, err)
		assert.Equal(t, next[p], seq, "producer %d out of order", p)
		next[p] = seq + 1

		// One producer badge per goroutine
		badge := line[strings.Index(line, "]")+1:]
		badge = badge[:9]
		if prev, ok := producerOf[p]; ok {
			assert.Equal(t, prev, badge)
		}
		producerOf[p] = badge
	}

	for _, tag := range []string{"ERR", "WAR", "NOT", "INF", "DBG"} {
		assert.Equal(t, perProducer, perTag[tag], "tag %s", tag)
	}
}

func TestReconfigureUnderLoad(t *testing.T) {
	logger, out := createTestLogger(t)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					logger.Warning("steady")
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		shift := fmt.Sprintf("producer_shift=%d", i%4)
		require.NoError(t, logger.ApplyConfigString(shift, "sanitize=strip"))
	}
	close(stop)
	wg.Wait()
	require.NoError(t, logger.Shutdown())

	for _, line := range out.lines() {
		assert.Equal(t, "steady", messageOf(t, line))
	}
}
