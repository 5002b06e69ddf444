// FILE: heartbeat.go
package sawlog

import (
	"fmt"
	"runtime"
	"time"
)

// handleHeartbeat writes one Notice record with logger and runtime statistics
func (l *Logger) handleHeartbeat() {
	sequence := l.state.HeartbeatSequence.Add(1)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	msg := fmt.Sprintf("heartbeat seq=%d uptime=%s written=%d write_errors=%d queued=%d goroutines=%d heap_mb=%.2f",
		sequence,
		l.state.uptime().Truncate(time.Second),
		l.state.TotalWritten.Load(),
		l.state.WriteErrors.Load(),
		l.queue.len(),
		runtime.NumGoroutine(),
		float64(memStats.HeapAlloc)/(1024*1024),
	)

	l.writeHeartbeatRecord(msg)
}

// writeHeartbeatRecord writes directly from the worker, behind anything already queued
func (l *Logger) writeHeartbeatRecord(msg string) {
	if !l.Enabled(SeverityNotice) {
		return
	}
	l.drainPass()

	rec := newRecord(SeverityNotice, Caller(0), msg)
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	l.writeRecordLocked(rec)
}
