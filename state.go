// FILE: state.go
package sawlog

import (
	"sync"
	"sync/atomic"
	"time"
)

// Phase is the lifecycle stage of the background worker
type Phase int32

const (
	PhaseUninitialized Phase = iota // worker not spawned
	PhaseRunning                    // accepting and writing records
	PhaseDraining                   // shutdown requested, writing what is queued
	PhaseTerminated                 // worker exited
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseRunning:
		return "running"
	case PhaseDraining:
		return "draining"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// State encapsulates the runtime state of the logger
type State struct {
	IsInitialized  atomic.Bool // first facade call done
	WorkerStarted  atomic.Bool // worker goroutine spawned
	ShutdownCalled atomic.Bool
	WorkerFailed   atomic.Bool // worker died of a panic, records go synchronous
	WriteFailing   atomic.Bool // current write error streak already reported

	phase atomic.Int32

	quit             chan struct{}      // closed by Shutdown
	done             chan struct{}      // closed by the worker on exit
	shutdownDone     chan struct{}      // closed once Shutdown has released the output
	reconfigure      chan struct{}      // timers need rebuilding
	flushRequestChan chan chan struct{} // Channel to request a flush
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	// Statistics
	LoggerStartTime   atomic.Value  // Stores time.Time for uptime calculation
	TotalWritten      atomic.Uint64 // Lines written to the sink
	WriteErrors       atomic.Uint64 // Records dropped because the sink failed
	HeartbeatSequence atomic.Uint64 // Counter for heartbeat sequence numbers
}

func (s *State) init() {
	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	s.shutdownDone = make(chan struct{})
	s.reconfigure = make(chan struct{}, 1)
	s.flushRequestChan = make(chan chan struct{})
}

// Phase returns the current worker phase
func (s *State) Phase() Phase {
	return Phase(s.phase.Load())
}

func (s *State) setPhase(p Phase) {
	s.phase.Store(int32(p))
}

// uptime returns the time since the first facade call
func (s *State) uptime() time.Duration {
	if start, ok := s.LoggerStartTime.Load().(time.Time); ok && !start.IsZero() {
		return time.Since(start)
	}
	return 0
}

// LoggerStats is a point-in-time snapshot of the logger counters
type LoggerStats struct {
	Phase        Phase
	Written      uint64
	WriteErrors  uint64
	Queued       int
	Heartbeats   uint64
	WorkerFailed bool
	ColorCapable bool
	Uptime       time.Duration
}

// Stats returns a snapshot of the logger counters
func (l *Logger) Stats() LoggerStats {
	return LoggerStats{
		Phase:        l.state.Phase(),
		Written:      l.state.TotalWritten.Load(),
		WriteErrors:  l.state.WriteErrors.Load(),
		Queued:       l.queue.len(),
		Heartbeats:   l.state.HeartbeatSequence.Load(),
		WorkerFailed: l.state.WorkerFailed.Load(),
		ColorCapable: l.ColorCapable(),
		Uptime:       l.state.uptime(),
	}
}

// Shutdown stops the worker after it has written every queued record.
// Without a timeout it waits for the drain to complete; with one it returns
// an error if the drain has not finished in time, and the drain carries on in
// the background. Concurrent and repeated calls wait the same way and return
// nil once shutdown is complete. Records emitted after Shutdown are written
// synchronously.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	var wait time.Duration
	if len(timeout) > 0 {
		wait = timeout[0]
	}

	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return l.awaitShutdown(wait)
	}

	// Serialized with ApplyConfig so no worker is spawned past this point
	l.initMu.Lock()
	l.queue.close()
	started := l.state.WorkerStarted.Load()
	if started && l.state.Phase() == PhaseRunning {
		l.state.setPhase(PhaseDraining)
	}
	if started {
		close(l.state.quit)
	}
	l.initMu.Unlock()

	var finalErr error
	finish := func() {
		defer close(l.state.shutdownDone)
		if started {
			<-l.state.done
		}
		finalErr = l.releaseOutput()
		l.state.setPhase(PhaseTerminated)
	}

	if wait <= 0 {
		finish()
		return finalErr
	}
	go finish()
	if err := l.awaitShutdown(wait); err != nil {
		return err
	}
	return finalErr
}

// awaitShutdown blocks until the shutdown in progress has completed, or until
// wait expires when wait is positive
func (l *Logger) awaitShutdown(wait time.Duration) error {
	if wait <= 0 {
		<-l.state.shutdownDone
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-l.state.shutdownDone:
		return nil
	case <-timer.C:
		return fmtErrorf("logger worker did not exit within timeout (%v)", wait)
	}
}

// releaseOutput writes leftovers of a failed worker, syncs the output and
// closes an owned file, falling back to stdout
func (l *Logger) releaseOutput() error {
	l.drainQueue()

	var err error
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if syncErr := l.sink.sync(); syncErr != nil {
		err = combineErrors(err, fmtErrorf("failed to sync output during shutdown: %w", syncErr))
	}
	if l.ownedFile != nil {
		if closeErr := l.ownedFile.Close(); closeErr != nil {
			err = combineErrors(err, fmtErrorf("failed to close output file '%s': %w", l.ownedFile.Name(), closeErr))
		}
		l.ownedFile = nil
		l.sink = newSink(nil, l.getConfig().Color)
	}
	return err
}

// Flush waits until every record queued before the call has been written and
// the output synced, or until timeout expires.
func (l *Logger) Flush(timeout time.Duration) error {
	l.state.flushMutex.Lock()
	defer l.state.flushMutex.Unlock()

	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}
	l.ensureStarted()

	if l.state.Phase() != PhaseRunning {
		return l.flushSync()
	}

	// Create a channel to wait for confirmation from the worker
	confirmChan := make(chan struct{})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case l.state.flushRequestChan <- confirmChan:
	case <-l.state.done:
		return l.flushSync()
	case <-timer.C:
		return fmtErrorf("failed to send flush request to worker within %v", timeout)
	}

	select {
	case <-confirmChan:
		return nil
	case <-l.state.done:
		return l.flushSync()
	case <-timer.C:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// flushSync drains the queue on the caller's goroutine and syncs the output
func (l *Logger) flushSync() error {
	l.drainQueue()
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if err := l.sink.sync(); err != nil {
		return fmtErrorf("failed to sync output: %w", err)
	}
	return nil
}
