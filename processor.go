// FILE: processor.go
package sawlog

// startWorker spawns the worker and waits until it is ready to take records.
// initMu must be held.
func (l *Logger) startWorker() {
	ready := make(chan struct{})
	l.state.WorkerStarted.Store(true)
	l.state.setPhase(PhaseRunning)
	go l.processRecords(ready)
	<-ready
}

// processRecords is the main worker loop running in a separate goroutine
func (l *Logger) processRecords(ready chan<- struct{}) {
	defer close(l.state.done)
	defer func() {
		if r := recover(); r != nil {
			// Producers fall back to synchronous writes from here on
			l.state.WorkerFailed.Store(true)
			l.queue.close()
			l.internalLog("worker terminated by panic, switching to synchronous writes: %v\n", r)
		}
		l.state.setPhase(PhaseTerminated)
	}()

	timers := l.setupProcessingTimers()
	defer func() { l.closeProcessingTimers(timers) }()

	close(ready)

	for {
		select {
		case <-l.queue.wake:
			l.drainPass()

		case confirmChan := <-l.state.flushRequestChan:
			l.handleFlushRequest(confirmChan)

		case <-timers.heartbeatChan:
			l.handleHeartbeat()

		case <-l.state.reconfigure:
			l.closeProcessingTimers(timers)
			timers = l.setupProcessingTimers()

		case <-l.state.quit:
			l.drainQueue()
			l.performSync()
			return
		}
	}
}

// drainQueue writes queued records until the queue is empty
func (l *Logger) drainQueue() {
	for l.writeNext() {
	}
}

// drainPass writes at most the records queued when it starts, so the worker
// gets back to its select under sustained load. A pending wake is restored
// if records remain.
func (l *Logger) drainPass() {
	for n := l.queue.len(); n > 0; n-- {
		if !l.writeNext() {
			return
		}
	}
	if l.queue.len() > 0 {
		l.queue.signal()
	}
}

// writeNext takes one record off the queue and writes it, holding the write
// lock across both steps. It returns false when the queue was empty.
func (l *Logger) writeNext() bool {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	rec, ok := l.queue.pop()
	if !ok {
		return false
	}
	l.writeRecordLocked(rec)
	return true
}

// writeRecordLocked formats and writes one record, writeMu must be held.
// Sink failures drop the record; only the first failure of a streak is reported.
func (l *Logger) writeRecordLocked(rec Record) {
	data := l.formatter.Format(int64(rec.Severity), rec.Time, rec.Producer, rec.Message, rec.Location, l.sink.color)
	if err := l.sink.write(data); err != nil {
		l.state.WriteErrors.Add(1)
		if !l.state.WriteFailing.Swap(true) {
			l.internalLog("failed to write record, dropping until output recovers: %v\n", err)
		}
		return
	}
	l.state.WriteFailing.Store(false)
	l.state.TotalWritten.Add(1)
}

// writeSync writes rec on the caller's goroutine after anything still queued,
// keeping per-producer order when records switch from queued to inline.
func (l *Logger) writeSync(rec Record) {
	defer func() {
		if r := recover(); r != nil {
			l.state.WriteErrors.Add(1)
			l.internalLog("panic while writing record synchronously: %v\n", r)
		}
	}()

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	for {
		queued, ok := l.queue.pop()
		if !ok {
			break
		}
		l.writeRecordLocked(queued)
	}
	l.writeRecordLocked(rec)
}

// handleFlushRequest writes everything queued, syncs the output and confirms
func (l *Logger) handleFlushRequest(confirmChan chan struct{}) {
	l.drainPass()
	l.performSync()
	close(confirmChan)
}

// performSync syncs the output if it is a regular file
func (l *Logger) performSync() {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if err := l.sink.sync(); err != nil {
		l.internalLog("failed to sync output: %v\n", err)
	}
}
