// FILE: timer.go
package sawlog

import "time"

// TimerSet holds all timers used in processRecords
type TimerSet struct {
	heartbeatTicker *time.Ticker
	heartbeatChan   <-chan time.Time
}

// setupProcessingTimers creates and configures all necessary timers for the worker
func (l *Logger) setupProcessingTimers() *TimerSet {
	timers := &TimerSet{}
	timers.heartbeatChan = l.setupHeartbeatTimer(timers)
	return timers
}

// closeProcessingTimers stops all active timers
func (l *Logger) closeProcessingTimers(timers *TimerSet) {
	if timers.heartbeatTicker != nil {
		timers.heartbeatTicker.Stop()
	}
}

// setupHeartbeatTimer configures the heartbeat timer if heartbeats are enabled.
// A nil channel never fires, which disables the select case.
func (l *Logger) setupHeartbeatTimer(timers *TimerSet) <-chan time.Time {
	intervalS := l.getConfig().HeartbeatIntervalS
	if intervalS <= 0 {
		return nil
	}
	timers.heartbeatTicker = time.NewTicker(time.Duration(intervalS) * time.Second)
	return timers.heartbeatTicker.C
}
