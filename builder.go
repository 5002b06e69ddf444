// FILE: lixenwraith/sawlog/builder.go
package sawlog

import "io"

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg    *Config
	writer io.Writer
	err    error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}
	if b.writer != nil {
		logger.SetOutput(b.writer)
	}
	return logger, nil
}

// Config returns a copy of the configuration being built
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Level sets the severity threshold.
func (b *Builder) Level(sev Severity) *Builder {
	b.cfg.Level = int64(sev)
	return b
}

// LevelString sets the severity threshold from a name or numeral.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	sev, err := ParseSeverity(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = int64(sev)
	return b
}

// Async selects queued (true) or inline (false) writing.
func (b *Builder) Async(async bool) *Builder {
	b.cfg.Async = async
	return b
}

// Output sets the configured output: "stdout", "stderr" or a file path.
func (b *Builder) Output(output string) *Builder {
	b.cfg.Output = output
	return b
}

// Writer sends output to w instead of the configured output.
func (b *Builder) Writer(w io.Writer) *Builder {
	b.writer = w
	return b
}

// Color sets the colour mode ("auto", "always", "never").
func (b *Builder) Color(mode string) *Builder {
	b.cfg.Color = mode
	return b
}

// Brackets sets the timestamp, producer and location bracket pairs.
func (b *Builder) Brackets(timestamp, producer, location string) *Builder {
	b.cfg.TimestampBrackets = timestamp
	b.cfg.ProducerBrackets = producer
	b.cfg.LocationBrackets = location
	return b
}

// ProducerShift sets how many low bits of the producer id are dropped.
func (b *Builder) ProducerShift(shift int64) *Builder {
	b.cfg.ProducerShift = shift
	return b
}

// Sanitize sets the message sanitizer policy.
func (b *Builder) Sanitize(policy string) *Builder {
	b.cfg.Sanitize = policy
	return b
}

// HeartbeatIntervalS sets the heartbeat interval, 0 disables heartbeats.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// InternalErrorsToStderr toggles the logger's own diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Example usage:
// logger, err := sawlog.NewBuilder().
//
//	Output("/var/log/app.log").
//	LevelString("notice").
//	Color("never").
//	HeartbeatIntervalS(60).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown()
//	 logger.Notice("logger initialized")
//
// }
