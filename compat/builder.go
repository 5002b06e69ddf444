// FILE: lixenwraith/sawlog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/sawlog"
)

// Builder creates configured logger adapters for gnet, fasthttp and Fiber.
// It can use an existing *sawlog.Logger instance or create a new one from a *sawlog.Config
type Builder struct {
	logger    *sawlog.Logger
	logCfg    *sawlog.Config
	overrides []string
	err       error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored
func (b *Builder) WithLogger(l *sawlog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("sawlog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance,
// used only if no logger is provided via WithLogger
func (b *Builder) WithConfig(cfg *sawlog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// WithOverrides adds key=value overrides applied on top of the config
// when the builder creates its own logger
func (b *Builder) WithOverrides(overrides ...string) *Builder {
	b.overrides = append(b.overrides, overrides...)
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*sawlog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	l := sawlog.NewLogger()
	cfg := b.logCfg
	if cfg == nil {
		cfg = sawlog.DefaultConfig()
	}
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if len(b.overrides) > 0 {
		if err := l.ApplyConfigString(b.overrides...); err != nil {
			return nil, err
		}
	}

	// Cache the newly created logger for subsequent builds with this builder
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildFiber creates a Fiber CommonLogger adapter
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(l, opts...), nil
}

// GetLogger returns the underlying *sawlog.Logger instance,
// creating it if it has not been provided or created yet
func (b *Builder) GetLogger() (*sawlog.Logger, error) {
	return b.getLogger()
}

// Example:
//
//	appLogger, _ := sawlog.NewBuilder().LevelString("info").Build()
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
