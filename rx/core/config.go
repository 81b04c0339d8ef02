package core

import (
	"context"
	"sync/atomic"

	"github.com/go-logr/logr"
)

// Config holds the process-wide settings consulted by subscribers when an
// event has nowhere else to go: an error delivered to an observer without an
// error callback, or a teardown that failed while a subscriber was closing
// itself.
type Config struct {
	// Logger receives unhandled errors. Defaults to logr.Discard().
	Logger logr.Logger

	// OnUnhandledError, when set, is called instead of logging.
	OnUnhandledError func(error)
}

// Option is a functional option for configuring the library.
type Option func(*Config)

// WithLogger sets the logger that receives unhandled errors.
func WithLogger(logger logr.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithUnhandledErrorHandler sets a callback for errors that no observer
// handled. It takes precedence over the logger.
func WithUnhandledErrorHandler(handler func(error)) Option {
	return func(c *Config) {
		c.OnUnhandledError = handler
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Logger: logr.Discard(),
	}
}

// NewConfig builds a Config from options applied over DefaultConfig.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

var globalConfig atomic.Pointer[Config]

func init() {
	globalConfig.Store(DefaultConfig())
}

// Configure replaces the process-wide configuration and returns a function
// that restores the previous one.
//
// Example:
//
//	restore := core.Configure(core.WithLogger(logger))
//	defer restore()
func Configure(opts ...Option) (restore func()) {
	prev := globalConfig.Swap(NewConfig(opts...))
	return func() {
		globalConfig.Store(prev)
	}
}

// CurrentConfig returns the process-wide configuration.
func CurrentConfig() *Config {
	return globalConfig.Load()
}

// reportUnhandled sends err to the configured handler or logger.
func (c *Config) reportUnhandled(err error) {
	if c == nil {
		c = CurrentConfig()
	}
	if c.OnUnhandledError != nil {
		c.OnUnhandledError(err)
		return
	}
	c.Logger.Error(err, "unhandled stream error")
}

// configKey is a typed context key for config injection.
// Each config type gets its own unique key.
type configKey[C any] struct{}

// WithConfig attaches a configuration value to the context.
// The config is keyed by its type, so only one instance of each config type
// can be stored. Later calls with the same type will override earlier ones.
//
// Example:
//
//	ctx := core.WithConfig(ctx, core.NewConfig(core.WithLogger(logger)))
func WithConfig[C any](ctx context.Context, cfg C) context.Context {
	return context.WithValue(ctx, configKey[C]{}, cfg)
}

// GetConfig retrieves a configuration of type C from the context.
// Returns the config and true if found, or zero value and false if not present.
func GetConfig[C any](ctx context.Context) (C, bool) {
	if cfg, ok := ctx.Value(configKey[C]{}).(C); ok {
		return cfg, true
	}
	return *new(C), false
}
