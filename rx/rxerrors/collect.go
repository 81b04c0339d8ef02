package rxerrors

import (
	"errors"
	"sync"

	"github.com/lguimbarda/min-rx/rx/core"
)

// This file provides error observation utilities.
// They observe errors for logging, counting and collection purposes and never
// change what reaches the destination. For recovery, use CatchError or Retry.

// ErrorCollector collects errors for later inspection. One collector can be
// shared by any number of pipelines; it is safe for concurrent use.
type ErrorCollector struct {
	mu        sync.Mutex
	errors    []error
	predicate func(error) bool
	maxErrors int // 0 = unlimited
}

// ErrorCollectorOption configures an ErrorCollector.
type ErrorCollectorOption func(*ErrorCollector)

// WithPredicate filters which errors to collect.
func WithPredicate(predicate func(error) bool) ErrorCollectorOption {
	return func(c *ErrorCollector) {
		c.predicate = predicate
	}
}

// WithMaxErrors limits the number of errors to collect.
func WithMaxErrors(max int) ErrorCollectorOption {
	return func(c *ErrorCollector) {
		c.maxErrors = max
	}
}

// NewErrorCollector creates an empty collector.
func NewErrorCollector(opts ...ErrorCollectorOption) *ErrorCollector {
	c := &ErrorCollector{
		predicate: func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add records err if it matches the predicate and the limit allows it.
func (c *ErrorCollector) Add(err error) {
	if err == nil || !c.predicate(err) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxErrors > 0 && len(c.errors) >= c.maxErrors {
		return
	}
	c.errors = append(c.errors, err)
}

// Errors returns a copy of all collected errors.
func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// Count returns the number of collected errors.
func (c *ErrorCollector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}

// Err joins the collected errors, or returns nil when there are none.
func (c *ErrorCollector) Err() error {
	return errors.Join(c.Errors()...)
}

// Collect creates an operator that records every error passing through in c.
func Collect[T any](c *ErrorCollector) core.OperatorFunc[T, T] {
	if c == nil {
		panic("rxerrors.Collect: collector must not be nil")
	}
	return OnError[T](c.Add)
}

// AsUnhandledErrorHandler lets c receive the errors that no observer handled.
//
// Example:
//
//	errs := rxerrors.NewErrorCollector()
//	restore := core.Configure(rxerrors.AsUnhandledErrorHandler(errs))
//	defer restore()
func AsUnhandledErrorHandler(c *ErrorCollector) core.Option {
	return core.WithUnhandledErrorHandler(c.Add)
}
