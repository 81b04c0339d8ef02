// Package rxerrors provides operators that observe, rewrite or recover from
// stream errors. An error is always terminal for the Subscriber it reaches,
// so recovering means switching to another Observable, never resuming the
// failed one.
package rxerrors

import (
	"fmt"

	"github.com/lguimbarda/min-rx/rx/core"
)

// OnError creates an operator that calls handler when an error passes
// through. The handler is called for side effects; the error still reaches
// the destination.
func OnError[T any](handler func(error)) core.OperatorFunc[T, T] {
	if handler == nil {
		panic("rxerrors.OnError: handler must not be nil")
	}
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		return core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: dest.Next,
			OnError: func(err error) {
				if perr := core.Try(func() { handler(err) }); perr != nil {
					dest.Report(perr)
				}
				dest.Error(err)
			},
			OnComplete: dest.Complete,
		})
	}
}

// MapErrors creates an operator that replaces an error with the result of
// mapper. A nil result is treated as the original error.
func MapErrors[T any](mapper func(error) error) core.OperatorFunc[T, T] {
	if mapper == nil {
		panic("rxerrors.MapErrors: mapper must not be nil")
	}
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		return core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: dest.Next,
			OnError: func(err error) {
				mapped := err
				if perr := core.Try(func() { mapped = mapper(err) }); perr != nil {
					mapped = perr
				}
				if mapped == nil {
					mapped = err
				}
				dest.Error(mapped)
			},
			OnComplete: dest.Complete,
		})
	}
}

// WrapError is MapErrors with a fixed message prefix.
func WrapError[T any](msg string) core.OperatorFunc[T, T] {
	return MapErrors[T](func(err error) error {
		return fmt.Errorf("%s: %w", msg, err)
	})
}

// CatchError creates an operator that recovers from errors matching
// predicate by switching to the Observable returned by handler. Values
// already delivered stay delivered; the fallback's values follow them and its
// terminal event ends the stream. Errors that do not match pass through
// unchanged. A nil predicate matches every error.
func CatchError[T any](predicate func(error) bool, handler func(error) core.Observable[T]) core.OperatorFunc[T, T] {
	if handler == nil {
		panic("rxerrors.CatchError: handler must not be nil")
	}
	if predicate == nil {
		predicate = func(error) bool { return true }
	}
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		c := &catchSubscriber[T]{dest: dest, predicate: predicate, handler: handler}
		return core.NewOperatorSubscriber[T](dest, c)
	}
}

// catchSubscriber forwards the source until a matching error arrives, then
// hands the destination over to the fallback. The fallback subscription is
// owned by dest because the source subscriber closes itself after the error.
type catchSubscriber[T any] struct {
	dest      *core.Subscriber[T]
	predicate func(error) bool
	handler   func(error) core.Observable[T]
}

func (c *catchSubscriber[T]) Next(value T) { c.dest.Next(value) }

func (c *catchSubscriber[T]) Complete() { c.dest.Complete() }

func (c *catchSubscriber[T]) Error(err error) {
	var (
		match    bool
		fallback core.Observable[T]
	)
	if perr := core.Try(func() {
		if match = c.predicate(err); match {
			fallback = c.handler(err)
		}
	}); perr != nil {
		c.dest.Error(perr)
		return
	}
	if !match {
		c.dest.Error(err)
		return
	}
	c.dest.Add(core.SubscribeToResult[error, T](c, fallback, err, 0))
}

func (c *catchSubscriber[T]) NotifyNext(_ error, value T, _, _ int, _ *core.InnerSubscriber[error, T]) {
	c.dest.Next(value)
}

func (c *catchSubscriber[T]) NotifyError(err error, _ *core.InnerSubscriber[error, T]) {
	c.dest.Error(err)
}

func (c *catchSubscriber[T]) NotifyComplete(_ *core.InnerSubscriber[error, T]) {
	c.dest.Complete()
}

// Retry returns an Observable that resubscribes to source after an error, at
// most maxRetries times. Values delivered before each error stay delivered.
// The last error is forwarded once the retries are exhausted.
func Retry[T any](source core.Observable[T], maxRetries int) core.Observable[T] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return core.Emit(func(dest *core.Subscriber[T]) {
		var attempt func(n int)
		attempt = func(n int) {
			if dest.Closed() {
				return
			}
			var upstream *core.Subscriber[T]
			upstream = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
				OnNext: dest.Next,
				OnError: func(err error) {
					if n < maxRetries {
						dest.Remove(upstream)
						attempt(n + 1)
						return
					}
					dest.Error(err)
				},
				OnComplete: dest.Complete,
			})
			if source == nil {
				upstream.Error(core.ErrNilObservable)
				return
			}
			if handle := source.Subscribe(upstream); handle != nil && handle != core.SubscriptionLike(upstream) {
				upstream.Add(handle)
			}
		}
		attempt(0)
	})
}
