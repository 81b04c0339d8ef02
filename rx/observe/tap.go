// Package observe provides operators for monitoring, metrics and debugging
// streams. None of them change the values, errors or completion that reach
// the destination.
package observe

import "github.com/lguimbarda/min-rx/rx/core"

// Hooks holds callbacks invoked as events pass through a Tap stage.
// All fields are optional.
type Hooks[T any] struct {
	// OnSubscribe is called when the stage is subscribed, before any value.
	OnSubscribe func()
	// OnNext is called with each value before it is forwarded.
	OnNext func(T)
	// OnError is called with the error before it is forwarded.
	OnError func(error)
	// OnComplete is called before completion is forwarded.
	OnComplete func()
	// OnTeardown is called exactly once when the stage is torn down, whether
	// by a terminal event or by an unsubscribe from downstream.
	OnTeardown func()
}

// Tap creates an operator that calls hooks for every event and forwards the
// event unchanged. A panic in OnNext terminates the stream with an ErrPanic;
// a panic in any other hook is reported as an unhandled error.
func Tap[T any](hooks Hooks[T]) core.OperatorFunc[T, T] {
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		var sub *core.Subscriber[T]
		sub = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) {
				if hooks.OnNext != nil {
					if err := core.Try(func() { hooks.OnNext(v) }); err != nil {
						sub.Error(err)
						return
					}
				}
				dest.Next(v)
			},
			OnError: func(err error) {
				if hooks.OnError != nil {
					sub.Report(core.Try(func() { hooks.OnError(err) }))
				}
				dest.Error(err)
			},
			OnComplete: func() {
				if hooks.OnComplete != nil {
					sub.Report(core.Try(hooks.OnComplete))
				}
				dest.Complete()
			},
		})
		if hooks.OnTeardown != nil {
			sub.AddFunc(hooks.OnTeardown)
		}
		if hooks.OnSubscribe != nil {
			sub.Report(core.Try(hooks.OnSubscribe))
		}
		return sub
	}
}

// DoOnNext is a shorthand for Tap with only OnNext set.
func DoOnNext[T any](fn func(T)) core.OperatorFunc[T, T] {
	return Tap(Hooks[T]{OnNext: fn})
}
