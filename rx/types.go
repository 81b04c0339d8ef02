// Package rx provides push-based reactive streams for Go: observables that
// are composed through chained operators and torn down deterministically,
// exactly once.
//
// This package is the primary user-facing API. Most users should only need
// to import this package and the operator packages (filter, aggregate,
// transform). The rx/core subpackage contains the low-level protocol that
// operators are written against.
package rx

import (
	"context"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Type aliases for core abstractions.
// These allow users to work with the library without importing core directly.
type (
	// Observable is a lazy, repeatable description of a stream of values.
	Observable[T any] = core.Observable[T]

	// Observer is the push interface: Next, Error, Complete.
	Observer[T any] = core.Observer[T]

	// ObserverFuncs adapts callbacks to Observer.
	ObserverFuncs[T any] = core.ObserverFuncs[T]

	// Subscriber is a terminal-state-aware Observer that is also a Subscription.
	Subscriber[T any] = core.Subscriber[T]

	// Subscription is a node in a tree of disposable resources.
	Subscription = core.Subscription

	// SubscriptionLike is the handle returned by Subscribe.
	SubscriptionLike = core.SubscriptionLike

	// Operator turns a downstream Subscriber into an upstream one.
	Operator[T, R any] = core.Operator[T, R]

	// OperatorFunc adapts a function to Operator.
	OperatorFunc[T, R any] = core.OperatorFunc[T, R]

	// Subject is a hot broadcast Observable that is also an Observer.
	Subject[T any] = core.Subject[T]
)

// ErrEmpty is returned by First when the stream completes without a value.
var ErrEmpty = core.ErrEmpty

// NewSubject creates an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return core.NewSubject[T]()
}

// Lift chains op onto source.
func Lift[T, R any](source Observable[T], op Operator[T, R]) Observable[R] {
	return core.Lift(source, op)
}

// Subscribe subscribes callbacks to source.
func Subscribe[T any](source Observable[T], onNext func(T), onError func(error), onComplete func()) SubscriptionLike {
	return source.Subscribe(core.ObserverFuncs[T]{
		OnNext:     onNext,
		OnError:    onError,
		OnComplete: onComplete,
	})
}

// SubscribeContext subscribes observer to source until ctx is done.
func SubscribeContext[T any](ctx context.Context, source Observable[T], observer Observer[T]) SubscriptionLike {
	return core.SubscribeContext(ctx, source, observer)
}

// Terminal operations.

// Slice collects all stream values into a slice.
func Slice[T any](ctx context.Context, source Observable[T]) ([]T, error) {
	return core.Slice(ctx, source)
}

// First returns the first value from the stream.
func First[T any](ctx context.Context, source Observable[T]) (T, error) {
	return core.First(ctx, source)
}

// Run executes the stream for side effects only.
func Run[T any](ctx context.Context, source Observable[T]) error {
	return core.Run(ctx, source)
}
