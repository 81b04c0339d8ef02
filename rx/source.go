package rx

import (
	"iter"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Create creates an Observable from a production function. The function is
// run once per subscription.
func Create[T any](producer func(sub *Subscriber[T])) Observable[T] {
	return core.Emit(producer)
}

// Of creates an Observable that emits the given values and then completes.
func Of[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// FromSlice creates an Observable that emits each element from the given slice.
// The stream completes after all elements have been emitted, unless the
// subscriber unsubscribes first.
func FromSlice[T any](items []T) Observable[T] {
	return core.Emit(func(sub *core.Subscriber[T]) {
		for _, item := range items {
			if sub.Closed() {
				return
			}
			sub.Next(item)
		}
		sub.Complete()
	})
}

// FromChannel creates an Observable that emits values received from the given
// channel on a separate goroutine. The stream completes when the channel is
// closed. Unsubscribing stops the goroutine; the caller is responsible for
// closing the channel.
func FromChannel[T any](ch <-chan T) Observable[T] {
	return core.Emit(func(sub *core.Subscriber[T]) {
		done := make(chan struct{})
		sub.AddFunc(func() { close(done) })

		go func() {
			for {
				select {
				case <-done:
					return
				case item, ok := <-ch:
					if !ok {
						sub.Complete()
						return
					}
					sub.Next(item)
				}
			}
		}()
	})
}

// FromIter creates an Observable from a Go 1.23+ iterator sequence.
// The stream completes when the iterator is exhausted.
func FromIter[T any](seq iter.Seq[T]) Observable[T] {
	return core.Emit(func(sub *core.Subscriber[T]) {
		for item := range seq {
			if sub.Closed() {
				return
			}
			sub.Next(item)
		}
		sub.Complete()
	})
}

// Empty creates an Observable that emits no values and completes immediately.
func Empty[T any]() Observable[T] {
	return core.Emit(func(sub *core.Subscriber[T]) {
		sub.Complete()
	})
}

// Never creates an Observable that never emits and never terminates.
func Never[T any]() Observable[T] {
	return core.Emit(func(*core.Subscriber[T]) {})
}

// Throw creates an Observable that fails immediately with err.
func Throw[T any](err error) Observable[T] {
	return core.Emit(func(sub *core.Subscriber[T]) {
		sub.Error(err)
	})
}

// Defer creates an Observable that calls factory on every subscription and
// subscribes to the Observable it returns. A factory error is delivered as a
// stream error.
func Defer[T any](factory func() (Observable[T], error)) Observable[T] {
	return core.Emit(func(sub *core.Subscriber[T]) {
		source, err := factory()
		if err != nil {
			sub.Error(err)
			return
		}
		if source == nil {
			sub.Error(core.ErrNilObservable)
			return
		}
		if handle := source.Subscribe(sub); handle != SubscriptionLike(sub) {
			sub.Add(handle)
		}
	})
}
