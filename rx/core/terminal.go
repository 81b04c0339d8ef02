package core

import (
	"context"
	"errors"
	"sync"
)

// ErrEmpty is returned by First when the stream completes without a value.
var ErrEmpty = errors.New("stream is empty")

// Terminal functions are sinks that consume a stream and produce a final
// result, such as a slice of values, the first value, or just run the stream
// for its side effects. Unlike everything else in this package they block the
// caller until the stream terminates or ctx is done, and they always
// unsubscribe before returning.

func Slice[T any](ctx context.Context, source Observable[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		result []T
	)
	done := make(chan error, 1)

	sub := SubscribeContext(ctx, source, Observer[T](ObserverFuncs[T]{
		OnNext: func(v T) {
			mu.Lock()
			result = append(result, v)
			mu.Unlock()
		},
		OnError:    func(err error) { done <- err },
		OnComplete: func() { done <- nil },
	}))
	defer sub.Unsubscribe()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, err
		}
		mu.Lock()
		defer mu.Unlock()
		return result, nil
	}
}

func First[T any](ctx context.Context, source Observable[T]) (T, error) {
	var zero T

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	var sub *Subscriber[T]
	sub = NewSubscriber[T](ObserverFuncs[T]{
		OnNext: func(v T) {
			done <- outcome{value: v}
			_ = sub.Unsubscribe()
		},
		OnError:    func(err error) { done <- outcome{err: err} },
		OnComplete: func() { done <- outcome{err: ErrEmpty} },
	})
	SubscribeContext(ctx, source, Observer[T](sub))
	defer sub.Unsubscribe()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return zero, res.err
		}
		return res.value, nil
	}
}

func Run[T any](ctx context.Context, source Observable[T]) error {
	done := make(chan error, 1)

	sub := SubscribeContext(ctx, source, Observer[T](ObserverFuncs[T]{
		OnError:    func(err error) { done <- err },
		OnComplete: func() { done <- nil },
	}))
	defer sub.Unsubscribe()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
