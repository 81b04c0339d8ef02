package aggregate

import "github.com/lguimbarda/min-rx/rx/core"

// Reduce creates an operator that reduces all values in the stream to a single value
// using the provided reducer function. The reducer takes the accumulated value and the
// current value, returning the new accumulated value.
// The first value becomes the initial accumulator value.
// If the stream is empty, nothing is emitted.
func Reduce[T any](reducer func(acc, item T) T) core.OperatorFunc[T, T] {
	if reducer == nil {
		panic("aggregate.Reduce: reducer must not be nil")
	}
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		var (
			sub    *core.Subscriber[T]
			acc    T
			hasAcc bool
		)
		sub = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) {
				if !hasAcc {
					acc, hasAcc = v, true
					return
				}
				if err := core.Try(func() { acc = reducer(acc, v) }); err != nil {
					sub.Error(err)
				}
			},
			OnError: dest.Error,
			OnComplete: func() {
				if hasAcc {
					dest.Next(acc)
				}
				dest.Complete()
			},
		})
		return sub
	}
}

// Fold creates an operator that folds all values in the stream into a single value
// using the provided folder function and initial value.
// Unlike Reduce, Fold always emits a value (the initial value if stream is empty).
func Fold[T, R any](initial R, folder func(acc R, item T) R) core.OperatorFunc[T, R] {
	if folder == nil {
		panic("aggregate.Fold: folder must not be nil")
	}
	return func(dest *core.Subscriber[R]) *core.Subscriber[T] {
		var sub *core.Subscriber[T]
		acc := initial
		sub = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) {
				if err := core.Try(func() { acc = folder(acc, v) }); err != nil {
					sub.Error(err)
				}
			},
			OnError: dest.Error,
			OnComplete: func() {
				dest.Next(acc)
				dest.Complete()
			},
		})
		return sub
	}
}

// Scan creates an operator that emits each intermediate accumulated value.
// Like Fold, but emits after each value rather than only at the end.
// The initial value is NOT emitted - only values after processing items.
func Scan[T, R any](initial R, scanner func(acc R, item T) R) core.OperatorFunc[T, R] {
	if scanner == nil {
		panic("aggregate.Scan: scanner must not be nil")
	}
	return func(dest *core.Subscriber[R]) *core.Subscriber[T] {
		var sub *core.Subscriber[T]
		acc := initial
		sub = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) {
				if err := core.Try(func() { acc = scanner(acc, v) }); err != nil {
					sub.Error(err)
					return
				}
				dest.Next(acc)
			},
			OnError:    dest.Error,
			OnComplete: dest.Complete,
		})
		return sub
	}
}

// ToSlice creates an operator that buffers every value and emits them as one
// slice when the source completes. An empty source emits an empty, non-nil
// slice. On error the buffer is dropped and only the error is forwarded.
func ToSlice[T any]() core.OperatorFunc[T, []T] {
	return func(dest *core.Subscriber[[]T]) *core.Subscriber[T] {
		var buf []T
		return core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) { buf = append(buf, v) },
			OnError: func(err error) {
				buf = nil
				dest.Error(err)
			},
			OnComplete: func() {
				out := buf
				buf = nil
				if out == nil {
					out = []T{}
				}
				dest.Next(out)
				dest.Complete()
			},
		})
	}
}
