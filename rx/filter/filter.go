package filter

import "github.com/lguimbarda/min-rx/rx/core"

// Where creates an operator that forwards only the values for which predicate
// returns true. A panic in predicate terminates the stream with an ErrPanic.
func Where[T any](predicate func(T) bool) core.OperatorFunc[T, T] {
	if predicate == nil {
		panic("filter.Where: predicate must not be nil")
	}
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		var sub *core.Subscriber[T]
		sub = core.NewOperatorSubscriber[T](dest, core.ObserverFuncs[T]{
			OnNext: func(v T) {
				var keep bool
				if err := core.Try(func() { keep = predicate(v) }); err != nil {
					sub.Error(err)
					return
				}
				if keep {
					dest.Next(v)
				}
			},
			OnError:    dest.Error,
			OnComplete: dest.Complete,
		})
		return sub
	}
}

// Exclude creates an operator that drops the values for which predicate
// returns true. It is the inverse of Where.
func Exclude[T any](predicate func(T) bool) core.OperatorFunc[T, T] {
	if predicate == nil {
		panic("filter.Exclude: predicate must not be nil")
	}
	return Where(func(v T) bool { return !predicate(v) })
}
