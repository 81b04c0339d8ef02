package filter

import "github.com/lguimbarda/min-rx/rx/core"

// IsEmpty creates an operator that checks if the source emits no values.
// It emits false and completes as soon as the first value arrives, without
// waiting for the source to finish, or emits true when the source completes
// without values. Errors pass through unchanged and no boolean is emitted.
// The content of the first value is never inspected; zero values count.
func IsEmpty[T any]() core.OperatorFunc[T, bool] {
	return emptiness[T](true)
}

// IsNotEmpty creates an operator that checks if the source emits at least one
// value. It is the negation of IsEmpty.
func IsNotEmpty[T any]() core.OperatorFunc[T, bool] {
	return emptiness[T](false)
}

func emptiness[T any](whenEmpty bool) core.OperatorFunc[T, bool] {
	return func(dest *core.Subscriber[bool]) *core.Subscriber[T] {
		return core.NewOperatorSubscriber[T](dest, &isEmptySubscriber[T]{
			dest:      dest,
			whenEmpty: whenEmpty,
		})
	}
}

type isEmptySubscriber[T any] struct {
	dest      *core.Subscriber[bool]
	whenEmpty bool
}

// Next answers on the first value. Completing the destination unsubscribes
// this stage and the source with it, so later values never arrive.
func (s *isEmptySubscriber[T]) Next(T) {
	s.dest.Next(!s.whenEmpty)
	s.dest.Complete()
}

func (s *isEmptySubscriber[T]) Error(err error) {
	s.dest.Error(err)
}

func (s *isEmptySubscriber[T]) Complete() {
	s.dest.Next(s.whenEmpty)
	s.dest.Complete()
}
