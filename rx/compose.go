package rx

import "github.com/lguimbarda/min-rx/rx/core"

// Through chains two operators together, creating a new operator that first
// applies op1 and then op2.
func Through[IN, MID, OUT any](op1 OperatorFunc[IN, MID], op2 OperatorFunc[MID, OUT]) OperatorFunc[IN, OUT] {
	return func(dest *core.Subscriber[OUT]) *core.Subscriber[IN] {
		return op1.Call(op2.Call(dest))
	}
}

// Chain composes multiple operators of the same type into a single operator.
// Operators are applied in order from left to right.
// If no operators are provided, returns an identity operator.
func Chain[T any](ops ...OperatorFunc[T, T]) OperatorFunc[T, T] {
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		sub := dest
		for i := len(ops) - 1; i >= 0; i-- {
			sub = ops[i].Call(sub)
		}
		if sub == dest {
			return core.NewOperatorSubscriber[T, T](dest, dest)
		}
		return sub
	}
}

// Pipe applies a series of operators to an Observable, returning the final
// Observable.
func Pipe[T any](source Observable[T], ops ...OperatorFunc[T, T]) Observable[T] {
	result := source
	for _, op := range ops {
		result = op.Apply(result)
	}
	return result
}

// Apply is a helper to apply a single operator to an Observable.
// Equivalent to op.Apply(source) but reads left to right.
func Apply[IN, OUT any](source Observable[IN], op OperatorFunc[IN, OUT]) Observable[OUT] {
	return op.Apply(source)
}
