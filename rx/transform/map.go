// Package transform provides operators that change the values of a stream.
package transform

import (
	"fmt"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Map creates an operator that applies mapFunc to every value.
// An error returned by mapFunc, or a panic inside it, terminates the stream
// with that error.
func Map[IN, OUT any](mapFunc func(IN) (OUT, error)) core.OperatorFunc[IN, OUT] {
	if mapFunc == nil {
		panic("transform.Map: mapFunc must not be nil")
	}
	return func(dest *core.Subscriber[OUT]) *core.Subscriber[IN] {
		var sub *core.Subscriber[IN]
		sub = core.NewOperatorSubscriber[IN](dest, core.ObserverFuncs[IN]{
			OnNext: func(v IN) {
				var (
					out    OUT
					mapErr error
				)
				if err := core.Try(func() { out, mapErr = mapFunc(v) }); err != nil {
					sub.Error(fmt.Errorf("panic in Map function: %w", err))
					return
				}
				if mapErr != nil {
					sub.Error(mapErr)
					return
				}
				dest.Next(out)
			},
			OnError:    dest.Error,
			OnComplete: dest.Complete,
		})
		return sub
	}
}

// Select is Map for functions that cannot fail.
func Select[IN, OUT any](fn func(IN) OUT) core.OperatorFunc[IN, OUT] {
	if fn == nil {
		panic("transform.Select: fn must not be nil")
	}
	return Map(func(v IN) (OUT, error) { return fn(v), nil })
}
