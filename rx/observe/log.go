package observe

import (
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Log creates an operator that logs the lifecycle of every subscription
// through logger. Values and lifecycle events are logged at V(1); errors are
// logged with logger.Error. Each subscription gets a sequence number under the
// "subscription" key so that interleaved pipelines can be told apart.
func Log[T any](logger logr.Logger, name string) core.OperatorFunc[T, T] {
	logger = logger.WithName(name)
	var seq atomic.Int64
	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		l := logger.WithValues("subscription", seq.Add(1))
		var count int
		return Tap(Hooks[T]{
			OnSubscribe: func() { l.V(1).Info("subscribed") },
			OnNext: func(v T) {
				count++
				l.V(1).Info("next", "value", v, "index", count-1)
			},
			OnError:    func(err error) { l.Error(err, "stream failed", "values", count) },
			OnComplete: func() { l.V(1).Info("completed", "values", count) },
			OnTeardown: func() { l.V(1).Info("torn down") },
		}).Call(dest)
	}
}
