package core

// Operator turns the Subscriber a consumer uses downstream into the
// Subscriber the upstream Observable should push into. Operators capture only
// their parameters; all per-subscription state lives in the Subscriber they
// create, so one Operator value can be applied to any number of
// subscriptions.
// Operators answer the question: "What happens between producer and consumer?".
type Operator[T, R any] interface {
	Call(dest *Subscriber[R]) *Subscriber[T]
}

// OperatorFunc adapts a function to the Operator interface.
type OperatorFunc[T, R any] func(dest *Subscriber[R]) *Subscriber[T]

// Call implements Operator.
func (f OperatorFunc[T, R]) Call(dest *Subscriber[R]) *Subscriber[T] {
	return f(dest)
}

// Apply chains the operator onto source. It reads left to right and is
// equivalent to Lift(source, f).
func (f OperatorFunc[T, R]) Apply(source Observable[T]) Observable[R] {
	return Lift[T, R](source, f)
}

// AsAny converts source into an Observable[any]. Stages that only care about
// when an auxiliary stream emits, not what it emits, accept notifiers in this
// form.
func AsAny[T any](source Observable[T]) Observable[any] {
	return Lift[T, any](source, OperatorFunc[T, any](func(dest *Subscriber[any]) *Subscriber[T] {
		return NewOperatorSubscriber[T](dest, ObserverFuncs[T]{
			OnNext:     func(v T) { dest.Next(v) },
			OnError:    dest.Error,
			OnComplete: dest.Complete,
		})
	}))
}

// Lift returns an Observable that, when subscribed with a downstream
// Subscriber, asks op for the upstream Subscriber and subscribes it to
// source. Nothing runs until the returned Observable is subscribed, so any
// number of operators can be chained for free.
func Lift[T, R any](source Observable[T], op Operator[T, R]) Observable[R] {
	return Emit(func(dest *Subscriber[R]) {
		upstream := op.Call(dest)
		if upstream.Closed() {
			return
		}
		if source == nil {
			upstream.Error(ErrNilObservable)
			return
		}
		if handle := source.Subscribe(upstream); handle != nil && handle != SubscriptionLike(upstream) {
			upstream.Add(handle)
		}
	})
}
