package core

import (
	"context"
	"errors"
)

// ErrNilObservable is delivered when a stage is asked to subscribe to a nil
// Observable, for example when a selector returns nil.
var ErrNilObservable = errors.New("rx: nil observable where a stream was expected")

// Observable is a lazy, repeatable description of how to produce a sequence
// of values. Nothing happens until Subscribe is called, and every call runs
// the production logic again unless the implementation is hot (see Subject).
// Observable answers the question: "What will push values to my observer?".
type Observable[T any] interface {
	Subscribe(Observer[T]) SubscriptionLike
}

// Emitter is the production logic of a cold Observable: a function that
// pushes values into the given Subscriber. Long-running producers should stop
// as soon as sub.Closed() reports true, and register their own resources with
// sub.Add.
type Emitter[T any] func(sub *Subscriber[T])

// Emit creates an Observable from a production function.
//
// Example:
//
//	numbers := core.Emit(func(sub *core.Subscriber[int]) {
//	    for i := 0; i < 3 && !sub.Closed(); i++ {
//	        sub.Next(i)
//	    }
//	    sub.Complete()
//	})
func Emit[T any](producer func(sub *Subscriber[T])) Emitter[T] {
	return producer
}

// Subscribe runs the production logic against observer and returns the
// Subscriber that received the values. A panic in the production logic is
// delivered to the subscriber as an ErrPanic.
func (e Emitter[T]) Subscribe(observer Observer[T]) SubscriptionLike {
	sub := ToSubscriber(observer)
	if err := Try(func() { e(sub) }); err != nil {
		if sub.Closed() {
			sub.cfg.reportUnhandled(err)
		} else {
			sub.Error(err)
		}
	}
	return sub
}

// SubscribeContext subscribes observer to source and unsubscribes it when ctx
// is done. A *Config stored in ctx with WithConfig applies to this
// subscription and to every operator stage created for it.
func SubscribeContext[T any](ctx context.Context, source Observable[T], observer Observer[T]) SubscriptionLike {
	sub := ToSubscriber(observer)
	if cfg, ok := GetConfig[*Config](ctx); ok {
		sub.cfg = cfg
	}
	if ctx.Err() != nil {
		_ = sub.Unsubscribe()
		return sub
	}
	stop := context.AfterFunc(ctx, func() {
		if err := sub.Unsubscribe(); err != nil {
			sub.cfg.reportUnhandled(err)
		}
	})
	sub.AddFunc(func() { stop() })

	if source == nil {
		sub.Error(ErrNilObservable)
		return sub
	}
	if handle := source.Subscribe(sub); handle != nil && handle != SubscriptionLike(sub) {
		sub.Add(handle)
	}
	return sub
}
