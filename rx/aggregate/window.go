// Package aggregate provides operators that group source values.
// This file contains the windowing operators.
package aggregate

import (
	"fmt"

	"github.com/lguimbarda/min-rx/rx/core"
)

// WindowWhen creates an operator that splits the source into consecutive
// windows. Each window is a hot Observable (a *core.Subject) emitted
// downstream as soon as it opens; every source value goes to the window open
// at that moment and to no other.
//
// A window opens immediately on subscription. Each time a window opens,
// closingSelector is called for a fresh notifier; the first value or the
// completion of that notifier closes the window and opens the next one. A
// notifier error, a selector error or a selector panic terminates the stream.
func WindowWhen[T, N any](closingSelector func() (core.Observable[N], error)) core.OperatorFunc[T, core.Observable[T]] {
	if closingSelector == nil {
		panic("aggregate.WindowWhen: closingSelector must not be nil")
	}
	return func(dest *core.Subscriber[core.Observable[T]]) *core.Subscriber[T] {
		w := &windowSubscriber[T, N]{dest: dest, closingSelector: closingSelector}
		w.sub = core.NewOperatorSubscriber[T](dest, w)
		w.sub.AddFunc(w.release)
		w.gate.Do(w.openWindow)
		return w.sub
	}
}

// windowSubscriber holds the per-subscription state of WindowWhen.
// window, closing and done are only touched inside gate.
type windowSubscriber[T, N any] struct {
	sub             *core.Subscriber[T]
	dest            *core.Subscriber[core.Observable[T]]
	closingSelector func() (core.Observable[N], error)

	gate    core.Serial
	window  *core.Subject[T]
	closing core.SubscriptionLike
	done    bool
}

func (w *windowSubscriber[T, N]) Next(value T) {
	w.gate.Do(func() {
		if w.done {
			return
		}
		w.window.Next(value)
	})
}

func (w *windowSubscriber[T, N]) Error(err error) {
	w.gate.Do(func() {
		if w.done {
			return
		}
		w.done = true
		w.window.Error(err)
		w.dest.Error(err)
		w.unsubscribeClosing()
	})
}

func (w *windowSubscriber[T, N]) Complete() {
	w.gate.Do(func() {
		if w.done {
			return
		}
		w.done = true
		w.window.Complete()
		w.dest.Complete()
		w.unsubscribeClosing()
	})
}

// NotifyNext closes the current window and opens the next one.
func (w *windowSubscriber[T, N]) NotifyNext(_ struct{}, _ N, _, _ int, inner *core.InnerSubscriber[struct{}, N]) {
	w.gate.Do(func() { w.reopen(inner) })
}

// NotifyComplete behaves like NotifyNext: a notifier that completes without
// emitting still closes the window, and the next window asks the selector for
// a fresh notifier.
func (w *windowSubscriber[T, N]) NotifyComplete(inner *core.InnerSubscriber[struct{}, N]) {
	w.gate.Do(func() { w.reopen(inner) })
}

func (w *windowSubscriber[T, N]) NotifyError(err error, inner *core.InnerSubscriber[struct{}, N]) {
	w.gate.Do(func() {
		if w.done || core.SubscriptionLike(inner) != w.closing {
			return
		}
		w.done = true
		w.window.Error(err)
		w.dest.Error(err)
		w.unsubscribeClosing()
		w.sub.Error(err)
	})
}

// reopen ignores events from notifiers that were already replaced; they can
// still be queued in the gate when a notifier emits and completes in one go.
func (w *windowSubscriber[T, N]) reopen(inner *core.InnerSubscriber[struct{}, N]) {
	if w.done || core.SubscriptionLike(inner) != w.closing {
		return
	}
	w.openWindow()
}

func (w *windowSubscriber[T, N]) openWindow() {
	w.unsubscribeClosing()
	if w.window != nil {
		w.window.Complete()
	}

	window := core.NewSubject[T]()
	w.window = window
	w.dest.Next(window)
	if w.sub.Closed() {
		return
	}

	var (
		notifier core.Observable[N]
		selErr   error
	)
	err := core.Try(func() { notifier, selErr = w.closingSelector() })
	if err == nil && selErr != nil {
		err = fmt.Errorf("closing selector: %w", selErr)
	}
	if err != nil {
		w.done = true
		w.dest.Error(err)
		window.Error(err)
		w.sub.Error(err)
		return
	}

	w.closing = core.SubscribeToResult[struct{}, N](w, notifier, struct{}{}, 0)
	w.sub.Add(w.closing)
}

func (w *windowSubscriber[T, N]) unsubscribeClosing() {
	if w.closing == nil {
		return
	}
	closing := w.closing
	w.closing = nil
	w.sub.Remove(closing)
	w.sub.Report(closing.Unsubscribe())
}

// release runs when the subscriber is torn down. An unsubscribe that is not
// caused by a terminal event also unsubscribes the open window.
func (w *windowSubscriber[T, N]) release() {
	w.gate.Do(func() {
		if w.done {
			return
		}
		w.done = true
		if w.window != nil {
			w.sub.Report(w.window.Unsubscribe())
		}
	})
}
