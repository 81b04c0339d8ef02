package core

import "sync/atomic"

// Observer is the push interface implemented by every stage of a pipeline.
type Observer[T any] interface {
	Next(T)
	Error(error)
	Complete()
}

// ObserverFuncs adapts plain callbacks to the Observer interface.
// All fields are optional. An error delivered to an ObserverFuncs without an
// OnError callback is reported through the configured unhandled-error
// handler.
type ObserverFuncs[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (o ObserverFuncs[T]) Next(value T) {
	if o.OnNext != nil {
		o.OnNext(value)
	}
}

func (o ObserverFuncs[T]) Error(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

func (o ObserverFuncs[T]) Complete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}

func (o ObserverFuncs[T]) handlesErrors() bool {
	return o.OnError != nil
}

// Subscriber is a terminal-state-aware consumer that is itself a
// Subscription. Each event is first checked against the terminal state: once
// Error, Complete or Unsubscribe has been called, every further call is
// dropped silently.
//
// What a Subscriber does with an admitted event is decided by its handler.
// Operators supply a handler holding their per-subscription state and a
// reference to the downstream Subscriber. After the handler has seen Error or
// Complete, the Subscriber unsubscribes itself, disposing every child it
// tracks.
type Subscriber[T any] struct {
	Subscription

	stopped atomic.Bool
	handler Observer[T]
}

// NewSubscriber creates a Subscriber delivering admitted events to handler.
func NewSubscriber[T any](handler Observer[T]) *Subscriber[T] {
	if handler == nil {
		handler = ObserverFuncs[T]{}
	}
	return &Subscriber[T]{handler: handler}
}

// NewOperatorSubscriber creates a Subscriber for an operator stage and
// registers it as a child of dest, so that unsubscribing downstream cascades
// to the upstream stage.
func NewOperatorSubscriber[T, R any](dest *Subscriber[R], handler Observer[T]) *Subscriber[T] {
	s := NewSubscriber(handler)
	s.cfg = dest.cfg
	dest.Add(s)
	return s
}

// ToSubscriber returns observer itself when it already is a *Subscriber[T],
// otherwise a new Subscriber wrapping it.
func ToSubscriber[T any](observer Observer[T]) *Subscriber[T] {
	if s, ok := observer.(*Subscriber[T]); ok {
		return s
	}
	return NewSubscriber(observer)
}

// Next delivers value unless the subscriber is closed.
func (s *Subscriber[T]) Next(value T) {
	if s.stopped.Load() {
		return
	}
	s.handler.Next(value)
}

// Error delivers err and closes the subscriber.
func (s *Subscriber[T]) Error(err error) {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.handler.Error(err)
	if h, ok := s.handler.(interface{ handlesErrors() bool }); ok && !h.handlesErrors() {
		s.cfg.reportUnhandled(err)
	}
	s.closeSelf()
}

// Complete signals completion and closes the subscriber.
func (s *Subscriber[T]) Complete() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.handler.Complete()
	s.closeSelf()
}

// Unsubscribe closes the subscriber without notifying its handler and
// disposes every tracked child.
func (s *Subscriber[T]) Unsubscribe() error {
	s.stopped.Store(true)
	return s.Subscription.Unsubscribe()
}

// Closed reports whether the subscriber has reached its terminal state.
func (s *Subscriber[T]) Closed() bool {
	return s.stopped.Load()
}

// closeSelf releases resources after a terminal event. Nobody is waiting for
// the result, so teardown failures go to the unhandled-error handler.
func (s *Subscriber[T]) closeSelf() {
	if err := s.Subscription.Unsubscribe(); err != nil {
		s.cfg.reportUnhandled(err)
	}
}
