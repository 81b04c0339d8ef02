// Package core defines the core abstractions of the push model: disposable
// subscriptions, terminal-state-aware subscribers, lazily evaluated
// observables, operators and the protocol that lets one stage subscribe to
// observables discovered at run time.
//
// Delivery is synchronous: a producer calls Next, Error and Complete on the
// consumer's call stack. Nothing in this package blocks except the terminal
// helpers in terminal.go, which exist to bridge a stream back into ordinary
// blocking Go code.
package core

import (
	"sync"

	"github.com/samber/lo"
)

// Unsubscribable is a resource that a Subscription can own.
// Implementations must be comparable (in practice, pointers) so that they can
// be removed again; wrap plain functions with Subscription.AddFunc.
type Unsubscribable interface {
	Unsubscribe() error
}

// SubscriptionLike is the handle returned by Observable.Subscribe.
type SubscriptionLike interface {
	Unsubscribable
	Closed() bool
	Add(child Unsubscribable)
	Remove(child Unsubscribable)
}

// Subscription is a node in a tree of disposable resources.
// It starts active and becomes closed exactly once; closing disposes every
// child that is still attached. The zero value is an active, empty
// subscription.
type Subscription struct {
	mu       sync.Mutex
	closed   bool
	teardown func() error
	children []Unsubscribable

	cfg *Config
}

// NewSubscription creates a Subscription that runs teardown when it closes.
func NewSubscription(teardown func() error) *Subscription {
	return &Subscription{teardown: teardown}
}

// EmptySubscription is an already closed subscription. It is returned where
// a subscription has nothing left to dispose.
var EmptySubscription SubscriptionLike = func() *Subscription {
	s := &Subscription{}
	_ = s.Unsubscribe()
	return s
}()

// Closed reports whether Unsubscribe has been called.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Add attaches child so that it is disposed together with s.
// If s is already closed the child is disposed immediately instead.
// Children that are already closed are not retained.
func (s *Subscription) Add(child Unsubscribable) {
	if child == nil {
		return
	}
	if self, ok := child.(*Subscription); ok && self == s {
		return
	}
	if like, ok := child.(interface{ Closed() bool }); ok && like.Closed() {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if err := unsubscribeChild(child); err != nil {
			s.cfg.reportUnhandled(err)
		}
		return
	}
	s.children = append(s.children, child)
	s.mu.Unlock()
}

// AddFunc attaches a teardown callback and returns the child that wraps it,
// which can later be passed to Remove.
func (s *Subscription) AddFunc(fn func()) Unsubscribable {
	child := NewSubscription(func() error {
		fn()
		return nil
	})
	s.Add(child)
	return child
}

// Remove detaches child without disposing it. It is used when the child's
// own lifecycle ends before the parent's.
func (s *Subscription) Remove(child Unsubscribable) {
	if child == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.children = lo.Without(s.children, child)
}

// Unsubscribe closes s and disposes its teardown and children in the order
// they were added. A failing child never prevents its siblings from being
// disposed; all failures are returned together as an *UnsubscriptionError.
// Calls after the first are no-ops and return nil, including calls made
// re-entrantly from one of the children.
func (s *Subscription) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	teardown, children := s.teardown, s.children
	s.teardown, s.children = nil, nil
	s.mu.Unlock()

	var errs []error
	if teardown != nil {
		if err := callTeardown(teardown); err != nil {
			errs = flattenUnsubscriptionErrors(errs, err)
		}
	}
	for _, child := range children {
		if err := unsubscribeChild(child); err != nil {
			errs = flattenUnsubscriptionErrors(errs, err)
		}
	}

	if len(errs) > 0 {
		return &UnsubscriptionError{Errors: errs}
	}
	return nil
}

// Report passes an error that cannot be delivered downstream, typically a
// failed teardown, to the configured unhandled-error handler.
func (s *Subscription) Report(err error) {
	if err != nil {
		s.cfg.reportUnhandled(err)
	}
}

func callTeardown(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	return fn()
}

func unsubscribeChild(child Unsubscribable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	return child.Unsubscribe()
}
