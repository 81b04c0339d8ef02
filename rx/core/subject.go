package core

import (
	"errors"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// ErrSubjectUnsubscribed is delivered to observers subscribing to a Subject
// that has been unsubscribed.
var ErrSubjectUnsubscribed = errors.New("rx: subject unsubscribed")

// Subject is a hot broadcast channel: it is both an Observer and an
// Observable. Values pushed with Next reach every observer subscribed at that
// moment; nothing is replayed except the terminal event, which late observers
// receive immediately. A Subject is safe for concurrent use.
type Subject[T any] struct {
	mu        sync.Mutex
	observers []*Subscriber[T]
	stopped   bool
	closed    bool
	err       error
}

// NewSubject creates an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe adds observer to the broadcast list. Unsubscribing the returned
// subscription removes only that observer.
func (s *Subject[T]) Subscribe(observer Observer[T]) SubscriptionLike {
	sub := ToSubscriber(observer)

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		sub.Error(ErrSubjectUnsubscribed)
		return sub
	case s.stopped && s.err != nil:
		err := s.err
		s.mu.Unlock()
		sub.Error(err)
		return sub
	case s.stopped:
		s.mu.Unlock()
		sub.Complete()
		return sub
	}
	s.observers = append(s.observers, sub)
	s.mu.Unlock()

	sub.AddFunc(func() { s.remove(sub) })
	return sub
}

func (s *Subject[T]) remove(sub *Subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = lo.Without(s.observers, sub)
}

// snapshot returns the current observers; callers deliver outside the lock.
func (s *Subject[T]) snapshot(terminate bool) []*Subscriber[T] {
	observers := slices.Clone(s.observers)
	if terminate {
		s.observers = nil
	}
	return observers
}

// Next broadcasts value to the current observers.
func (s *Subject[T]) Next(value T) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	observers := s.snapshot(false)
	s.mu.Unlock()

	for _, o := range observers {
		o.Next(value)
	}
}

// Error terminates the subject with err.
func (s *Subject[T]) Error(err error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.err = err
	observers := s.snapshot(true)
	s.mu.Unlock()

	for _, o := range observers {
		o.Error(err)
	}
}

// Complete terminates the subject successfully.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	observers := s.snapshot(true)
	s.mu.Unlock()

	for _, o := range observers {
		o.Complete()
	}
}

// Unsubscribe closes the subject: every current observer is unsubscribed
// without a terminal event and later calls to Next, Error and Complete are
// ignored.
func (s *Subject[T]) Unsubscribe() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.stopped = true
	observers := s.snapshot(true)
	s.mu.Unlock()

	var errs []error
	for _, o := range observers {
		if err := o.Unsubscribe(); err != nil {
			errs = flattenUnsubscriptionErrors(errs, err)
		}
	}
	if len(errs) > 0 {
		return &UnsubscriptionError{Errors: errs}
	}
	return nil
}

// Closed reports whether the subject has been unsubscribed.
func (s *Subject[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// HasObservers reports whether any observer is subscribed.
func (s *Subject[T]) HasObservers() bool {
	return s.ObserverCount() > 0
}

// ObserverCount returns the number of subscribed observers.
func (s *Subject[T]) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// AsObservable hides the observer side of the subject.
func (s *Subject[T]) AsObservable() Observable[T] {
	return Emit(func(sub *Subscriber[T]) {
		s.Subscribe(sub)
	})
}
