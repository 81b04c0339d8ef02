package core

import (
	"errors"
	"sync"
)

var errTest = errors.New("test error")

// recorder is an Observer that remembers everything it receives.
type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completes int
}

func (r *recorder[T]) Next(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder[T]) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// countingChild counts how often it is unsubscribed and fails with err.
type countingChild struct {
	calls int
	err   error
}

func (c *countingChild) Unsubscribe() error {
	c.calls++
	return c.err
}

// panickingChild panics when unsubscribed.
type panickingChild struct{}

func (panickingChild) Unsubscribe() error {
	panic("boom")
}

// fromSlice is a minimal cold source for tests in this package.
func fromSlice[T any](items ...T) Observable[T] {
	return Emit(func(sub *Subscriber[T]) {
		for _, item := range items {
			if sub.Closed() {
				return
			}
			sub.Next(item)
		}
		sub.Complete()
	})
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
