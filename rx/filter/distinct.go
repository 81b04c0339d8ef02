// Package filter provides operators that decide which source values reach the
// consumer. This file contains the distinct operators.
package filter

import (
	"github.com/samber/lo"

	"github.com/lguimbarda/min-rx/rx/core"
)

// DistinctOption configures Distinct and DistinctBy.
type DistinctOption func(*distinctConfig)

type distinctConfig struct {
	flushes core.Observable[any]
}

// WithFlushes clears the remembered values every time flushes emits.
// Completion of flushes has no effect; an error from flushes terminates the
// distinct stream with that error.
func WithFlushes[F any](flushes core.Observable[F]) DistinctOption {
	return func(c *distinctConfig) {
		c.flushes = core.AsAny(flushes)
	}
}

// Distinct creates an operator that forwards only values not seen before,
// comparing with ==.
//
// Every forwarded value is remembered until the stream ends or a flush
// happens, so memory grows with the number of distinct values. Bound the
// input domain or supply WithFlushes for long-lived streams.
func Distinct[T comparable](opts ...DistinctOption) core.OperatorFunc[T, T] {
	return DistinctBy(func(x, y T) bool { return x == y }, opts...)
}

// DistinctBy is like Distinct but uses compare to decide whether a value
// equals one that was already forwarded. compare receives the remembered
// value first. A panic in compare terminates the stream with an
// core.ErrPanic.
func DistinctBy[T any](compare func(x, y T) bool, opts ...DistinctOption) core.OperatorFunc[T, T] {
	if compare == nil {
		panic("filter.DistinctBy: compare must not be nil")
	}
	var cfg distinctConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(dest *core.Subscriber[T]) *core.Subscriber[T] {
		d := &distinctSubscriber[T]{dest: dest, compare: compare}
		d.sub = core.NewOperatorSubscriber[T](dest, d)
		if cfg.flushes != nil {
			d.sub.Add(core.SubscribeToResult[struct{}, any](d, cfg.flushes, struct{}{}, 0))
		}
		return d.sub
	}
}

// distinctSubscriber holds the per-subscription state of DistinctBy.
// memory and done are only touched inside gate.
type distinctSubscriber[T any] struct {
	sub     *core.Subscriber[T]
	dest    *core.Subscriber[T]
	compare func(x, y T) bool

	gate   core.Serial
	memory []T
	done   bool
}

func (d *distinctSubscriber[T]) Next(value T) {
	d.gate.Do(func() {
		if d.done {
			return
		}
		var seen bool
		err := core.Try(func() {
			seen = lo.ContainsBy(d.memory, func(existing T) bool {
				return d.compare(existing, value)
			})
		})
		if err != nil {
			d.terminate()
			d.dest.Error(err)
			d.sub.Error(err)
			return
		}
		if seen {
			return
		}
		d.memory = append(d.memory, value)
		d.dest.Next(value)
	})
}

func (d *distinctSubscriber[T]) Error(err error) {
	d.gate.Do(func() {
		if d.done {
			return
		}
		d.terminate()
		d.dest.Error(err)
	})
}

func (d *distinctSubscriber[T]) Complete() {
	d.gate.Do(func() {
		if d.done {
			return
		}
		d.terminate()
		d.dest.Complete()
	})
}

func (d *distinctSubscriber[T]) terminate() {
	d.done = true
	d.memory = nil
}

// NotifyNext flushes the memory.
func (d *distinctSubscriber[T]) NotifyNext(_ struct{}, _ any, _, _ int, _ *core.InnerSubscriber[struct{}, any]) {
	d.gate.Do(func() {
		d.memory = nil
	})
}

func (d *distinctSubscriber[T]) NotifyError(err error, _ *core.InnerSubscriber[struct{}, any]) {
	d.sub.Error(err)
}

func (d *distinctSubscriber[T]) NotifyComplete(_ *core.InnerSubscriber[struct{}, any]) {}
