package transform

import "github.com/lguimbarda/min-rx/rx/core"

// SwitchMap creates an operator that projects each source value to an inner
// Observable and forwards the values of the most recent one only. Starting a
// new inner Observable unsubscribes the previous one. The result completes
// when the source and the last inner Observable have both completed; an error
// from either side terminates it.
func SwitchMap[IN, OUT any](project func(IN) core.Observable[OUT]) core.OperatorFunc[IN, OUT] {
	if project == nil {
		panic("transform.SwitchMap: project must not be nil")
	}
	return func(dest *core.Subscriber[OUT]) *core.Subscriber[IN] {
		s := &switchSubscriber[IN, OUT]{dest: dest, project: project}
		s.sub = core.NewOperatorSubscriber[IN](dest, s)
		return s.sub
	}
}

// switchSubscriber holds the per-subscription state of SwitchMap.
// The inner subscription is owned by dest rather than by sub: sub closes
// itself when the source completes, but the last inner stream must keep
// running.
type switchSubscriber[IN, OUT any] struct {
	sub     *core.Subscriber[IN]
	dest    *core.Subscriber[OUT]
	project func(IN) core.Observable[OUT]

	gate       core.Serial
	index      int
	inner      core.SubscriptionLike
	sourceDone bool
	done       bool
}

func (s *switchSubscriber[IN, OUT]) Next(value IN) {
	s.gate.Do(func() {
		if s.done {
			return
		}
		index := s.index
		s.index++
		s.dropInner()

		var inner core.Observable[OUT]
		if err := core.Try(func() { inner = s.project(value) }); err != nil {
			s.done = true
			s.dest.Error(err)
			s.sub.Error(err)
			return
		}
		s.inner = core.SubscribeToResult[IN, OUT](s, inner, value, index)
		s.dest.Add(s.inner)
	})
}

func (s *switchSubscriber[IN, OUT]) Error(err error) {
	s.gate.Do(func() {
		if s.done {
			return
		}
		s.done = true
		s.dropInner()
		s.dest.Error(err)
	})
}

func (s *switchSubscriber[IN, OUT]) Complete() {
	s.gate.Do(func() {
		if s.done {
			return
		}
		s.sourceDone = true
		if s.inner == nil {
			s.done = true
			s.dest.Complete()
		}
	})
}

func (s *switchSubscriber[IN, OUT]) NotifyNext(_ IN, value OUT, _, _ int, inner *core.InnerSubscriber[IN, OUT]) {
	s.gate.Do(func() {
		if s.done || core.SubscriptionLike(inner) != s.inner {
			return
		}
		s.dest.Next(value)
	})
}

func (s *switchSubscriber[IN, OUT]) NotifyError(err error, inner *core.InnerSubscriber[IN, OUT]) {
	s.gate.Do(func() {
		if s.done || core.SubscriptionLike(inner) != s.inner {
			return
		}
		s.done = true
		s.inner = nil
		s.dest.Error(err)
		s.sub.Error(err)
	})
}

func (s *switchSubscriber[IN, OUT]) NotifyComplete(inner *core.InnerSubscriber[IN, OUT]) {
	s.gate.Do(func() {
		if s.done || core.SubscriptionLike(inner) != s.inner {
			return
		}
		s.dest.Remove(inner)
		s.inner = nil
		if s.sourceDone {
			s.done = true
			s.dest.Complete()
		}
	})
}

func (s *switchSubscriber[IN, OUT]) dropInner() {
	if s.inner == nil {
		return
	}
	inner := s.inner
	s.inner = nil
	s.dest.Remove(inner)
	s.dest.Report(inner.Unsubscribe())
}
