package core

// OuterSubscriber coordinates subscriptions to Observables that an operator
// only discovers at run time, such as closing notifiers or projected inner
// streams. Every event of such an inner stream is reported through exactly
// one of these methods instead of being forwarded downstream, which keeps
// "what an inner event means" with the operator and "how one inner
// subscription lives and dies" with InnerSubscriber.
type OuterSubscriber[O, I any] interface {
	NotifyNext(outerValue O, innerValue I, outerIndex, innerIndex int, inner *InnerSubscriber[O, I])
	NotifyError(err error, inner *InnerSubscriber[O, I])
	NotifyComplete(inner *InnerSubscriber[O, I])
}

// InnerSubscriber is the Subscriber attached to an inner Observable on behalf
// of an OuterSubscriber. It closes itself after reporting an error or a
// completion.
type InnerSubscriber[O, I any] struct {
	*Subscriber[I]

	outer      OuterSubscriber[O, I]
	outerValue O
	outerIndex int
	index      int
}

// NewInnerSubscriber creates an InnerSubscriber reporting to outer. The
// outerValue and outerIndex identify which outer value the inner stream
// belongs to and are passed back verbatim with every NotifyNext.
func NewInnerSubscriber[O, I any](outer OuterSubscriber[O, I], outerValue O, outerIndex int) *InnerSubscriber[O, I] {
	inner := &InnerSubscriber[O, I]{
		outer:      outer,
		outerValue: outerValue,
		outerIndex: outerIndex,
	}
	inner.Subscriber = NewSubscriber[I](innerHandler[O, I]{inner: inner})
	return inner
}

// OuterValue returns the outer value this inner subscription belongs to.
func (s *InnerSubscriber[O, I]) OuterValue() O { return s.outerValue }

// OuterIndex returns the index of the outer value.
func (s *InnerSubscriber[O, I]) OuterIndex() int { return s.outerIndex }

type innerHandler[O, I any] struct {
	inner *InnerSubscriber[O, I]
}

func (h innerHandler[O, I]) Next(value I) {
	s := h.inner
	index := s.index
	s.index++
	s.outer.NotifyNext(s.outerValue, value, s.outerIndex, index, s)
}

func (h innerHandler[O, I]) Error(err error) {
	h.inner.outer.NotifyError(err, h.inner)
}

func (h innerHandler[O, I]) Complete() {
	h.inner.outer.NotifyComplete(h.inner)
}

// SubscribeToResult subscribes inner through a fresh InnerSubscriber bound to
// outer and returns it for the caller to track as a child resource. When the
// inner stream terminates during the call, the returned subscription is
// already closed and adding it to a parent is a no-op.
func SubscribeToResult[O, I any](outer OuterSubscriber[O, I], inner Observable[I], outerValue O, outerIndex int) SubscriptionLike {
	s := NewInnerSubscriber(outer, outerValue, outerIndex)
	if inner == nil {
		s.Error(ErrNilObservable)
		return s
	}
	if handle := inner.Subscribe(s.Subscriber); handle != nil && handle != SubscriptionLike(s.Subscriber) {
		s.Add(handle)
	}
	return s
}
