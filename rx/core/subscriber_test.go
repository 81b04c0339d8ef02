package core

import (
	"errors"
	"testing"
)

func TestSubscriberTerminalGating(t *testing.T) {
	tests := []struct {
		name          string
		terminate     func(s *Subscriber[int])
		wantErrs      int
		wantCompletes int
	}{
		{
			name:          "after complete",
			terminate:     func(s *Subscriber[int]) { s.Complete() },
			wantCompletes: 1,
		},
		{
			name:      "after error",
			terminate: func(s *Subscriber[int]) { s.Error(errTest) },
			wantErrs:  1,
		},
		{
			name:      "after unsubscribe",
			terminate: func(s *Subscriber[int]) { _ = s.Unsubscribe() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder[int]{}
			s := NewSubscriber[int](rec)
			s.Next(1)
			tt.terminate(s)

			s.Next(2)
			s.Error(errTest)
			s.Complete()

			if !s.Closed() {
				t.Fatal("subscriber should be closed")
			}
			if got := rec.Values(); !equalSlices(got, []int{1}) {
				t.Errorf("values = %v, want [1]", got)
			}
			if len(rec.errs) != tt.wantErrs {
				t.Errorf("errors = %d, want %d", len(rec.errs), tt.wantErrs)
			}
			if rec.completes != tt.wantCompletes {
				t.Errorf("completes = %d, want %d", rec.completes, tt.wantCompletes)
			}
		})
	}
}

func TestSubscriberTerminalEventDisposesChildren(t *testing.T) {
	tests := []struct {
		name      string
		terminate func(s *Subscriber[int])
	}{
		{name: "complete", terminate: func(s *Subscriber[int]) { s.Complete() }},
		{name: "error", terminate: func(s *Subscriber[int]) { s.Error(errTest) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSubscriber[int](&recorder[int]{})
			child := &countingChild{}
			s.Add(child)
			tt.terminate(s)
			if child.calls != 1 {
				t.Errorf("child unsubscribed %d times, want 1", child.calls)
			}
		})
	}
}

func TestSubscriberHandlerSeesTerminalBeforeTeardown(t *testing.T) {
	var order []string
	s := NewSubscriber[int](ObserverFuncs[int]{
		OnComplete: func() { order = append(order, "complete") },
	})
	s.AddFunc(func() { order = append(order, "teardown") })
	s.Complete()

	if !equalSlices(order, []string{"complete", "teardown"}) {
		t.Errorf("order = %v, want [complete teardown]", order)
	}
}

func TestSubscriberUnhandledError(t *testing.T) {
	var reported []error
	s := NewSubscriber[int](ObserverFuncs[int]{OnNext: func(int) {}})
	s.cfg = NewConfig(WithUnhandledErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	s.Error(errTest)

	if len(reported) != 1 || !errors.Is(reported[0], errTest) {
		t.Fatalf("reported = %v, want [%v]", reported, errTest)
	}
}

func TestSubscriberHandledErrorNotReported(t *testing.T) {
	var reported, handled int
	s := NewSubscriber[int](ObserverFuncs[int]{OnError: func(error) { handled++ }})
	s.cfg = NewConfig(WithUnhandledErrorHandler(func(error) { reported++ }))
	s.Error(errTest)

	if handled != 1 || reported != 0 {
		t.Errorf("handled = %d, reported = %d, want 1 and 0", handled, reported)
	}
}

func TestSubscriberTeardownFailureReported(t *testing.T) {
	var reported []error
	s := NewSubscriber[int](&recorder[int]{})
	s.cfg = NewConfig(WithUnhandledErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	s.Add(&countingChild{err: errTest})
	s.Complete()

	if len(reported) != 1 || !errors.Is(reported[0], errTest) {
		t.Fatalf("reported = %v, want the teardown failure", reported)
	}
}

func TestOperatorSubscriberCascade(t *testing.T) {
	dest := NewSubscriber[int](&recorder[int]{})
	upstream := NewOperatorSubscriber[string](dest, &recorder[string]{})
	source := &countingChild{}
	upstream.Add(source)

	if err := dest.Unsubscribe(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !upstream.Closed() {
		t.Error("upstream subscriber should be closed by the downstream unsubscribe")
	}
	if source.calls != 1 {
		t.Errorf("source unsubscribed %d times, want 1", source.calls)
	}
}

func TestOperatorSubscriberInheritsConfig(t *testing.T) {
	cfg := NewConfig()
	dest := NewSubscriber[int](nil)
	dest.cfg = cfg
	upstream := NewOperatorSubscriber[int](dest, nil)
	if upstream.cfg != cfg {
		t.Error("operator subscriber should share the destination config")
	}
}

func TestToSubscriber(t *testing.T) {
	s := NewSubscriber[int](nil)
	if ToSubscriber[int](s) != s {
		t.Error("ToSubscriber should return an existing subscriber unchanged")
	}
	rec := &recorder[int]{}
	wrapped := ToSubscriber[int](rec)
	wrapped.Next(7)
	if got := rec.Values(); !equalSlices(got, []int{7}) {
		t.Errorf("values = %v, want [7]", got)
	}
}
