package core

import (
	"errors"
	"testing"
)

func TestSubjectBroadcast(t *testing.T) {
	s := NewSubject[int]()
	a, b := &recorder[int]{}, &recorder[int]{}

	s.Subscribe(a)
	s.Next(1)
	s.Subscribe(b)
	s.Next(2)
	s.Complete()
	s.Next(3)

	if got := a.Values(); !equalSlices(got, []int{1, 2}) {
		t.Errorf("first observer got %v, want [1 2]", got)
	}
	if got := b.Values(); !equalSlices(got, []int{2}) {
		t.Errorf("late observer got %v, want [2]", got)
	}
	if a.completes != 1 || b.completes != 1 {
		t.Errorf("completes = %d and %d, want 1 each", a.completes, b.completes)
	}
}

func TestSubjectReplaysTerminalEvent(t *testing.T) {
	tests := []struct {
		name          string
		terminate     func(s *Subject[int])
		wantErr       error
		wantCompletes int
	}{
		{name: "complete", terminate: func(s *Subject[int]) { s.Complete() }, wantCompletes: 1},
		{name: "error", terminate: func(s *Subject[int]) { s.Error(errTest) }, wantErr: errTest},
		{name: "unsubscribe", terminate: func(s *Subject[int]) { _ = s.Unsubscribe() }, wantErr: ErrSubjectUnsubscribed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSubject[int]()
			tt.terminate(s)

			late := &recorder[int]{}
			handle := s.Subscribe(late)
			if !handle.Closed() {
				t.Error("late subscription should be closed")
			}
			if late.completes != tt.wantCompletes {
				t.Errorf("completes = %d, want %d", late.completes, tt.wantCompletes)
			}
			if tt.wantErr != nil && (len(late.errs) != 1 || !errors.Is(late.errs[0], tt.wantErr)) {
				t.Errorf("errors = %v, want [%v]", late.errs, tt.wantErr)
			}
		})
	}
}

func TestSubjectObserverUnsubscribe(t *testing.T) {
	s := NewSubject[int]()
	a, b := &recorder[int]{}, &recorder[int]{}
	handle := s.Subscribe(a)
	s.Subscribe(b)
	if s.ObserverCount() != 2 {
		t.Fatalf("observer count = %d, want 2", s.ObserverCount())
	}

	_ = handle.Unsubscribe()
	s.Next(1)

	if len(a.Values()) != 0 {
		t.Errorf("unsubscribed observer got %v", a.Values())
	}
	if got := b.Values(); !equalSlices(got, []int{1}) {
		t.Errorf("remaining observer got %v, want [1]", got)
	}
	if s.ObserverCount() != 1 {
		t.Errorf("observer count = %d, want 1", s.ObserverCount())
	}
}

func TestSubjectUnsubscribe(t *testing.T) {
	s := NewSubject[int]()
	rec := &recorder[int]{}
	handle := s.Subscribe(rec)

	if err := s.Unsubscribe(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Closed() || !handle.Closed() {
		t.Error("subject and its observers should be closed")
	}
	if s.HasObservers() {
		t.Error("closed subject should have no observers")
	}
	s.Next(1)
	s.Complete()
	if len(rec.Values()) != 0 || rec.completes != 0 {
		t.Error("observer received events after the subject was unsubscribed")
	}
	if err := s.Unsubscribe(); err != nil {
		t.Errorf("second Unsubscribe returned %v", err)
	}
}

func TestSubjectReentrantNext(t *testing.T) {
	s := NewSubject[int]()
	var got []int
	s.Subscribe(ObserverFuncs[int]{OnNext: func(v int) {
		got = append(got, v)
		if v == 1 {
			s.Next(2)
		}
	}})
	s.Next(1)
	if !equalSlices(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestSubjectAsObservable(t *testing.T) {
	s := NewSubject[string]()
	rec := &recorder[string]{}
	obs := s.AsObservable()
	if _, ok := obs.(*Subject[string]); ok {
		t.Fatal("AsObservable should hide the subject")
	}
	obs.Subscribe(rec)
	s.Next("x")
	if got := rec.Values(); !equalSlices(got, []string{"x"}) {
		t.Errorf("got %v, want [x]", got)
	}
}
