package transform_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/lguimbarda/min-rx/rx"
	"github.com/lguimbarda/min-rx/rx/core"
	"github.com/lguimbarda/min-rx/rx/transform"
)

type switchRecorder struct {
	values    []string
	err       error
	completed bool
}

func (r *switchRecorder) subscribe(obs rx.Observable[string]) rx.SubscriptionLike {
	return rx.Subscribe(obs,
		func(v string) { r.values = append(r.values, v) },
		func(err error) { r.err = err },
		func() { r.completed = true },
	)
}

func TestSwitchMapSynchronousInners(t *testing.T) {
	repeat := transform.SwitchMap(func(s string) rx.Observable[string] {
		return rx.Of(s, s)
	})
	got, err := rx.Slice(context.Background(), repeat.Apply(rx.Of("a", "b")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"a", "a", "b", "b"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSwitchMapDropsPreviousInner(t *testing.T) {
	source := rx.NewSubject[string]()
	inners := map[string]*rx.Subject[string]{}
	rec := &switchRecorder{}
	rec.subscribe(transform.SwitchMap(func(key string) rx.Observable[string] {
		inners[key] = rx.NewSubject[string]()
		return inners[key]
	}).Apply(source))

	source.Next("a")
	inners["a"].Next("a1")
	source.Next("b")
	inners["a"].Next("a2")
	inners["b"].Next("b1")

	if want := []string{"a1", "b1"}; !slices.Equal(rec.values, want) {
		t.Errorf("got %v, want %v", rec.values, want)
	}
	if inners["a"].HasObservers() {
		t.Error("previous inner should be unsubscribed")
	}
}

func TestSwitchMapCompletesAfterLastInner(t *testing.T) {
	source := rx.NewSubject[string]()
	inner := rx.NewSubject[string]()
	rec := &switchRecorder{}
	rec.subscribe(transform.SwitchMap(func(string) rx.Observable[string] { return inner }).Apply(source))

	source.Next("x")
	source.Complete()
	if rec.completed {
		t.Fatal("should wait for the active inner stream")
	}

	inner.Next("late")
	inner.Complete()
	if !rec.completed {
		t.Error("should complete once the inner stream completes")
	}
	if !slices.Equal(rec.values, []string{"late"}) {
		t.Errorf("got %v, want [late]", rec.values)
	}
}

func TestSwitchMapInnerError(t *testing.T) {
	errInner := errors.New("inner failed")
	source := rx.NewSubject[string]()
	rec := &switchRecorder{}
	rec.subscribe(transform.SwitchMap(func(string) rx.Observable[string] {
		return rx.Throw[string](errInner)
	}).Apply(source))

	source.Next("x")

	if !errors.Is(rec.err, errInner) {
		t.Errorf("err = %v, want %v", rec.err, errInner)
	}
	if source.HasObservers() {
		t.Error("source should be unsubscribed after an inner error")
	}
}

func TestSwitchMapSourceError(t *testing.T) {
	errSource := errors.New("source failed")
	source := rx.NewSubject[string]()
	inner := rx.NewSubject[string]()
	rec := &switchRecorder{}
	rec.subscribe(transform.SwitchMap(func(string) rx.Observable[string] { return inner }).Apply(source))

	source.Next("x")
	source.Error(errSource)

	if !errors.Is(rec.err, errSource) {
		t.Errorf("err = %v, want %v", rec.err, errSource)
	}
	if inner.HasObservers() {
		t.Error("inner should be unsubscribed after a source error")
	}
}

func TestSwitchMapProjectPanic(t *testing.T) {
	_, err := rx.Slice(context.Background(), transform.SwitchMap(func(string) rx.Observable[string] {
		panic("no projection")
	}).Apply(rx.Of("x")))

	var panicErr core.ErrPanic
	if !errors.As(err, &panicErr) {
		t.Fatalf("err = %v, want core.ErrPanic", err)
	}
}

func TestSwitchMapUnsubscribe(t *testing.T) {
	source := rx.NewSubject[string]()
	inner := rx.NewSubject[string]()
	handle := (&switchRecorder{}).subscribe(transform.SwitchMap(func(string) rx.Observable[string] { return inner }).Apply(source))

	source.Next("x")
	source.Complete()
	if err := handle.Unsubscribe(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.HasObservers() {
		t.Error("inner should be unsubscribed with the stream")
	}
}
