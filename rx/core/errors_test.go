package core

import (
	"errors"
	"strings"
	"testing"
)

func TestTry(t *testing.T) {
	if err := Try(func() {}); err != nil {
		t.Fatalf("Try without panic returned %v", err)
	}

	err := Try(func() { panic(errTest) })
	var panicErr ErrPanic
	if !errors.As(err, &panicErr) {
		t.Fatalf("got %T, want ErrPanic", err)
	}
	if !errors.Is(err, errTest) {
		t.Error("ErrPanic should unwrap to the panicked error")
	}

	err = Try(func() { panic("plain value") })
	if errors.Unwrap(err) != nil {
		t.Error("ErrPanic of a non-error value should not unwrap")
	}
	if !strings.HasPrefix(err.Error(), "panic: plain value") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestPanicStackDropsLibraryFrames(t *testing.T) {
	err := Try(func() { panic("where") })
	var panicErr ErrPanic
	if !errors.As(err, &panicErr) {
		t.Fatalf("got %T, want ErrPanic", err)
	}
	if panicErr.Stack == "" {
		t.Fatal("stack should not be empty")
	}
	if strings.Contains(panicErr.Stack, "min-rx/rx/core.Try") {
		t.Errorf("stack should not contain library frames:\n%s", panicErr.Stack)
	}
	if !strings.Contains(panicErr.Stack, "testing.tRunner") {
		t.Errorf("stack should keep the standard library frames:\n%s", panicErr.Stack)
	}
}

func TestUnsubscriptionErrorMessage(t *testing.T) {
	one := &UnsubscriptionError{Errors: []error{errTest}}
	if !strings.Contains(one.Error(), "1 error occurred") {
		t.Errorf("message = %q", one.Error())
	}

	two := &UnsubscriptionError{Errors: []error{errTest, errors.New("other")}}
	msg := two.Error()
	if !strings.Contains(msg, "2 errors occurred") || !strings.Contains(msg, "1) test error") || !strings.Contains(msg, "2) other") {
		t.Errorf("message = %q", msg)
	}
}
