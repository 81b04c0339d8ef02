package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrPanic wraps a recovered panic value as an error.
// This is used when a user-provided function (a comparator, a selector, a
// producer) panics while a stream is being delivered. It includes a
// cleaned-up stack trace that excludes internal min-rx frames.
type ErrPanic struct {
	Value any
	Stack string // Cleaned stack trace
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it was itself an error.
func (e ErrPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// NewPanicError creates an ErrPanic from a recovered value with a cleaned stack trace.
// It captures the current stack and removes internal min-rx frames to show only
// user code, making it easier to identify where the panic originated.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // skip: runtime.Callers, captureStack, NewPanicError, defer func
	}
}

// Try calls fn and converts a panic into an ErrPanic.
// Every user callback invoked while delivering a stream goes through Try so
// that a misbehaving callback becomes a stream error instead of crashing the
// producer's goroutine.
func Try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	fn()
	return nil
}

// captureStack returns the current stack trace as a string.
func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}

// cleanStack removes internal min-rx frames from a stack trace.
// It keeps user code and standard library frames while filtering out
// github.com/lguimbarda/min-rx internal frames.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, "github.com/lguimbarda/min-rx/rx/") &&
				!strings.Contains(line, "_test.") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

// UnsubscriptionError aggregates the failures raised while tearing down the
// children of a Subscription. Every child gets a chance to dispose before the
// error is returned.
type UnsubscriptionError struct {
	Errors []error
}

func (e *UnsubscriptionError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("1 error occurred during unsubscription: %v", e.Errors[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors occurred during unsubscription:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d) %v", i+1, err)
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *UnsubscriptionError) Unwrap() []error {
	return e.Errors
}

// flattenUnsubscriptionErrors appends err to errs, inlining the contents of a
// nested UnsubscriptionError so that the aggregate stays one level deep.
func flattenUnsubscriptionErrors(errs []error, err error) []error {
	var nested *UnsubscriptionError
	if errors.As(err, &nested) {
		return append(errs, nested.Errors...)
	}
	return append(errs, err)
}
