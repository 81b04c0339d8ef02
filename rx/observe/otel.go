package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Instrument names recorded by Instrument.
const (
	MetricNext          = "rx.next"
	MetricErrors        = "rx.errors"
	MetricCompletions   = "rx.completions"
	MetricSubscriptions = "rx.subscriptions.active"
)

// Instrument creates an operator that records stream events as OpenTelemetry
// metrics on meter. Every measurement carries an "rx.stream" attribute set to
// name, so one meter can serve many pipelines.
//
// The instruments are created once, here; an error is returned if meter
// refuses any of them.
func Instrument[T any](meter metric.Meter, name string) (core.OperatorFunc[T, T], error) {
	next, err := meter.Int64Counter(MetricNext,
		metric.WithDescription("values delivered through the stage"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricNext, err)
	}
	errs, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("errors delivered through the stage"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricErrors, err)
	}
	completions, err := meter.Int64Counter(MetricCompletions,
		metric.WithDescription("completions delivered through the stage"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricCompletions, err)
	}
	active, err := meter.Int64UpDownCounter(MetricSubscriptions,
		metric.WithDescription("subscriptions that have not been torn down"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricSubscriptions, err)
	}

	attrs := metric.WithAttributes(attribute.String("rx.stream", name))
	ctx := context.Background()

	return Tap(Hooks[T]{
		OnSubscribe: func() { active.Add(ctx, 1, attrs) },
		OnNext:      func(T) { next.Add(ctx, 1, attrs) },
		OnError:     func(error) { errs.Add(ctx, 1, attrs) },
		OnComplete:  func() { completions.Add(ctx, 1, attrs) },
		OnTeardown:  func() { active.Add(ctx, -1, attrs) },
	}), nil
}
