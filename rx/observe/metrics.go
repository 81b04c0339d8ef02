package observe

import (
	"sync/atomic"
	"time"

	"github.com/juju/clock"

	"github.com/lguimbarda/min-rx/rx/core"
)

// LiveMetrics holds real-time metrics that can be read concurrently while
// the streams it meters are running. One LiveMetrics can meter any number of
// subscriptions; counts accumulate across them.
type LiveMetrics struct {
	clock clock.Clock

	valueCount    atomic.Int64
	errorCount    atomic.Int64
	completeCount atomic.Int64
	active        atomic.Int64
	startTime     atomic.Int64 // Unix nano
	lastItemTime  atomic.Int64 // Unix nano
}

// NewLiveMetrics creates a LiveMetrics reading time from clk. A nil clk, like
// the zero LiveMetrics, uses the wall clock.
func NewLiveMetrics(clk clock.Clock) *LiveMetrics {
	if clk == nil {
		clk = clock.WallClock
	}
	return &LiveMetrics{clock: clk}
}

func (m *LiveMetrics) now() time.Time {
	if m.clock == nil {
		return time.Now()
	}
	return m.clock.Now()
}

// ValueCount returns the number of values seen.
func (m *LiveMetrics) ValueCount() int64 { return m.valueCount.Load() }

// ErrorCount returns the number of errors.
func (m *LiveMetrics) ErrorCount() int64 { return m.errorCount.Load() }

// CompleteCount returns the number of completions.
func (m *LiveMetrics) CompleteCount() int64 { return m.completeCount.Load() }

// Active returns the number of subscriptions that have not been torn down.
func (m *LiveMetrics) Active() int64 { return m.active.Load() }

// StartTime returns when the first metered subscription started.
func (m *LiveMetrics) StartTime() time.Time {
	return time.Unix(0, m.startTime.Load())
}

// LastItemTime returns when the last value was seen.
func (m *LiveMetrics) LastItemTime() time.Time {
	return time.Unix(0, m.lastItemTime.Load())
}

// Duration returns how long the metered streams have been running.
func (m *LiveMetrics) Duration() time.Duration {
	start := m.startTime.Load()
	if start == 0 {
		return 0
	}
	return m.now().Sub(time.Unix(0, start))
}

// ItemsPerSecond returns the current throughput.
func (m *LiveMetrics) ItemsPerSecond() float64 {
	duration := m.Duration().Seconds()
	if duration <= 0 {
		return 0
	}
	return float64(m.ValueCount()) / duration
}

// MeterLive creates an operator that updates metrics as events pass through.
func MeterLive[T any](metrics *LiveMetrics) core.OperatorFunc[T, T] {
	if metrics == nil {
		panic("observe.MeterLive: metrics must not be nil")
	}
	return Tap(Hooks[T]{
		OnSubscribe: func() {
			metrics.startTime.CompareAndSwap(0, metrics.now().UnixNano())
			metrics.active.Add(1)
		},
		OnNext: func(T) {
			metrics.valueCount.Add(1)
			metrics.lastItemTime.Store(metrics.now().UnixNano())
		},
		OnError:    func(error) { metrics.errorCount.Add(1) },
		OnComplete: func() { metrics.completeCount.Add(1) },
		OnTeardown: func() { metrics.active.Add(-1) },
	})
}
