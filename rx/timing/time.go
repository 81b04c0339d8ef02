// Package timing provides time-driven sources. They are the usual closing
// notifiers for aggregate.WindowWhen and flush sources for filter.Distinct.
//
// Every source takes a clock.Clock so that tests can drive time with
// github.com/juju/clock/testclock instead of sleeping.
package timing

import (
	"time"

	"github.com/juju/clock"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Timer creates an Observable that emits the clock's time once, d after
// subscription, and then completes. Unsubscribing earlier stops the timer.
func Timer(clk clock.Clock, d time.Duration) core.Observable[time.Time] {
	if clk == nil {
		clk = clock.WallClock
	}
	return core.Emit(func(sub *core.Subscriber[time.Time]) {
		done := make(chan struct{})
		sub.AddFunc(func() { close(done) })

		timer := clk.NewTimer(d)
		go func() {
			defer timer.Stop()
			select {
			case <-done:
			case now := <-timer.Chan():
				sub.Next(now)
				sub.Complete()
			}
		}()
	})
}

// Interval creates an Observable that emits 0, 1, 2, ... every period
// after subscription. It never completes; unsubscribe to stop it.
// A tick is only scheduled after the previous value has been delivered, so a
// slow consumer stretches the interval instead of queuing ticks.
func Interval(clk clock.Clock, period time.Duration) core.Observable[int] {
	if clk == nil {
		clk = clock.WallClock
	}
	return core.Emit(func(sub *core.Subscriber[int]) {
		done := make(chan struct{})
		sub.AddFunc(func() { close(done) })

		timer := clk.NewTimer(period)
		go func() {
			defer timer.Stop()
			for n := 0; ; n++ {
				select {
				case <-done:
					return
				case <-timer.Chan():
					sub.Next(n)
					timer.Reset(period)
				}
			}
		}()
	})
}
