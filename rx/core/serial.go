package core

import "sync"

// Serial makes deliveries into an operator with more than one input atomic
// with respect to the operator's state. A function passed to Do runs at once
// when the gate is free; otherwise it is queued and run by whoever is inside
// the gate before that caller leaves. Do never waits for other work, so a
// delivery that re-enters the same operator from within a callback is queued
// instead of deadlocking or interleaving.
//
// The zero value is ready to use.
type Serial struct {
	mu    sync.Mutex
	busy  bool
	queue []func()
}

// Do runs fn inside the gate, now or after the work already queued.
func (g *Serial) Do(fn func()) {
	g.mu.Lock()
	if g.busy {
		g.queue = append(g.queue, fn)
		g.mu.Unlock()
		return
	}
	g.busy = true
	g.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			g.mu.Lock()
			g.busy = false
			g.queue = nil
			g.mu.Unlock()
			panic(r)
		}
	}()

	for {
		fn()

		g.mu.Lock()
		if len(g.queue) == 0 {
			g.busy = false
			g.mu.Unlock()
			return
		}
		fn = g.queue[0]
		g.queue[0] = nil
		g.queue = g.queue[1:]
		g.mu.Unlock()
	}
}
