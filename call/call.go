// Package call provides limiting flags and helpers that bound how often,
// or how many times, a function is invoked.
//
// A limiting flag is any value with a single method, Active() bool, that
// reports whether an action should be taken now. Flags compose with Do and
// DoValue the way sync.Once composes with its Do method, but flags are more
// general: they can limit by count, by rate, or by any policy the caller
// implements. Flags are not required to be safe for concurrent use.
//
// A typical use is keeping a processing loop's liveness message from
// flooding the output:
//
//	every := call.NewEvery(time.Second)
//	for waiting() {
//		process()
//		call.Do(every, func() { log.Print("still alive...") })
//	}
//
// Note that a flag limits how often a call is made; it cannot ensure the
// call is made at least some number of times. If an iteration of the loop
// above blocks for longer than a second, no message is printed during that
// second.
package call

import (
	"time"

	"github.com/kolkov/rcukit/internal/clock"
)

// Flag reports whether an action should be taken.
//
// Implementations are queried once per candidate action and may update
// internal state on each query. Unless documented otherwise, a Flag is not
// safe for unsynchronized concurrent use.
type Flag interface {
	Active() bool
}

// Do invokes fn if the flag is active and reports whether the call was
// made.
func Do(f Flag, fn func()) bool {
	if f.Active() {
		fn()
		return true
	}
	return false
}

// DoValue invokes fn if the flag is active. It returns fn's result and
// true if the call was made, and the zero value and false otherwise.
func DoValue[T any](f Flag, fn func() T) (T, bool) {
	if f.Active() {
		return fn(), true
	}
	var zero T
	return zero, false
}

// Every is a Flag that is active at most once per interval.
//
// The first query is always active.
type Every struct {
	clk      clock.Clock
	interval time.Duration
	last     time.Time
}

// EveryOption configures an Every flag.
type EveryOption func(*Every)

// WithClock substitutes the time source, for tests.
func WithClock(c clock.Clock) EveryOption {
	return func(e *Every) { e.clk = c }
}

// NewEvery returns a flag that is active at most once per interval.
func NewEvery(interval time.Duration, opts ...EveryOption) *Every {
	e := &Every{clk: clock.Wall(), interval: interval}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Active reports whether more than interval has passed since the last
// active query. The zero last-activation time makes the first query
// active.
func (e *Every) Active() bool {
	now := e.clk.Now()
	if now.After(e.last.Add(e.interval)) {
		e.last = now
		return true
	}
	return false
}

// AtMost is a Flag that is active for the first n queries and inactive
// forever after.
type AtMost struct {
	max int
	n   int
}

// NewAtMost returns a flag that is active at most n times.
func NewAtMost(n int) *AtMost {
	return &AtMost{max: n}
}

// Active reports whether fewer than n queries have been active so far.
func (f *AtMost) Active() bool {
	if f.n < f.max {
		f.n++
		return true
	}
	return false
}
