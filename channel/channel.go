// Package channel implements a bounded multi-producer multi-consumer
// thread-safe channel with blocking, non-blocking and timed operations and
// close-to-drain semantics.
//
// # Overview
//
// A Channel is a queue that any number of goroutines may concurrently push
// to and pop from without external synchronization. The channel is
// bounded: pushing into a full channel blocks (for blocking operations) or
// fails softly (for non-blocking ones). When producers are done, the
// channel is closed; nothing more can be pushed, but consumers keep
// popping until the channel is empty (known as draining the channel).
//
// Unlike the built-in chan type, every operation reports its outcome as a
// Status, sending on a closed Channel returns Closed instead of
// panicking, and every operation has non-blocking and deadline-bounded
// variants.
//
// # Ordering and waking
//
// Values are delivered in strict FIFO order per the underlying container.
// Each successful push wakes one waiting consumer and each successful pop
// wakes one waiting producer; Close wakes everyone. Waiters on each side
// are queued FIFO and an abandoned wakeup is handed to the next waiter, so
// no wakeup is ever lost. There is no total order between concurrent
// producers or between concurrent consumers, and no fairness promise
// beyond the wake policy above.
//
// # Performance and usability
//
// The channel synchronizes with a lock. Lock-free MPMC queues with better
// throughput exist, but none we found is as simple to reason about or as
// ergonomic. When work is distributed in a coarse-grained manner between
// producers and consumers, this channel is vastly sufficient; otherwise,
// benchmark.
//
// # Lifetime
//
// A Channel must outlive every goroutine using it and every Cursor over
// it. Goroutines blocked on a channel are released by closing it: blocked
// producers return Closed, blocked consumers drain the remaining values
// and then return Closed. Close never blocks and never waits for users of
// the channel to go away; joining those goroutines before the channel goes
// out of reach is the caller's responsibility.
package channel

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Channel is a bounded multi-producer multi-consumer FIFO.
//
// Create one with New. A Channel must not be copied after first use.
type Channel[T any] struct {
	noCopy noCopy

	capacity int

	mu        sync.Mutex
	queue     Container[T]
	closed    bool
	producers waitQueue // goroutines blocked pushing; woken when a slot frees
	consumers waitQueue // goroutines blocked popping; woken when a value arrives
}

// Option configures a Channel.
type Option[T any] func(*Channel[T])

// WithContainer substitutes the underlying container. The container must
// be empty and must provide strict FIFO semantics; see Container.
func WithContainer[T any](c Container[T]) Option[T] {
	return func(ch *Channel[T]) { ch.queue = c }
}

// New creates a channel holding at most capacity values.
//
// capacity must be at least 1; New panics otherwise.
func New[T any](capacity int, opts ...Option[T]) *Channel[T] {
	if capacity < 1 {
		panic("channel: capacity must be at least 1")
	}
	ch := &Channel[T]{capacity: capacity}
	for _, o := range opts {
		o(ch)
	}
	if ch.queue == nil {
		ch.queue = newRingDeque[T](capacity)
	}
	return ch
}

// Cap returns the channel's fixed capacity.
func (c *Channel[T]) Cap() int { return c.capacity }

// Len returns the number of values currently queued.
//
// The value is instantaneous: by the time Len returns, concurrent
// operations may already have changed it.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// Close prevents any further values from being pushed to the channel.
//
// Goroutines blocked in any pushing or popping operation are woken:
// producers observe Closed, consumers keep draining queued values and
// observe Closed once the channel is empty. Close is idempotent, never
// blocks, and does not wait for users of the channel to go away.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.producers.wakeAll()
	c.consumers.wakeAll()
	c.mu.Unlock()
}

// Push pushes v, blocking while the channel is full.
//
// It returns Success after enqueueing v and waking one waiting consumer,
// or Closed if the channel is (or becomes) closed.
func (c *Channel[T]) Push(v T) Status {
	return c.PushContext(context.Background(), v)
}

// PushContext pushes v, blocking while the channel is full, until ctx is
// done.
//
//   - If the channel is closed, returns Closed.
//   - If the channel is not full, enqueues v, wakes one waiting consumer
//     and returns Success.
//   - Otherwise waits until a slot frees (enqueues and returns Success),
//     the channel is closed (returns Closed), or ctx is done (returns
//     Timeout).
//
// The deadline is best-effort: PushContext may return Timeout even if a
// slot became free around the same instant.
func (c *Channel[T]) PushContext(ctx context.Context, v T) Status {
	c.mu.Lock()
	for {
		if c.closed {
			c.mu.Unlock()
			return Closed
		}
		if c.queue.Len() < c.capacity {
			c.queue.PushBack(v)
			c.consumers.wakeOne()
			c.mu.Unlock()
			return Success
		}
		if st := c.wait(ctx, &c.producers); st != Success {
			return st
		}
	}
}

// TryPush pushes v without blocking.
//
// It returns Closed if the channel is closed, Full if it is full, and
// Success otherwise (after enqueueing v and waking one waiting consumer).
func (c *Channel[T]) TryPush(v T) Status {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Closed
	}
	if c.queue.Len() >= c.capacity {
		c.mu.Unlock()
		return Full
	}
	c.queue.PushBack(v)
	c.consumers.wakeOne()
	c.mu.Unlock()
	return Success
}

// TryPushFor is PushContext bounded by the relative duration d.
func (c *Channel[T]) TryPushFor(d time.Duration, v T) Status {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return c.PushContext(ctx, v)
}

// TryPushUntil is PushContext bounded by the absolute time t.
func (c *Channel[T]) TryPushUntil(t time.Time, v T) Status {
	ctx, cancel := context.WithDeadline(context.Background(), t)
	defer cancel()
	return c.PushContext(ctx, v)
}

// Pop dequeues a value, blocking while the channel is empty.
//
// It returns the value and Success after waking one waiting producer, or
// the zero value and Closed once the channel is closed and drained. A
// closed channel that still holds values keeps delivering them: Pop never
// returns Closed while the channel is non-empty.
func (c *Channel[T]) Pop() (T, Status) {
	return c.PopContext(context.Background())
}

// PopContext dequeues a value, blocking while the channel is empty, until
// ctx is done.
//
//   - If the channel is non-empty, open or closed, dequeues the head,
//     wakes one waiting producer and returns it with Success.
//   - If the channel is empty and closed, returns Closed.
//   - Otherwise waits until a value arrives (returns it with Success), the
//     channel is closed (returns Closed), or ctx is done (returns
//     Timeout).
//
// The deadline is best-effort: PopContext may return Timeout even if a
// value arrived around the same instant.
func (c *Channel[T]) PopContext(ctx context.Context) (T, Status) {
	var zero T
	c.mu.Lock()
	for {
		if c.queue.Len() > 0 {
			v := c.queue.PopFront()
			c.producers.wakeOne()
			c.mu.Unlock()
			return v, Success
		}
		if c.closed {
			c.mu.Unlock()
			return zero, Closed
		}
		if st := c.wait(ctx, &c.consumers); st != Success {
			return zero, st
		}
	}
}

// TryPop dequeues a value without blocking.
//
// It returns the head and Success if the channel is non-empty (after
// waking one waiting producer); otherwise the zero value with Closed if
// the channel is closed, or Empty if it is merely empty.
func (c *Channel[T]) TryPop() (T, Status) {
	var zero T
	c.mu.Lock()
	if c.queue.Len() > 0 {
		v := c.queue.PopFront()
		c.producers.wakeOne()
		c.mu.Unlock()
		return v, Success
	}
	if c.closed {
		c.mu.Unlock()
		return zero, Closed
	}
	c.mu.Unlock()
	return zero, Empty
}

// TryPopFor is PopContext bounded by the relative duration d.
func (c *Channel[T]) TryPopFor(d time.Duration) (T, Status) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return c.PopContext(ctx)
}

// TryPopUntil is PopContext bounded by the absolute time t.
func (c *Channel[T]) TryPopUntil(t time.Time) (T, Status) {
	ctx, cancel := context.WithDeadline(context.Background(), t)
	defer cancel()
	return c.PopContext(ctx)
}

// wait parks the calling goroutine on q until it is woken or ctx is done.
//
// Called with c.mu held; returns with c.mu held on Success (the caller
// re-checks its predicate) and released on Timeout. A wakeup that races
// with cancellation is handed to the next waiter so it is not lost.
func (c *Channel[T]) wait(ctx context.Context, q *waitQueue) Status {
	ready := make(chan struct{})
	elem := q.waiters.PushBack(ready)
	c.mu.Unlock()

	select {
	case <-ready:
		c.mu.Lock()
		return Success
	case <-ctx.Done():
		c.mu.Lock()
		select {
		case <-ready:
			// Woken and cancelled at the same time: pass the wakeup on.
			q.wakeOne()
		default:
			q.waiters.Remove(elem)
		}
		c.mu.Unlock()
		return Timeout
	}
}

// waitQueue is a FIFO of parked goroutines, one ready channel per waiter.
// All methods require the channel lock.
type waitQueue struct {
	waiters list.List // of chan struct{}
}

func (q *waitQueue) wakeOne() {
	if e := q.waiters.Front(); e != nil {
		q.waiters.Remove(e)
		close(e.Value.(chan struct{}))
	}
}

func (q *waitQueue) wakeAll() {
	for e := q.waiters.Front(); e != nil; e = q.waiters.Front() {
		q.waiters.Remove(e)
		close(e.Value.(chan struct{}))
	}
}

// noCopy triggers go vet's copylocks check when a Channel is copied by
// value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
