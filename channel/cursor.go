package channel

import "iter"

// Cursor is a single-pass forward cursor over a channel.
//
// Each advance performs one blocking Pop, so a cursor consumes values
// until the channel is closed and drained: a channel closed mid-iteration
// is fully drained by its cursors. Several cursors may run over the same
// channel concurrently; each queued value is delivered to exactly one of
// them, distributed by pop contention, and a single cursor observes values
// in FIFO order.
//
// A cursor makes a single pass: once a value has been extracted through
// any cursor it can never be retrieved again through another cursor over
// the same channel.
type Cursor[T any] struct {
	ch    *Channel[T] // nil once the channel closed and drained
	cur   T
	valid bool
}

// Iter returns a new cursor over the channel.
func (c *Channel[T]) Iter() *Cursor[T] {
	return &Cursor[T]{ch: c}
}

// Next advances the cursor by popping one value, blocking while the
// channel is empty and open. It reports whether a value was obtained;
// once it returns false the cursor is finished and every further call
// returns false.
func (it *Cursor[T]) Next() bool {
	if it.ch == nil {
		return false
	}
	v, st := it.ch.Pop()
	if st != Success {
		var zero T
		it.ch = nil
		it.cur = zero
		it.valid = false
		return false
	}
	it.cur = v
	it.valid = true
	return true
}

// Value returns the value obtained by the last successful Next.
//
// Value panics if Next has not been called or the cursor is finished.
func (it *Cursor[T]) Value() T {
	if !it.valid {
		panic("channel: Value called on a cursor holding no value")
	}
	return it.cur
}

// All returns an iterator over the channel's values, for use with range.
//
// The sequence pops one value per step and ends when the channel is closed
// and drained. Breaking out of the range leaves the remaining values in
// the channel.
func (c *Channel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := c.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
