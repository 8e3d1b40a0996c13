package reclaim

import (
	"time"

	"github.com/kolkov/rcukit/internal/clock"
)

// PurgeMode selects how far Allocator.Purge walks the delay list.
type PurgeMode int

const (
	// Opportunistic stops purging at the first delay-list entry whose
	// timeout has not yet elapsed. This is the cheap mode: it never sleeps.
	Opportunistic PurgeMode = iota

	// Exhaustive purges the entire delay list, sleeping as needed for
	// entries whose timeout has not yet elapsed.
	Exhaustive
)

// DefaultBufferCapacity is the delay-buffer capacity used when
// WithBufferCapacity is not given.
const DefaultBufferCapacity = 100

// record is one deferred deallocation: the handle and element count that
// were passed to Deallocate.
type record[P any] struct {
	ptr P
	n   int
}

// delayBuffer batches reclaim records under a single timestamp. A buffer
// is stamped when it fills and is offloaded to the delay list; the current
// buffer's stamp is meaningless until then. Buffers on the delay list are
// always full.
type delayBuffer[P any] struct {
	stamp   time.Time
	records []record[P] // len is the fill level; cap is the configured capacity
	next    *delayBuffer[P]
}

// Allocator defers finalization and reclamation of deallocated regions by
// a fixed timeout. See the package documentation for the full model.
//
// All methods must be externally serialized: an Allocator instance is
// single-goroutine by contract.
type Allocator[P any] struct {
	arena    Arena[P]
	timeout  time.Duration
	clk      clock.Clock
	finalize Finalizer[P]

	capacity   int // records per delay buffer
	maxBuffers int // bound on owned buffers; 0 means unbounded

	now     time.Time // cached clock reading, refreshed on offload and purge
	buffers int       // buffers currently owned, current one included

	// current is the one writable buffer. It is nil if and only if the
	// allocator has been closed; it is never on the delay list.
	current *delayBuffer[P]

	// Delay list: full, stamped buffers in ascending stamp order, oldest
	// first. Singly linked with a cached tail.
	head *delayBuffer[P]
	tail *delayBuffer[P]
}

// Option configures an Allocator.
type Option[P any] func(*Allocator[P])

// WithBufferCapacity sets the number of reclaim records per delay buffer.
//
// Capacity trades timeout granularity against delay-list traffic: a larger
// buffer offloads (and therefore purges) less often, but holds records for
// up to a full buffer-fill longer than their own deallocation time. The
// capacity must be at least 1.
func WithBufferCapacity[P any](n int) Option[P] {
	return func(a *Allocator[P]) { a.capacity = n }
}

// WithFinalizer installs the element finalizer run on each record during
// reclamation, before the record's storage returns to the arena.
func WithFinalizer[P any](f Finalizer[P]) Option[P] {
	return func(a *Allocator[P]) { a.finalize = f }
}

// WithMaxBuffers bounds how many delay buffers the allocator may own at
// once, modeling memory pressure on the buffer path. When the bound is hit
// and a full buffer must be replaced, Deallocate blocks until the oldest
// delay-list entry's timeout elapses and reuses its buffer instead of
// acquiring a fresh one. Zero or negative means unbounded.
func WithMaxBuffers[P any](n int) Option[P] {
	return func(a *Allocator[P]) { a.maxBuffers = n }
}

// WithClock substitutes the monotonic time source, for tests.
func WithClock[P any](c clock.Clock) Option[P] {
	return func(a *Allocator[P]) { a.clk = c }
}

// New creates an allocator deferring reclamation through arena by timeout.
//
// The timeout is the period for which a deallocated region is guaranteed
// to be kept intact after Deallocate returns. New panics if the configured
// buffer capacity is less than 1.
func New[P any](arena Arena[P], timeout time.Duration, opts ...Option[P]) *Allocator[P] {
	a := &Allocator[P]{
		arena:    arena,
		timeout:  timeout,
		clk:      clock.Wall(),
		capacity: DefaultBufferCapacity,
	}
	for _, o := range opts {
		o(a)
	}
	if a.capacity < 1 {
		panic("reclaim: delay buffer capacity must be at least 1")
	}
	a.now = a.clk.Now()
	a.current = a.newBuffer()
	return a
}

// Allocate forwards to the arena.
//
// Every allocation that will eventually be passed to Deallocate must have
// been fully constructed by then: reclamation finalizes records
// unconditionally, and finalizing a region that was never initialized is
// the caller's bug. Match every Allocate with initialization before the
// corresponding Deallocate.
func (a *Allocator[P]) Allocate(n int) (P, error) {
	a.mustBeOpen()
	return a.arena.Allocate(n)
}

// Destroy does nothing: destruction is deferred until reclamation.
//
// Because Destroy does not actually finalize the object, storage obtained
// through this allocator must never be reused after Destroy: the previous
// object is still live until its eventual timed reclamation. Constructing
// a new object in the same storage after Destroy is undefined behavior.
func (a *Allocator[P]) Destroy(p P) {
	a.mustBeOpen()
}

// Deallocate marks the region behind p for delayed finalization and
// reclamation.
//
// The record goes into the current delay buffer; nothing is finalized or
// returned to the arena synchronously. When the buffer fills, it is
// stamped and offloaded to the delay list, and the allocator purges every
// delay-list entry whose timeout has elapsed.
//
// Offloading needs a replacement buffer. The allocator first reuses a
// buffer freed by the purge; failing that it acquires a fresh one; and if
// the WithMaxBuffers bound forbids that, it sleeps until the oldest
// delay-list entry (in the worst case the buffer just offloaded) becomes
// ripe, purges it and reuses its buffer. Deallocate therefore operates
// correctly under memory pressure at the cost of blocking for at most the
// timeout, and never reports pressure to the caller.
func (a *Allocator[P]) Deallocate(p P, n int) {
	a.mustBeOpen()

	// Preallocated capacity: this append cannot grow or fail. The buffer is
	// never full on entry since a full buffer is offloaded immediately.
	a.current.records = append(a.current.records, record[P]{ptr: p, n: n})
	if len(a.current.records) < a.capacity {
		return
	}

	// Stamp and offload the now-full buffer.
	a.now = a.clk.Now()
	a.current.stamp = a.now
	a.listPushBack(a.current)
	a.current = nil

	// Try to reuse a buffer freed by purging the delay list.
	replacement := a.purgeAndReuse()

	if replacement == nil {
		replacement = a.tryNewBuffer()
	}
	if replacement == nil {
		// Memory pressure: wait until the oldest entry can be purged and
		// reuse its buffer. The list cannot be empty: the buffer offloaded
		// above sits on it.
		a.clk.SleepUntil(a.head.stamp.Add(a.timeout))
		a.now = a.clk.Now()
		replacement = a.purgeAndReuse()
	}

	replacement.records = replacement.records[:0]
	a.current = replacement
}

// Purge walks the delay list oldest-first, finalizing and returning to the
// arena every entry whose timeout has elapsed.
//
// Opportunistic stops at the first entry that is still too young;
// Exhaustive sleeps out each remaining entry's timeout until the list is
// empty. In both modes the current delay buffer is untouched: it is not
// stamped yet, so the only way to honor its records' timeouts would be to
// wait the full timeout, which Purge does not do.
//
// Applications with knowledge of their own usage pattern can use Purge to
// shrink the delay list at convenient moments.
func (a *Allocator[P]) Purge(mode PurgeMode) {
	a.mustBeOpen()
	a.now = a.clk.Now()

	for a.head != nil {
		oldest := a.head
		ripeAt := oldest.stamp.Add(a.timeout)
		if a.now.Before(ripeAt) {
			if mode == Opportunistic {
				return
			}
			a.clk.SleepUntil(ripeAt)
			// We slept until at least ripeAt, so use it as "now" and spare a
			// clock reading.
			a.now = ripeAt
		}
		a.reclaimRecords(oldest.records)
		a.listPopFront()
		a.releaseBuffer(oldest)
	}
}

// Close reclaims everything still queued and shuts the allocator down.
//
// Close honors the timeout guarantee to the end: it stamps the current
// buffer, exhaustively purges the delay list, then waits out the current
// buffer's own timeout before finalizing its records, and finally releases
// the buffer itself. Records are reclaimed oldest-first rather than after
// one terminal sleep: allocators are destroyed rarely but with potentially
// long delay lists, and progressive reclamation lets the younger entries
// ripen while the older ones are processed. That ordering is an
// implementation detail, not a contract.
//
// Closing a closed allocator is a no-op. Every other method except Equal
// and Timeout panics once the allocator is closed.
func (a *Allocator[P]) Close() {
	if a.current == nil {
		return
	}

	a.current.stamp = a.clk.Now()
	a.Purge(Exhaustive)

	// The current buffer is not full (a full buffer would have been
	// offloaded), so it was never on the delay list and is handled here.
	if len(a.current.records) > 0 {
		ripeAt := a.current.stamp.Add(a.timeout)
		if a.clk.Now().Before(ripeAt) {
			a.clk.SleepUntil(ripeAt)
		}
		a.reclaimRecords(a.current.records)
	}
	a.releaseBuffer(a.current)
	a.current = nil
}

// Equal reports whether storage allocated through one allocator may be
// deallocated through the other: the arenas compare equal (see Arena) and
// the timeouts are equal. Buffer capacity and delay state do not
// participate.
func (a *Allocator[P]) Equal(b *Allocator[P]) bool {
	return a.timeout == b.timeout && arenaEqual[P](a.arena, b.arena)
}

// Clone creates a fresh allocator with this allocator's configuration
// (arena value, timeout, buffer capacity, buffer bound, clock and
// finalizer) and its own empty delay buffer and empty delay list. Delay
// state is
// never copied; a clone compares equal to its source.
func (a *Allocator[P]) Clone() *Allocator[P] {
	a.mustBeOpen()
	c := &Allocator[P]{
		arena:      a.arena,
		timeout:    a.timeout,
		clk:        a.clk,
		finalize:   a.finalize,
		capacity:   a.capacity,
		maxBuffers: a.maxBuffers,
	}
	c.now = c.clk.Now()
	c.current = c.newBuffer()
	return c
}

// Timeout returns the configured timeout.
func (a *Allocator[P]) Timeout() time.Duration { return a.timeout }

func (a *Allocator[P]) mustBeOpen() {
	if a.current == nil {
		panic("reclaim: use of closed Allocator")
	}
}

// reclaimRecords finalizes every record and returns its storage to the
// arena. No timeout check is made here; callers have done it.
func (a *Allocator[P]) reclaimRecords(records []record[P]) {
	for _, r := range records {
		if a.finalize != nil {
			a.finalize(r.ptr, r.n)
		}
		a.arena.Deallocate(r.ptr, r.n)
	}
}

// purgeAndReuse purges ripe delay-list entries and returns one of the
// freed buffers for reuse, or nil if no entry was ripe.
//
// The buffer kept for reuse is the oldest freed one; younger freed buffers
// are released. Freeing the most recently acquired buffers keeps the
// allocator's working set young, which slightly reduces fragmentation in
// the arena under steady state.
func (a *Allocator[P]) purgeAndReuse() *delayBuffer[P] {
	var reuse *delayBuffer[P]
	for a.head != nil {
		oldest := a.head
		if a.now.Before(oldest.stamp.Add(a.timeout)) {
			break
		}
		a.reclaimRecords(oldest.records)
		a.listPopFront()
		if reuse == nil {
			reuse = oldest
		} else {
			a.releaseBuffer(oldest)
		}
	}
	return reuse
}

// newBuffer acquires a buffer unconditionally; used at construction where
// the bound cannot apply (the allocator owns nothing yet).
func (a *Allocator[P]) newBuffer() *delayBuffer[P] {
	a.buffers++
	return &delayBuffer[P]{records: make([]record[P], 0, a.capacity)}
}

// tryNewBuffer acquires a fresh buffer, or returns nil when the
// WithMaxBuffers bound forbids owning another one.
func (a *Allocator[P]) tryNewBuffer() *delayBuffer[P] {
	if a.maxBuffers > 0 && a.buffers >= a.maxBuffers {
		return nil
	}
	return a.newBuffer()
}

// releaseBuffer gives a buffer up for collection and updates the owned
// count.
func (a *Allocator[P]) releaseBuffer(b *delayBuffer[P]) {
	b.next = nil
	a.buffers--
}

func (a *Allocator[P]) listPushBack(b *delayBuffer[P]) {
	b.next = nil
	if a.tail == nil {
		a.head = b
		a.tail = b
		return
	}
	a.tail.next = b
	a.tail = b
}

func (a *Allocator[P]) listPopFront() {
	front := a.head
	a.head = front.next
	if a.head == nil {
		a.tail = nil
	}
	front.next = nil
}
