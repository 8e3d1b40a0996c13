package reclaim

// Arena is the underlying allocator an Allocator defers for.
//
// P is the arena's handle type and is fully opaque to the allocator: it is
// stored in reclaim records and handed back verbatim, never inspected or
// manipulated. A conventional arena uses a pointer or slice handle; a
// shared-memory arena can use an offset type.
//
// Allocate returns a handle to storage for n elements, or an error when
// the arena is exhausted. Deallocate returns the storage behind a handle
// previously obtained from Allocate with the same n; it must not fail.
type Arena[P any] interface {
	Allocate(n int) (P, error)
	Deallocate(p P, n int)
}

// Finalizer destroys the elements of one reclaim record. The allocator
// calls it exactly once per record, immediately before handing the record
// back to Arena.Deallocate.
//
// A panic from a Finalizer propagates out of whichever operation triggered
// reclamation (Deallocate, Purge or Close), leaving the remaining records
// queued.
type Finalizer[P any] func(p P, n int)

// HeapArena is the trivial arena over the Go heap: a handle is a []T.
//
// Allocate never fails and Deallocate only drops the handle, leaving the
// storage to the garbage collector. Any two HeapArena values over the same
// element type compare equal, like the stateless standard allocator they
// stand in for. HeapArena is the natural underlying arena when the
// deferral behavior is wanted without custom memory management.
type HeapArena[T any] struct{}

// Allocate returns storage for n elements.
func (HeapArena[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

// Deallocate drops the handle; the garbage collector reclaims the storage
// once nothing else references it.
func (HeapArena[T]) Deallocate([]T, int) {}

// Equal reports whether other is a HeapArena over the same element type.
func (HeapArena[T]) Equal(other any) bool {
	_, ok := other.(HeapArena[T])
	return ok
}

// arenaEqual reports whether two arenas compare equal, which is the arena
// half of Allocator equality.
//
// An arena may define its own equality by implementing
// Equal(other any) bool; otherwise the interface values are compared with
// ==, so arena types without an Equal method must be comparable.
func arenaEqual[P any](a, b Arena[P]) bool {
	if e, ok := any(a).(interface{ Equal(other any) bool }); ok {
		return e.Equal(b)
	}
	return any(a) == any(b)
}
