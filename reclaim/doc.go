// Package reclaim implements an allocator adaptor that defers object
// finalization and memory reclamation until a fixed time period has
// elapsed.
//
// # Background
//
// When modifying shared data that is concurrently being read by other
// goroutines, it is sometimes necessary to delay destructive operations
// (finalization, memory reuse) to a time when no reader may still be using
// the data. This pattern is known as read-copy-update (RCU). In a
// nutshell:
//
//  1. Make the shared data unreachable for new readers, typically by
//     atomically swapping a pointer to a newer version.
//  2. Wait for all pre-existing readers, those that may have obtained a
//     reference before step 1, to be done with it.
//  3. Only then carry out the destructive operation.
//
// Knowing exactly when all pre-existing readers are done can be
// challenging. But when readers are known to never hold a reference for
// longer than some fixed period, RCU simplifies dramatically: it is enough
// to not perform the destructive operation until that period has elapsed
// after the unpublish. The cost of this simplicity is that memory is never
// reclaimed sooner than the period, even when no reader holds a reference.
//
// # Operation
//
// An Allocator wraps an underlying Arena and defers the destructive half
// of its contract by a configured timeout:
//
//  1. Destroy does nothing; destruction is deferred until reclamation.
//  2. Deallocate records the region in a fixed-capacity delay buffer. When
//     the buffer fills, it is stamped with the current time and appended
//     to the delay list, which is kept in ascending stamp order.
//  3. On each buffer offload the allocator purges the delay list: entries
//     whose stamp plus the timeout has passed are finalized and their
//     memory returned through the arena. A larger buffer capacity means
//     coarser timeout granularity but fewer delay-list operations.
//
// Purging can also be requested explicitly; see Allocator.Purge.
//
// All memory ultimately comes from and returns to the arena, so custom
// allocation behavior (pooling, shared-memory segments, accounting) is
// obtained by composing arenas. The allocator treats the arena's handle
// type as fully opaque: a handle may be an offset into a shared-memory
// segment rather than an address.
//
// # Cloning
//
// Clone copies the configuration (arena, timeout, capacity and bound)
// but never the delay buffer or delay list. Together with equality being
// defined by arena equality and timeout equality, this gives proper copy
// semantics: anything allocated through one allocator may be deallocated
// through any allocator comparing equal to it, so long as no region is
// ever placed in more than one delay buffer or list. Since delay state is
// never copied, that could only happen by deallocating the same region
// twice, which is already an error.
//
// # Concurrency
//
// An Allocator instance is single-goroutine by contract: calls on one
// instance must be externally serialized. Distinct instances are
// independent.
package reclaim
