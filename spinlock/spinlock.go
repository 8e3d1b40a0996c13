// Package spinlock implements a minimal non-recursive spin mutex.
//
// Like all spin mutexes, this is almost certainly not what you want: a
// goroutine seeking the lock busy-waits without doing useful work and
// without yielding to the scheduler. In a small number of situations,
// however, a spin mutex makes fine-grained access to shared data safe
// while keeping locking overhead microscopic.
//
// The implementation guarantees the following, which must be weakened
// under no circumstances:
//
//   - Only true-atomic operations are used; there is never a fallback to a
//     system-level locking mechanism.
//   - Lock busy-waits without yielding and without backoff.
//   - The state is a single machine word of the smallest size the atomic
//     package supports (4 bytes).
//
// The mutex is not recursive: a goroutine must not acquire a Mutex it
// already owns (expect a livelock if it does). Note that in most cases the
// need for locking this fine-grained hints that RCU should be used
// instead; see the reclaim package.
package spinlock

import "sync/atomic"

// Mutex is a small non-recursive spin mutex.
//
// The zero value is an unlocked mutex. A Mutex must not be copied after
// first use.
type Mutex struct {
	noCopy noCopy
	state  atomic.Uint32
}

// TryLock attempts to acquire the mutex without blocking and reports
// whether it succeeded.
//
// On success the calling goroutine owns the mutex until it calls Unlock.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(0, 1)
}

// Lock busy-waits until the calling goroutine acquires the mutex.
//
// There is no backoff and no yield: the critical sections protected by
// this mutex are expected to be a handful of instructions. The behavior is
// undefined if the calling goroutine already owns the mutex.
func (m *Mutex) Lock() {
	for !m.TryLock() {
	}
}

// Unlock releases the mutex.
//
// Writes performed before Unlock are visible to the goroutine that next
// acquires the mutex. The behavior is undefined if the mutex is not owned
// by the calling goroutine.
func (m *Mutex) Unlock() {
	m.state.Store(0)
}

// noCopy triggers go vet's copylocks check when a Mutex is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
