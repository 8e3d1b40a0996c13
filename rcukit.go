// Package rcukit provides concurrency and resource-management primitives
// for high-throughput services that practice read-copy-update (RCU) style
// data management.
//
// The library is a collection of small, independent packages:
//
//   - reclaim: an allocator adaptor that defers object finalization and
//     memory reclamation until a fixed time window has elapsed, so racing
//     readers that obtained a reference before a writer swap are guaranteed
//     to have dropped it before memory is reused.
//   - channel: a bounded multi-producer multi-consumer FIFO with blocking,
//     non-blocking and timed operations and close-to-drain semantics.
//   - spinlock: a minimal non-recursive spin mutex for microscopic critical
//     sections.
//   - algorithm: short-circuiting and filtering sequence helpers.
//   - call: limiting flags that bound how often or how many times a
//     function is invoked.
//
// The packages share no state; each is usable in isolation.
package rcukit

// Version is the current release of the library.
const Version = "0.1.0"
