// Package algorithm provides sequence helpers that the standard slices
// package does not cover: a short-circuiting prefix copy, a single-pass
// filtering copy, and a run-removal.
//
// All three functions state their exact operation counts; those bounds are
// part of the interface and matter when element access or predicate
// evaluation is expensive.
package algorithm

// CopyWhile copies the longest prefix of src whose elements satisfy pred
// into dst and returns the number of elements copied.
//
// Copying stops at the first element failing pred, at the end of src, or
// when dst is full, whichever comes first. Each element considered is read
// exactly once and pred is applied to it exactly once; elements past the
// stopping point are neither read nor tested.
func CopyWhile[S ~[]E, E any](dst, src S, pred func(E) bool) int {
	n := 0
	for ; n < len(src) && n < len(dst); n++ {
		v := src[n]
		if !pred(v) {
			break
		}
		dst[n] = v
	}
	return n
}

// RemoveAndCopyIf removes from s every element satisfying pred and appends
// the removed elements to dst, in a single pass.
//
// The elements kept in s retain their relative order and are compacted to
// the front; the returned kept slice aliases s. The returned out slice is
// dst extended with the removed elements in their original order.
//
// pred is applied exactly len(s) times.
func RemoveAndCopyIf[S ~[]E, E any](s, dst S, pred func(E) bool) (kept, out S) {
	compress := 0
	for i := range s {
		v := s[i]
		if pred(v) {
			dst = append(dst, v)
		} else {
			s[compress] = v
			compress++
		}
	}
	return s[:compress], dst
}

// RemoveRangeIf partitions s into maximal runs of equivalent elements and
// removes every run for which drop reports true, preserving the order of
// the remaining elements. The returned slice aliases s.
//
// equiv must be an equivalence relation over the elements of s; each run
// is the longest range of elements equivalent to its first element. drop
// receives each run as a sub-slice of s and must not retain it.
//
// equiv is applied exactly len(s)-1 times (once per adjacent boundary
// probe) and drop exactly once per run.
func RemoveRangeIf[S ~[]E, E any](s S, equiv func(a, b E) bool, drop func(run S) bool) S {
	write := 0
	for first := 0; first < len(s); {
		// Establish the run of elements equivalent to s[first].
		last := first + 1
		for last < len(s) && equiv(s[first], s[last]) {
			last++
		}

		if !drop(s[first:last]) {
			if write != first {
				copy(s[write:write+last-first], s[first:last])
			}
			write += last - first
		}
		first = last
	}
	return s[:write]
}
