package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyWhile(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }

	tests := []struct {
		name    string
		src     []int
		dstLen  int
		wantN   int
		wantDst []int
	}{
		{name: "empty source", src: nil, dstLen: 4, wantN: 0, wantDst: []int{0, 0, 0, 0}},
		{name: "stops at first failure", src: []int{2, 4, 5, 6}, dstLen: 4, wantN: 2, wantDst: []int{2, 4, 0, 0}},
		{name: "whole prefix satisfies", src: []int{2, 4, 6}, dstLen: 4, wantN: 3, wantDst: []int{2, 4, 6, 0}},
		{name: "destination shorter than prefix", src: []int{2, 4, 6, 8}, dstLen: 2, wantN: 2, wantDst: []int{2, 4}},
		{name: "first element fails", src: []int{1, 2, 4}, dstLen: 3, wantN: 0, wantDst: []int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]int, tt.dstLen)
			n := CopyWhile(dst, tt.src, even)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantDst, dst)
		})
	}
}

func TestCopyWhileEvaluatesEachElementOnce(t *testing.T) {
	// The operation-count bounds are part of the interface: an element is
	// tested at most once, and elements past the stopping point not at all.
	applications := 0
	src := []int{2, 4, 5, 6, 8}
	dst := make([]int, len(src))
	n := CopyWhile(dst, src, func(v int) bool {
		applications++
		return v%2 == 0
	})
	require.Equal(t, 2, n)
	assert.Equal(t, 3, applications, "predicate applications")
}

func TestRemoveAndCopyIf(t *testing.T) {
	odd := func(v int) bool { return v%2 == 1 }

	tests := []struct {
		name     string
		s        []int
		wantKept []int
		wantOut  []int
	}{
		{name: "empty", s: nil, wantKept: nil, wantOut: nil},
		{name: "mixed", s: []int{1, 2, 3, 4, 5}, wantKept: []int{2, 4}, wantOut: []int{1, 3, 5}},
		{name: "nothing removed", s: []int{2, 4, 6}, wantKept: []int{2, 4, 6}, wantOut: nil},
		{name: "everything removed", s: []int{1, 3}, wantKept: nil, wantOut: []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := append([]int(nil), tt.s...)
			kept, out := RemoveAndCopyIf(s, nil, odd)
			assert.Equal(t, tt.wantKept, emptyAsNil(kept))
			assert.Equal(t, tt.wantOut, emptyAsNil(out))
		})
	}
}

func TestRemoveAndCopyIfAppendsToDst(t *testing.T) {
	s := []int{1, 2, 3}
	kept, out := RemoveAndCopyIf(s, []int{9}, func(v int) bool { return v != 2 })
	assert.Equal(t, []int{2}, kept)
	assert.Equal(t, []int{9, 1, 3}, out)
}

func TestRemoveAndCopyIfAppliesPredicateExactlyOnce(t *testing.T) {
	applications := 0
	s := []int{1, 2, 3, 4, 5, 6}
	RemoveAndCopyIf(s, nil, func(v int) bool {
		applications++
		return v > 3
	})
	assert.Equal(t, len(s), applications)
}

func TestRemoveRangeIf(t *testing.T) {
	sameParity := func(a, b int) bool { return a%2 == b%2 }

	tests := []struct {
		name string
		s    []int
		drop func(run []int) bool
		want []int
	}{
		{
			name: "empty",
			s:    nil,
			drop: func([]int) bool { return true },
			want: nil,
		},
		{
			name: "drop runs longer than one",
			s:    []int{1, 3, 2, 5, 7, 9, 4, 6},
			drop: func(run []int) bool { return len(run) > 1 },
			want: []int{2},
		},
		{
			name: "drop nothing",
			s:    []int{1, 2, 3},
			drop: func([]int) bool { return false },
			want: []int{1, 2, 3},
		},
		{
			name: "drop everything",
			s:    []int{1, 2, 3},
			drop: func([]int) bool { return true },
			want: nil,
		},
		{
			name: "drop runs of even numbers",
			s:    []int{1, 3, 2, 4, 5, 6},
			drop: func(run []int) bool { return run[0]%2 == 0 },
			want: []int{1, 3, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := append([]int(nil), tt.s...)
			got := RemoveRangeIf(s, sameParity, tt.drop)
			assert.Equal(t, tt.want, emptyAsNil(got))
		})
	}
}

func TestRemoveRangeIfOperationCounts(t *testing.T) {
	equivApps := 0
	dropApps := 0
	s := []int{1, 1, 2, 2, 2, 3} // three runs under ==
	RemoveRangeIf(s,
		func(a, b int) bool { equivApps++; return a == b },
		func(run []int) bool { dropApps++; return false },
	)
	assert.Equal(t, len(s)-1, equivApps, "equivalence applications")
	assert.Equal(t, 3, dropApps, "run-predicate applications")
}

func emptyAsNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
