package call

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/rcukit/internal/clock"
)

func TestAtMost(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		queries int
		want    int
	}{
		{name: "zero is never active", limit: 0, queries: 5, want: 0},
		{name: "one", limit: 1, queries: 5, want: 1},
		{name: "fewer queries than limit", limit: 10, queries: 3, want: 3},
		{name: "inactive forever after", limit: 2, queries: 100, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAtMost(tt.limit)
			active := 0
			for i := 0; i < tt.queries; i++ {
				if f.Active() {
					active++
				}
			}
			assert.Equal(t, tt.want, active)
		})
	}
}

func TestEvery(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	f := NewEvery(time.Second, WithClock(clk))

	assert.True(t, f.Active(), "first query must be active")
	assert.False(t, f.Active(), "second query within the interval")

	clk.Advance(999 * time.Millisecond)
	assert.False(t, f.Active(), "still within the interval")

	clk.Advance(2 * time.Millisecond)
	assert.True(t, f.Active(), "interval elapsed")
	assert.False(t, f.Active())
}

func TestDo(t *testing.T) {
	f := NewAtMost(1)

	calls := 0
	assert.True(t, Do(f, func() { calls++ }))
	assert.False(t, Do(f, func() { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestDoValue(t *testing.T) {
	f := NewAtMost(1)

	v, ok := DoValue(f, func() string { return "ran" })
	require.True(t, ok)
	assert.Equal(t, "ran", v)

	v, ok = DoValue(f, func() string { return "ran again" })
	assert.False(t, ok)
	assert.Zero(t, v, "inactive DoValue must return the zero value")
}

func TestDoWithCustomFlag(t *testing.T) {
	// Any type with Active() bool is a Flag; a raw bool toggle qualifies.
	f := &toggle{}
	assert.False(t, Do(f, func() {}))
	f.on = true
	assert.True(t, Do(f, func() {}))
}

type toggle struct{ on bool }

func (f *toggle) Active() bool { return f.on }
