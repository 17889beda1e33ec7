package harvest

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPoolCollectsAllResults(t *testing.T) {
	t.Parallel()
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	out := runPool(context.Background(), 8, items, func(_ context.Context, n int) int {
		return n * 2
	})
	require.Len(t, out, len(items))

	// Collection is in completion order; only the set is guaranteed.
	sort.Ints(out)
	for i, v := range out {
		assert.Equal(t, i*2, v)
	}
}

func TestRunPoolBoundsConcurrency(t *testing.T) {
	t.Parallel()
	const workers = 4
	var inFlight, peak atomic.Int32

	items := make([]int, 32)
	runPool(context.Background(), workers, items, func(_ context.Context, _ int) struct{} {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}
	})

	assert.LessOrEqual(t, peak.Load(), int32(workers))
	assert.Positive(t, peak.Load())
}

func TestRunPoolIsolatesTaskFailures(t *testing.T) {
	t.Parallel()
	items := []int{1, 2, 3, 4, 5}
	out := runPool(context.Background(), 2, items, func(_ context.Context, n int) []int {
		if n%2 == 0 {
			// A failing task contributes an empty result, nothing more.
			return nil
		}
		return []int{n}
	})

	var got []int
	for _, batch := range out {
		got = append(got, batch...)
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 3, 5}, got)
}

func TestRunPoolEmptyInput(t *testing.T) {
	t.Parallel()
	out := runPool(context.Background(), 8, nil, func(_ context.Context, n int) int { return n })
	assert.Empty(t, out)
}
