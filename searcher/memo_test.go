package searcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hunt/experiments/metrics"
	"hunt/game"

	"github.com/stretchr/testify/require"
)

func TestMemoResolve(t *testing.T) {
	t.Run("computes once and returns the published count after", func(t *testing.T) {
		m := newMemo(metrics.NewDummyCollector())
		state := game.NewState(cell(0, 0), cell(1, 1))
		calls := 0
		compute := func(game.State) uint64 {
			calls++
			return 42
		}

		first := m.resolve(state, compute)
		second := m.resolve(state, compute)

		require.Equal(t, uint64(42), first)
		require.Equal(t, uint64(42), second, "A cache hit returns the cached count")
		require.Equal(t, 1, calls)
		require.Equal(t, 1, m.size())
	})

	t.Run("equal states share an entry", func(t *testing.T) {
		m := newMemo(metrics.NewDummyCollector())
		m.resolve(game.NewState(cell(0, 0), cell(1, 1), cell(2, 2)), func(game.State) uint64 { return 7 })

		got := m.resolve(game.NewState(cell(0, 0), cell(2, 2), cell(1, 1)), func(game.State) uint64 {
			t.Fatal("state should already be published")
			return 0
		})

		require.Equal(t, uint64(7), got)
	})

	t.Run("a zero count is still a hit", func(t *testing.T) {
		m := newMemo(metrics.NewDummyCollector())
		state := game.NewState(cell(0, 0), cell(1, 1))
		calls := 0
		compute := func(game.State) uint64 {
			calls++
			return 0
		}

		m.resolve(state, compute)
		m.resolve(state, compute)

		require.Equal(t, 1, calls)
	})

	t.Run("concurrent claims compute once", func(t *testing.T) {
		collector := metrics.NewCollector()
		collector.Start(16)
		m := newMemo(collector)
		state := game.NewState(cell(3, 3), cell(0, 1))
		var calls atomic.Int32
		release := make(chan struct{})
		compute := func(game.State) uint64 {
			calls.Add(1)
			<-release
			return 11
		}

		var wg sync.WaitGroup
		results := make([]uint64, 16)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = m.resolve(state, compute)
			}()
		}
		// Let the goroutines pile up on the claim before it completes.
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			require.Equal(t, uint64(11), r)
		}
		metric := collector.Complete()
		require.GreaterOrEqual(t, metric.MemoHits+metric.SharedWaits, int64(15),
			"Every caller but the claimant either hit the memo or shared the claim")
	})
}
