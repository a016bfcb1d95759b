package searcher

import (
	"sync"

	"hunt/experiments/metrics"
	"hunt/game"

	"golang.org/x/sync/singleflight"
)

const shardCount = 64

type shard struct {
	sync.RWMutex
	counts map[game.Key]uint64
}

// memo maps canonical states to their completion counts for one search. A
// count is published only once its subtree is fully summed. While a state is
// being computed, other goroutines asking for it wait on the in-flight call
// instead of repeating the work.
type memo struct {
	shards   [shardCount]shard
	inflight singleflight.Group
	metrics  metrics.Collector
}

func newMemo(collector metrics.Collector) *memo {
	m := &memo{metrics: collector}
	for i := range m.shards {
		m.shards[i].counts = make(map[game.Key]uint64)
	}
	return m
}

func (m *memo) shardFor(key game.Key) *shard {
	return &m.shards[uint64(key.Hash())%shardCount]
}

func (m *memo) lookup(key game.Key) (uint64, bool) {
	s := m.shardFor(key)
	s.RLock()
	defer s.RUnlock()

	count, ok := s.counts[key]
	return count, ok
}

func (m *memo) publish(key game.Key, count uint64) {
	s := m.shardFor(key)
	s.Lock()
	defer s.Unlock()

	s.counts[key] = count
}

// resolve returns the published count for state, or claims the state,
// computes it and publishes the result.
func (m *memo) resolve(state game.State, compute func(game.State) uint64) uint64 {
	key := state.Key()
	if count, ok := m.lookup(key); ok {
		m.metrics.AddMemoHit()
		return count
	}

	v, _, shared := m.inflight.Do(string(key), func() (any, error) {
		// Published between our lookup and the claim.
		if count, ok := m.lookup(key); ok {
			m.metrics.AddMemoHit()
			return count, nil
		}
		count := compute(state)
		m.publish(key, count)
		return count, nil
	})
	if shared {
		m.metrics.AddSharedWait()
	}
	return v.(uint64)
}

func (m *memo) size() int {
	total := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		total += len(s.counts)
		s.RUnlock()
	}
	return total
}
