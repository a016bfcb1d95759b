package searcher

import (
	"sync"
	"sync/atomic"

	"hunt/experiments/metrics"
	"hunt/game"
	"hunt/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Option func(e *Engine)

// Engine counts the move sequences in which the hunter eliminates every prey
// before any of them escapes. An Engine runs one Count at a time.
type Engine struct {
	goroutines int
	shuffle    bool
	seed       uint64
	metrics    metrics.Collector
}

// WithGoroutines bounds the number of goroutines working on one count,
// including the caller's.
func WithGoroutines(goroutines int) Option {
	return func(e *Engine) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = metrics.NewCollector()
	}
}

// WithShuffle visits successors in a seeded random order. Counts do not
// depend on the order; this exists to exercise that.
func WithShuffle(seed uint64) Option {
	return func(e *Engine) {
		e.shuffle = true
		e.seed = seed
	}
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		goroutines: meta.GO_ROUTINES,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Count returns the number of distinct sequences of (prey advance, hunter
// jump) turns from state that end with no prey left and none escaped.
func (e *Engine) Count(grid *game.Grid, state game.State) (uint64, metrics.SearchMetric) {
	e.metrics.Start(e.goroutines)

	s := &search{
		grid:    grid,
		memo:    newMemo(e.metrics),
		metrics: e.metrics,
	}
	if e.goroutines > 1 {
		s.slots = semaphore.NewWeighted(int64(e.goroutines - 1))
	}
	if e.shuffle {
		s.order = newShuffler(e.seed)
	}

	log.Debug().Str("state", state.String()).Int("goroutines", e.goroutines).Msg("starting count")
	count := s.solve(state)
	metric := e.metrics.Complete()
	log.Debug().
		Uint64("count", count).
		Int("states", s.memo.size()).
		Dur("duration", metric.Duration).
		Msg("completed count")

	return count, metric
}

// search holds everything one Count call shares between goroutines.
type search struct {
	grid    *game.Grid
	memo    *memo
	slots   *semaphore.Weighted // nil runs every branch inline
	order   *shuffler           // nil keeps generation order
	metrics metrics.Collector
}

func (s *search) solve(state game.State) uint64 {
	if state.Done() {
		s.metrics.AddCompletion()
		return 1
	}
	return s.memo.resolve(state, s.expand)
}

func (s *search) expand(state game.State) uint64 {
	s.metrics.AddExpansion()
	children := s.successors(state)
	if s.order != nil {
		s.order.shuffle(len(children), func(i, j int) {
			children[i], children[j] = children[j], children[i]
		})
	}
	return s.sum(children)
}

// successors pairs every legal prey advance with every hunter jump. When no
// prey can advance, the hunter jumps alone. Escaping advances end their
// branch and produce no successor.
func (s *search) successors(state game.State) []game.State {
	jumps := game.Jumps(s.grid, state.Hunter())
	advances := game.PreyAdvances(s.grid, state)

	if len(advances) == 0 {
		children := make([]game.State, 0, len(jumps))
		for _, jump := range jumps {
			children = append(children, game.Eliminate(s.grid, state.WithHunter(jump)))
		}
		return children
	}

	children := make([]game.State, 0, len(advances)*len(jumps))
	for _, advance := range advances {
		if advance.Escapes {
			s.metrics.AddEscape()
			continue
		}
		moved := state.Advance(advance.Index)
		for _, jump := range jumps {
			children = append(children, game.Eliminate(s.grid, moved.WithHunter(jump)))
		}
	}
	return children
}

// sum solves the children, handing each to a new goroutine while slots are
// free and solving it inline otherwise.
func (s *search) sum(children []game.State) uint64 {
	var total atomic.Uint64
	var g errgroup.Group
	for _, child := range children {
		if s.slots != nil && s.slots.TryAcquire(1) {
			s.metrics.AddSpawn()
			g.Go(func() error {
				defer s.slots.Release(1)
				total.Add(s.solve(child))
				return nil
			})
			continue
		}
		total.Add(s.solve(child))
	}
	_ = g.Wait()
	return total.Load()
}

type shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newShuffler(seed uint64) *shuffler {
	return &shuffler{rng: rand.New(rand.NewSource(seed))}
}

func (s *shuffler) shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(n, swap)
}
