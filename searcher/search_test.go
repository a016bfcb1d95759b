package searcher

import (
	"fmt"
	"slices"
	"testing"

	"hunt/game"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type board struct {
	name   string
	width  int
	height int
	safe   []game.Cell
	hunter game.Cell
	prey   []game.Cell
}

func (b board) build(t *testing.T) (*game.Grid, game.State) {
	t.Helper()
	g, err := game.NewGrid(b.width, b.height, b.safe...)
	require.NoError(t, err)
	return g, game.NewState(b.hunter, b.prey...)
}

func cell(row, col int) game.Cell {
	return game.Cell{Row: row, Col: col}
}

var boards = []board{
	{
		name:  "single prey blocked by the hunter",
		width: 3, height: 3,
		hunter: cell(1, 0),
		prey:   []game.Cell{cell(0, 0)},
	},
	{
		name:  "two prey with a safe cell",
		width: 4, height: 3,
		safe:   []game.Cell{cell(1, 1)},
		hunter: cell(2, 3),
		prey:   []game.Cell{cell(0, 0), cell(0, 2)},
	},
	{
		name:  "two prey in a wide strip",
		width: 5, height: 3,
		safe:   []game.Cell{cell(2, 2)},
		hunter: cell(0, 4),
		prey:   []game.Cell{cell(0, 1), cell(0, 3)},
	},
	{
		name:  "single prey on a square board",
		width: 4, height: 4,
		hunter: cell(3, 0),
		prey:   []game.Cell{cell(0, 3)},
	},
	{
		name:  "stacked prey in one column",
		width: 4, height: 4,
		safe:   []game.Cell{cell(3, 1)},
		hunter: cell(0, 0),
		prey:   []game.Cell{cell(1, 1), cell(2, 1)},
	},
}

func TestCountTerminal(t *testing.T) {
	for _, size := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("%dx%d board", size, size), func(t *testing.T) {
			g, err := game.NewGrid(size, size)
			require.NoError(t, err)

			count, _ := New().Count(g, game.NewState(cell(0, 0)))

			require.Equal(t, uint64(1), count, "A state with no prey is one finished sequence")
		})
	}
}

func TestCountHandComputed(t *testing.T) {
	t.Run("prey walks into the only jump", func(t *testing.T) {
		g, state := board{width: 3, height: 2, hunter: cell(0, 0), prey: []game.Cell{cell(0, 2)}}.build(t)

		count, _ := New().Count(g, state)

		require.Equal(t, uint64(1), count)
	})

	t.Run("safe landing lets the prey escape", func(t *testing.T) {
		g, state := board{width: 3, height: 2, safe: []game.Cell{cell(1, 2)}, hunter: cell(0, 0), prey: []game.Cell{cell(0, 2)}}.build(t)

		count, _ := New().Count(g, state)

		require.Equal(t, uint64(0), count)
	})

	t.Run("blocked prey make the hunter move alone", func(t *testing.T) {
		// The hunter jumps to (2,2) or (0,2) first. From (2,2) two sequences
		// catch the prey, from (0,2) one does.
		g, state := boards[0].build(t)

		count, _ := New().Count(g, state)

		require.Equal(t, uint64(3), count)
	})

	t.Run("hunter without jumps is a dead branch", func(t *testing.T) {
		g, state := board{width: 1, height: 3, hunter: cell(2, 0), prey: []game.Cell{cell(0, 0)}}.build(t)

		count, _ := New().Count(g, state)

		require.Equal(t, uint64(0), count)
	})
}

func TestCountMatchesExhaustiveRecount(t *testing.T) {
	for _, b := range boards {
		t.Run(b.name, func(t *testing.T) {
			g, state := b.build(t)
			want := recount(b.width, b.height, b.safe, b.hunter, b.prey)

			for _, goroutines := range []int{1, 4, 16} {
				count, _ := New(WithGoroutines(goroutines)).Count(g, state)

				require.Equal(t, want, count, "goroutines=%d", goroutines)
			}
		})
	}
}

func TestCountOrderIndependent(t *testing.T) {
	for _, b := range boards {
		t.Run(b.name, func(t *testing.T) {
			g, state := b.build(t)
			want, _ := New(WithGoroutines(1)).Count(g, state)

			for seed := uint64(1); seed <= 5; seed++ {
				count, _ := New(WithGoroutines(4), WithShuffle(seed)).Count(g, state)

				require.Equal(t, want, count, "seed=%d", seed)
			}
		})
	}
}

func TestCountRepeatable(t *testing.T) {
	g, state := boards[2].build(t)
	engine := New(WithGoroutines(8))

	first, _ := engine.Count(g, state)
	second, _ := engine.Count(g, state)

	require.Equal(t, first, second, "Each count starts from an empty memo")
}

func TestCountMetrics(t *testing.T) {
	t.Run("collected when enabled", func(t *testing.T) {
		g, state := boards[0].build(t)

		count, metric := New(WithGoroutines(2), WithMetrics()).Count(g, state)

		require.Equal(t, uint64(3), count)
		require.Equal(t, 2, metric.Goroutines)
		require.Positive(t, metric.Expanded)
		require.Equal(t, int64(3), metric.Escapes, "Three branches end with the prey leaving the board")
		require.Equal(t, int64(count), metric.Completions, "No state repeats on this board, so every sequence is visited")
	})

	t.Run("empty by default", func(t *testing.T) {
		g, state := boards[0].build(t)

		_, metric := New().Count(g, state)

		require.Zero(t, metric.Expanded)
	})
}

// recount counts sequences straight from the rules with plain recursion: no
// memo, no goroutines and no shared code with the game package.
func recount(width, height int, safe []game.Cell, hunter game.Cell, prey []game.Cell) uint64 {
	isSafe := map[game.Cell]bool{}
	for _, c := range safe {
		isSafe[c] = true
	}
	onBoard := func(c game.Cell) bool {
		return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
	}
	jumps := func(from game.Cell) []game.Cell {
		var out []game.Cell
		for _, d := range [][2]int{{2, 1}, {2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {-2, 1}, {-2, -1}} {
			to := game.Cell{Row: from.Row + d[0], Col: from.Col + d[1]}
			if onBoard(to) {
				out = append(out, to)
			}
		}
		return out
	}
	// land moves the hunter to h and drops prey it catches there.
	land := func(h game.Cell, ps []game.Cell) []game.Cell {
		var out []game.Cell
		for _, p := range ps {
			if p == h && !isSafe[p] {
				continue
			}
			out = append(out, p)
		}
		return out
	}

	var rec func(h game.Cell, ps []game.Cell) uint64
	rec = func(h game.Cell, ps []game.Cell) uint64 {
		if len(ps) == 0 {
			return 1
		}
		var movable []int
		for i, p := range ps {
			to := game.Cell{Row: p.Row + 1, Col: p.Col}
			if to == h && !isSafe[to] {
				continue
			}
			movable = append(movable, i)
		}

		var total uint64
		if len(movable) == 0 {
			for _, j := range jumps(h) {
				total += rec(j, land(j, ps))
			}
			return total
		}
		for _, i := range movable {
			to := game.Cell{Row: ps[i].Row + 1, Col: ps[i].Col}
			if to.Row >= height {
				continue
			}
			var moved []game.Cell
			for k, p := range ps {
				if k == i {
					continue
				}
				if p != to {
					moved = append(moved, p)
				}
			}
			moved = append(moved, to)
			for _, j := range jumps(h) {
				total += rec(j, land(j, moved))
			}
		}
		return total
	}

	return rec(hunter, slices.Clone(prey))
}
