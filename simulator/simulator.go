// Package simulator advances a board round by round without branching: the
// hunter is treated as standing on every cell it could have reached.
package simulator

import (
	"hunt/game"
	"hunt/meta"

	"github.com/rs/zerolog/log"
)

type Option func(s *Simulator)

// WithHops sets how many consecutive jumps the hunter may take per round.
func WithHops(hops int) Option {
	return func(s *Simulator) {
		if hops > 0 {
			s.hops = hops
		}
	}
}

type Simulator struct {
	grid *game.Grid
	hops int
}

func New(grid *game.Grid, options ...Option) *Simulator {
	s := &Simulator{
		grid: grid,
		hops: meta.SIMULATE_HOPS,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Simulator) Grid() *game.Grid {
	return s.grid
}

// Frame is the simulation after some number of rounds.
type Frame struct {
	Round      int
	Frontier   []game.Cell // cells the hunter may occupy, canonical order
	Prey       []game.Cell
	Eliminated int // cumulative
	Escaped    int // cumulative
	Caught     int // eliminated in the last round
}

func (s *Simulator) Start(state game.State) Frame {
	return Frame{
		Frontier: []game.Cell{state.Hunter()},
		Prey:     state.Prey(),
	}
}

// Step plays one round: the hunter spreads over its reach, prey on reachable
// unsafe cells are caught, the rest advance one row, and those that land on
// reachable unsafe cells are caught too. The reach becomes the next frontier.
func (s *Simulator) Step(f Frame) Frame {
	reach := game.Reach(s.grid, f.Frontier, s.hops)

	prey, before := game.Catch(s.grid, f.Prey, reach)
	prey, escaped := game.AdvanceAll(s.grid, prey)
	prey, after := game.Catch(s.grid, prey, reach)

	next := Frame{
		Round:      f.Round + 1,
		Frontier:   reach.Sorted(),
		Prey:       prey,
		Eliminated: f.Eliminated + before + after,
		Escaped:    f.Escaped + escaped,
		Caught:     before + after,
	}
	log.Debug().
		Int("round", next.Round).
		Int("reach", len(next.Frontier)).
		Int("caught", next.Caught).
		Int("escaped", escaped).
		Int("remaining", len(prey)).
		Msg("simulated round")
	return next
}

type Result struct {
	Eliminated int
	Escaped    int
	Survivors  int
	PerRound   []int // eliminations in each round
}

// Run plays a fixed number of rounds and returns the elimination totals.
// A non-positive round count plays nothing.
func (s *Simulator) Run(state game.State, rounds int) Result {
	frame := s.Start(state)
	perRound := make([]int, 0, max(rounds, 0))
	for i := 0; i < rounds; i++ {
		frame = s.Step(frame)
		perRound = append(perRound, frame.Caught)
	}
	return Result{
		Eliminated: frame.Eliminated,
		Escaped:    frame.Escaped,
		Survivors:  len(frame.Prey),
		PerRound:   perRound,
	}
}

// Sweep counts the standing prey on unsafe cells the hunter can reach from
// its starting cell within hops jumps.
func Sweep(grid *game.Grid, state game.State, hops int) int {
	reach := game.Reach(grid, []game.Cell{state.Hunter()}, hops)
	_, caught := game.Catch(grid, state.Prey(), reach)
	return caught
}
