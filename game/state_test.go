package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStateCanonical(t *testing.T) {
	t.Run("prey order does not matter", func(t *testing.T) {
		a := NewState(Cell{2, 2}, Cell{0, 1}, Cell{3, 0}, Cell{0, 0})
		b := NewState(Cell{2, 2}, Cell{3, 0}, Cell{0, 0}, Cell{0, 1})

		require.True(t, a.Equal(b), "States with the same prey set should be equal")
		require.Equal(t, a.Key(), b.Key(), "Equal states should share a key")
		require.Equal(t, a.Hash(), b.Hash(), "Equal states should share a hash")
		require.Equal(t, []Cell{{0, 0}, {0, 1}, {3, 0}}, a.Prey(), "Prey should be kept row-major")
	})

	t.Run("duplicate prey collapse", func(t *testing.T) {
		s := NewState(Cell{0, 0}, Cell{1, 1}, Cell{1, 1})

		require.Equal(t, 1, s.NumPrey())
	})

	t.Run("hunter cell is part of identity", func(t *testing.T) {
		a := NewState(Cell{0, 0}, Cell{1, 1})
		b := NewState(Cell{0, 1}, Cell{1, 1})

		require.False(t, a.Equal(b))
		require.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("caller slice is not retained", func(t *testing.T) {
		prey := []Cell{{1, 1}, {0, 0}}
		s := NewState(Cell{2, 2}, prey...)
		prey[0] = Cell{3, 3}

		require.Equal(t, []Cell{{0, 0}, {1, 1}}, s.Prey())
	})
}

func TestStateTransitions(t *testing.T) {
	t.Run("advance returns a new state", func(t *testing.T) {
		s := NewState(Cell{4, 4}, Cell{0, 0}, Cell{0, 2})

		next := s.Advance(0)

		require.Equal(t, []Cell{{0, 2}, {1, 0}}, next.Prey(), "Advanced prey should be re-sorted")
		require.Equal(t, []Cell{{0, 0}, {0, 2}}, s.Prey(), "Original state should not change")
	})

	t.Run("different interleavings reach the same key", func(t *testing.T) {
		s := NewState(Cell{4, 4}, Cell{0, 0}, Cell{0, 2})

		// Advance prey (0,0) then (0,2), versus (0,2) then (0,0).
		first := s.Advance(0).Advance(0)
		second := s.Advance(1).Advance(0)

		require.True(t, first.Equal(second))
		require.Equal(t, first.Key(), second.Key())
	})

	t.Run("advancing onto another prey collapses them", func(t *testing.T) {
		s := NewState(Cell{4, 4}, Cell{0, 0}, Cell{1, 0})

		require.Equal(t, []Cell{{1, 0}}, s.Advance(0).Prey())
	})

	t.Run("with hunter keeps prey", func(t *testing.T) {
		s := NewState(Cell{0, 0}, Cell{2, 2})

		moved := s.WithHunter(Cell{1, 2})

		require.Equal(t, Cell{1, 2}, moved.Hunter())
		require.Equal(t, s.Prey(), moved.Prey())
		require.Equal(t, Cell{0, 0}, s.Hunter())
	})

	t.Run("done", func(t *testing.T) {
		require.True(t, NewState(Cell{0, 0}).Done())
		require.False(t, NewState(Cell{0, 0}, Cell{1, 1}).Done())
	})
}

func TestStateString(t *testing.T) {
	s := NewState(Cell{2, 2}, Cell{1, 0}, Cell{0, 1})

	require.Equal(t, "hunter=(2,2) prey=[(0,1) (1,0)]", s.String())
}
