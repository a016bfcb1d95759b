package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
)

// State is one snapshot of the game: where the live prey stand and where the
// hunter is. States are values; every transition returns a new State and the
// prey slice is never written after construction, so copies may share it.
//
// The prey are kept sorted row-major with duplicates collapsed, which makes
// two states that hold the same prey set equal regardless of the order in
// which their prey moved.
type State struct {
	hunter Cell
	prey   []Cell
}

// NewState canonicalizes the prey positions into a State.
func NewState(hunter Cell, prey ...Cell) State {
	return State{hunter: hunter, prey: canonical(slices.Clone(prey))}
}

func canonical(prey []Cell) []Cell {
	slices.SortFunc(prey, compareCells)
	return slices.Compact(prey)
}

func (s State) Hunter() Cell {
	return s.hunter
}

// Prey returns a copy of the live prey in canonical order.
func (s State) Prey() []Cell {
	return slices.Clone(s.prey)
}

func (s State) NumPrey() int {
	return len(s.prey)
}

// Done reports whether every prey has been removed from play.
func (s State) Done() bool {
	return len(s.prey) == 0
}

func (s State) WithHunter(c Cell) State {
	return State{hunter: c, prey: s.prey}
}

// Advance moves the i-th prey (in canonical order) one row forward. The
// caller is responsible for not advancing a prey off the board.
func (s State) Advance(i int) State {
	prey := slices.Clone(s.prey)
	prey[i] = prey[i].offset(1, 0)
	return State{hunter: s.hunter, prey: canonical(prey)}
}

// without drops the prey standing on c, if any.
func (s State) without(c Cell) State {
	i, found := slices.BinarySearchFunc(s.prey, c, compareCells)
	if !found {
		return s
	}
	return State{hunter: s.hunter, prey: slices.Delete(slices.Clone(s.prey), i, i+1)}
}

func (s State) Equal(other State) bool {
	return s.hunter == other.hunter && slices.Equal(s.prey, other.prey)
}

// Key is the canonical encoding of a State. Equal states have equal keys.
type Key string

func (s State) Key() Key {
	buf := make([]byte, 0, 4+4*len(s.prey))
	buf = binary.AppendUvarint(buf, uint64(s.hunter.Row))
	buf = binary.AppendUvarint(buf, uint64(s.hunter.Col))
	buf = binary.AppendUvarint(buf, uint64(len(s.prey)))
	for _, c := range s.prey {
		buf = binary.AppendUvarint(buf, uint64(c.Row))
		buf = binary.AppendUvarint(buf, uint64(c.Col))
	}
	return Key(buf)
}

func (s State) Hash() StateHash {
	return s.Key().Hash()
}

func (k Key) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(k))
	return StateHash(hasher.Sum64())
}

func (s State) String() string {
	parts := make([]string, len(s.prey))
	for i, c := range s.prey {
		parts[i] = c.String()
	}
	return fmt.Sprintf("hunter=%s prey=[%s]", s.hunter, strings.Join(parts, " "))
}
