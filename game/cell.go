package game

import (
	"fmt"
	"slices"
)

// Cell is a board coordinate. Row 0 is the top row; prey walk towards higher rows.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Cell) offset(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// compareCells orders cells row-major, which is the canonical prey order.
func compareCells(a, b Cell) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// jumpOffsets are the hunter's eight knight jumps.
var jumpOffsets = [8]Cell{
	{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2},
	{Row: -1, Col: 2}, {Row: -1, Col: -2}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	set := make(CellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

func (s CellSet) Contains(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in canonical order.
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, compareCells)
	return cells
}
