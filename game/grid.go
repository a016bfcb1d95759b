package game

import (
	"errors"
	"fmt"
)

var ErrInvalidGrid = errors.New("invalid grid")

// Grid is the static board: its dimensions and the cells where prey cannot
// be eliminated. A Grid is never modified after NewGrid returns.
type Grid struct {
	Width  int
	Height int
	safe   CellSet
}

// NewGrid builds a width x height board. Every safe cell must lie on the board.
func NewGrid(width, height int, safe ...Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	g := &Grid{Width: width, Height: height, safe: NewCellSet()}
	for _, c := range safe {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: safe cell %s outside %dx%d board", ErrInvalidGrid, c, width, height)
		}
		g.safe.Add(c)
	}
	return g, nil
}

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

func (g *Grid) IsSafe(c Cell) bool {
	return g.safe.Contains(c)
}

// SafeCells returns the safe cells in canonical order.
func (g *Grid) SafeCells() []Cell {
	return g.safe.Sorted()
}

// mustContain panics when a move generator produced an off-board cell.
func (g *Grid) mustContain(c Cell) {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("cell %s outside %dx%d board", c, g.Width, g.Height))
	}
}
