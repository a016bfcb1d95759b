package game

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"hunt/utils"
)

const (
	HunterSymbol = 'D'
	PreySymbol   = 'S'
	SafeSymbol   = '#'
	EmptySymbol  = '.'
)

var (
	ErrEmptyBoard    = errors.New("board has no rows")
	ErrRaggedRows    = errors.New("board rows differ in width")
	ErrUnknownSymbol = errors.New("unknown board symbol")
	ErrNoHunter      = errors.New("board has no hunter")
	ErrManyHunters   = errors.New("board has more than one hunter")
	ErrNoPrey        = errors.New("board has no prey")
)

// Board is a parsed puzzle input: the static grid and the starting state.
type Board struct {
	Grid  *Grid
	Start State
}

// ParseBoard reads one board row per line. Blank lines are ignored.
func ParseBoard(r io.Reader) (*Board, error) {
	lines, err := utils.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return parseLines(lines)
}

func LoadBoard(path string) (*Board, error) {
	lines, err := utils.ReadFileLines(path)
	if err != nil {
		return nil, err
	}
	board, err := parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return board, nil
}

func parseLines(lines []string) (*Board, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyBoard
	}

	width := len(lines[0])
	var hunters, prey, safe []Cell
	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrRaggedRows, row, len(line), width)
		}
		for col, symbol := range []byte(line) {
			c := Cell{Row: row, Col: col}
			switch symbol {
			case HunterSymbol:
				hunters = append(hunters, c)
			case PreySymbol:
				prey = append(prey, c)
			case SafeSymbol:
				safe = append(safe, c)
			case EmptySymbol:
			default:
				return nil, fmt.Errorf("%w: %q at %s", ErrUnknownSymbol, symbol, c)
			}
		}
	}

	switch {
	case len(hunters) == 0:
		return nil, ErrNoHunter
	case len(hunters) > 1:
		return nil, fmt.Errorf("%w: found %d", ErrManyHunters, len(hunters))
	case len(prey) == 0:
		return nil, ErrNoPrey
	}

	grid, err := NewGrid(width, len(lines), safe...)
	if err != nil {
		return nil, err
	}
	return &Board{Grid: grid, Start: NewState(hunters[0], prey...)}, nil
}

// Render draws a state back in the board format. The hunter is drawn over
// prey, and prey over safe cells.
func Render(g *Grid, s State) string {
	prey := NewCellSet(s.prey...)
	var sb strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := Cell{Row: row, Col: col}
			switch {
			case c == s.hunter:
				sb.WriteByte(HunterSymbol)
			case prey.Contains(c):
				sb.WriteByte(PreySymbol)
			case g.IsSafe(c):
				sb.WriteByte(SafeSymbol)
			default:
				sb.WriteByte(EmptySymbol)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
