package game

// Advance is one prey's single-row move.
type Advance struct {
	Index   int // position of the prey in State.Prey()
	From    Cell
	To      Cell
	Escapes bool // To lies past the last row
}

// PreyAdvances lists the legal advance of every live prey. A prey never steps
// onto the hunter's cell unless that cell is safe, so such an advance is left
// out. Advances that leave the board are legal and flagged with Escapes.
func PreyAdvances(g *Grid, s State) []Advance {
	advances := make([]Advance, 0, len(s.prey))
	for i, from := range s.prey {
		to := from.offset(1, 0)
		if to == s.hunter && !g.IsSafe(to) {
			continue
		}
		advances = append(advances, Advance{
			Index:   i,
			From:    from,
			To:      to,
			Escapes: to.Row >= g.Height,
		})
	}
	return advances
}

// Jumps returns the on-board knight jumps from a cell.
func Jumps(g *Grid, from Cell) []Cell {
	jumps := make([]Cell, 0, len(jumpOffsets))
	for _, o := range jumpOffsets {
		to := from.offset(o.Row, o.Col)
		if g.InBounds(to) {
			jumps = append(jumps, to)
		}
	}
	return jumps
}

// Reach returns every cell the hunter can stand on after 1 to hops jumps
// from any frontier cell. A frontier cell is included only when some jump
// sequence returns to it.
func Reach(g *Grid, frontier []Cell, hops int) CellSet {
	reached := NewCellSet()
	layer := frontier
	for hop := 0; hop < hops && len(layer) > 0; hop++ {
		var next []Cell
		for _, from := range layer {
			for _, to := range Jumps(g, from) {
				if reached.Contains(to) {
					continue
				}
				reached.Add(to)
				next = append(next, to)
			}
		}
		layer = next
	}
	return reached
}

// Eliminate removes the prey standing on the hunter's cell unless it is safe.
func Eliminate(g *Grid, s State) State {
	g.mustContain(s.hunter)
	if g.IsSafe(s.hunter) {
		return s
	}
	return s.without(s.hunter)
}

// Catch splits prey into those left standing and the number eliminated on
// unsafe cells of reach.
func Catch(g *Grid, prey []Cell, reach CellSet) (survivors []Cell, caught int) {
	survivors = make([]Cell, 0, len(prey))
	for _, c := range prey {
		if reach.Contains(c) && !g.IsSafe(c) {
			caught++
			continue
		}
		survivors = append(survivors, c)
	}
	return survivors, caught
}

// AdvanceAll moves every prey one row forward at once. Prey that leave the
// board are dropped and counted as escaped.
func AdvanceAll(g *Grid, prey []Cell) (moved []Cell, escaped int) {
	moved = make([]Cell, 0, len(prey))
	for _, c := range prey {
		to := c.offset(1, 0)
		if to.Row >= g.Height {
			escaped++
			continue
		}
		moved = append(moved, to)
	}
	return moved, escaped
}
