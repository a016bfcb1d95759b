// Package viewer steps a simulation round by round in the terminal.
package viewer

import (
	"fmt"
	"strings"

	"hunt/game"
	"hunt/simulator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	hunterStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	preyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	safeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle   = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

type model struct {
	sim    *simulator.Simulator
	start  game.State
	rounds int // 0 steps without limit
	frame  simulator.Frame
}

func New(sim *simulator.Simulator, start game.State, rounds int) tea.Model {
	return model{
		sim:    sim,
		start:  start,
		rounds: rounds,
		frame:  sim.Start(start),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "right", "l":
			if !m.finished() {
				m.frame = m.sim.Step(m.frame)
			}
		case "r":
			m.frame = m.sim.Start(m.start)
		}
	}
	return m, nil
}

func (m model) finished() bool {
	if len(m.frame.Prey) == 0 {
		return true
	}
	return m.rounds > 0 && m.frame.Round >= m.rounds
}

func (m model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("round %d", m.frame.Round)
	if m.rounds > 0 {
		title += fmt.Sprintf(" of %d", m.rounds)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.board())
	fmt.Fprintf(&b, "\neliminated %d  escaped %d  remaining %d  caught last round %d\n",
		m.frame.Eliminated, m.frame.Escaped, len(m.frame.Prey), m.frame.Caught)

	help := "space/→ step • r reset • q quit"
	if m.finished() {
		help = "finished • r reset • q quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m model) board() string {
	grid := m.sim.Grid()
	frontier := game.NewCellSet(m.frame.Frontier...)
	prey := game.NewCellSet(m.frame.Prey...)

	var b strings.Builder
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			c := game.Cell{Row: row, Col: col}
			b.WriteString(styled(glyph(grid, frontier, prey, c)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// glyph picks the board symbol for c. The frontier wins over prey, prey over
// safe cells.
func glyph(grid *game.Grid, frontier, prey game.CellSet, c game.Cell) rune {
	switch {
	case frontier.Contains(c):
		return game.HunterSymbol
	case prey.Contains(c):
		return game.PreySymbol
	case grid.IsSafe(c):
		return game.SafeSymbol
	default:
		return game.EmptySymbol
	}
}

func styled(r rune) string {
	switch r {
	case game.HunterSymbol:
		return hunterStyle.Render(string(r))
	case game.PreySymbol:
		return preyStyle.Render(string(r))
	case game.SafeSymbol:
		return safeStyle.Render(string(r))
	default:
		return string(r)
	}
}
