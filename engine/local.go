package engine

import (
	"fmt"
	"time"

	"hunt/config"
	"hunt/game"
	"hunt/searcher"
	"hunt/simulator"

	"github.com/rs/zerolog/log"
)

// LocalEngine runs scenarios in process, filling unset budgets from cfg.
type LocalEngine struct {
	cfg *config.Config
}

func NewLocalEngine(cfg *config.Config) *LocalEngine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &LocalEngine{cfg: cfg}
}

func (e *LocalEngine) Run(scenario config.Scenario) (Outcome, error) {
	scenario = e.cfg.WithDefaults(scenario)

	board, err := game.LoadBoard(scenario.Board)
	if err != nil {
		return Outcome{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	log.Info().Msgf("running scenario %s in %s mode", scenario.Name, scenario.Mode)
	return e.play(scenario, board)
}

// play dispatches an already loaded board.
func (e *LocalEngine) play(scenario config.Scenario, board *game.Board) (Outcome, error) {
	outcome := Outcome{Scenario: scenario.Name, Mode: scenario.Mode}
	start := time.Now()

	switch scenario.Mode {
	case config.ModeSweep:
		outcome.Eliminated = simulator.Sweep(board.Grid, board.Start, scenario.Hops)
		outcome.Survivors = board.Start.NumPrey() - outcome.Eliminated
	case config.ModeSimulate:
		sim := simulator.New(board.Grid, simulator.WithHops(scenario.Hops))
		result := sim.Run(board.Start, scenario.Rounds)
		outcome.Eliminated = result.Eliminated
		outcome.Escaped = result.Escaped
		outcome.Survivors = result.Survivors
		outcome.PerRound = result.PerRound
	case config.ModeCount:
		options := []searcher.Option{searcher.WithGoroutines(scenario.Goroutines), searcher.WithMetrics()}
		if scenario.Seed != 0 {
			options = append(options, searcher.WithShuffle(scenario.Seed))
		}
		outcome.Count, outcome.Search = searcher.New(options...).Count(board.Grid, board.Start)
	default:
		return Outcome{}, fmt.Errorf("scenario %s: unknown mode %q", scenario.Name, scenario.Mode)
	}

	outcome.Duration = time.Since(start)
	log.Info().Msgf("completed scenario %s in %s", scenario.Name, outcome.Duration)
	return outcome, nil
}

// RunAll runs every scenario of cfg in order and stops at the first error.
func RunAll(e Engine, cfg *config.Config) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(cfg.Scenarios))
	for i, scenario := range cfg.Scenarios {
		log.Info().Msgf("starting scenario %d of %d", i+1, len(cfg.Scenarios))
		outcome, err := e.Run(scenario)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
