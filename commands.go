package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"hunt/config"
	"hunt/engine"
	"hunt/experiments"
	"hunt/game"
	"hunt/simulator"
	"hunt/viewer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// scenarioFor names a command line scenario after its board file.
func scenarioFor(mode config.Mode, board string) config.Scenario {
	return config.Scenario{
		Name:  strings.TrimSuffix(filepath.Base(board), filepath.Ext(board)),
		Board: board,
		Mode:  mode,
	}
}

func runScenario(cmd *cobra.Command, scenario config.Scenario) error {
	outcome, err := engine.NewLocalEngine(config.Default()).Run(scenario)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcome)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	scenario := scenarioFor(config.ModeSweep, args[0])
	scenario.Hops = sweepHops
	return runScenario(cmd, scenario)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	scenario := scenarioFor(config.ModeSimulate, args[0])
	scenario.Hops = simHops
	scenario.Rounds = simRounds
	return runScenario(cmd, scenario)
}

func runCount(cmd *cobra.Command, args []string) error {
	scenario := scenarioFor(config.ModeCount, args[0])
	scenario.Goroutines = goroutines
	scenario.Seed = seed
	return runScenario(cmd, scenario)
}

func runWatch(cmd *cobra.Command, args []string) error {
	board, err := game.LoadBoard(args[0])
	if err != nil {
		return err
	}

	// Logs would draw over the viewer.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	sim := simulator.New(board.Grid, simulator.WithHops(watchHops))
	_, err = tea.NewProgram(viewer.New(sim, board.Start, watchRounds), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	board, err := game.LoadBoard(args[0])
	if err != nil {
		return err
	}

	exp := experiments.Experiment{
		Name:    expName,
		Board:   filepath.Base(args[0]),
		Root:    expRoot,
		Repeats: repeats,
	}
	records, err := experiments.RunSpeedup(exp, board)
	if err != nil {
		return err
	}

	for _, row := range experiments.SummarizeThroughput(records) {
		fmt.Fprintf(cmd.OutOrStdout(), "config %d (%d goroutines): mean %s, %.0f states/s, speedup %.2fx\n",
			row.Config, row.Goroutines, row.MeanDuration, row.StatesPerSec, row.Speedup)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	if !verbose {
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}
	log.Info().Msgf("loaded %d scenarios from %s", len(cfg.Scenarios), configPath)

	outcomes, err := engine.RunAll(engine.NewLocalEngine(cfg), cfg)
	for _, outcome := range outcomes {
		fmt.Fprintln(cmd.OutOrStdout(), outcome)
	}
	return err
}
