package main

import (
	"fmt"
	"os"
	"time"

	"hunt/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	sweepHops   int
	simHops     int
	simRounds   int
	watchHops   int
	watchRounds int
	goroutines  int
	seed        uint64
	configPath  string
	expName     string
	expRoot     string
	repeats     int
)

var rootCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Simulate and count knight-hunter pursuits",
	Long: `hunt reads a board with one hunter (D), prey (S) and safe cells (#)
and either simulates it round by round or counts every move sequence in
which the hunter eliminates all prey before any escape.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep <board>",
	Short: "Count standing prey within the hunter's hop budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runSweep,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <board>",
	Short: "Play a fixed number of rounds and report eliminations",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

var countCmd = &cobra.Command{
	Use:   "count <board>",
	Short: "Count the move sequences that eliminate every prey",
	Long: `Counts exhaustively the distinct sequences of (prey advance, hunter jump)
turns that end with no prey left and none escaped.

Example:
  hunt count boards/small.txt --goroutines 16`,
	Args: cobra.ExactArgs(1),
	RunE: runCount,
}

var watchCmd = &cobra.Command{
	Use:   "watch <board>",
	Short: "Step through a simulation in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var experimentCmd = &cobra.Command{
	Use:   "experiment <board>",
	Short: "Time the count of a board across goroutine settings",
	Long: `Counts the board once per engine config and repeat, checks that every
run agrees, and writes engine_configs.csv, runs.csv and runs.parquet under
<out>/<name>/<timestamp>/.`,
	Args: cobra.ExactArgs(1),
	RunE: runExperiment,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every scenario of a YAML config",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	sweepCmd.Flags().IntVar(&sweepHops, "hops", meta.SWEEP_HOPS, "Consecutive jumps the hunter may take")

	simulateCmd.Flags().IntVar(&simHops, "hops", meta.SIMULATE_HOPS, "Jumps the hunter may take per round")
	simulateCmd.Flags().IntVar(&simRounds, "rounds", meta.ROUNDS, "Rounds to simulate (0 uses the default)")

	countCmd.Flags().IntVarP(&goroutines, "goroutines", "g", meta.GO_ROUTINES, "Goroutines working on the count")
	countCmd.Flags().Uint64Var(&seed, "seed", 0, "Shuffle enumeration order with this seed (0 keeps generation order)")

	watchCmd.Flags().IntVar(&watchHops, "hops", meta.SIMULATE_HOPS, "Jumps the hunter may take per round")
	watchCmd.Flags().IntVar(&watchRounds, "rounds", meta.ROUNDS, "Rounds before the viewer stops stepping (0 for no limit)")

	experimentCmd.Flags().StringVar(&expName, "name", "speedup", "Experiment name")
	experimentCmd.Flags().StringVar(&expRoot, "out", "experiments", "Output directory root")
	experimentCmd.Flags().IntVar(&repeats, "repeats", 3, "Repeats per engine config")

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Scenario config file (required)")
	runCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(experimentCmd)
	rootCmd.AddCommand(runCmd)
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
