package experiments

import (
	"errors"
	"fmt"

	"hunt/experiments/metrics"
	"hunt/game"
	"hunt/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const NumRepeats = 3 // Per config

var ErrCountMismatch = errors.New("engine configs disagree on the count")

// SpeedupConfigs count the same board with a growing number of goroutines.
var SpeedupConfigs = []metrics.EngineConfig{
	{ID: 1, Goroutines: 1},
	{ID: 2, Goroutines: 2},
	{ID: 3, Goroutines: 4},
	{ID: 4, Goroutines: 8},
	{ID: 5, Goroutines: 16},
	{ID: 6, Goroutines: 32},
	{ID: 7, Goroutines: 8, Shuffle: true, Seed: 7},
}

type Experiment struct {
	Name    string
	Board   string // label stored with each record
	Root    string // output directory root
	Repeats int
	Configs []metrics.EngineConfig
}

// RunSpeedup counts board once per config and repeat, checks that every run
// agrees on the count, and stores the run records as CSV and parquet.
func RunSpeedup(exp Experiment, board *game.Board) ([]metrics.RunRecord, error) {
	repeats := exp.Repeats
	if repeats <= 0 {
		repeats = NumRepeats
	}
	configs := exp.Configs
	if len(configs) == 0 {
		configs = SpeedupConfigs
	}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	records := []metrics.RunRecord{}
	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(configs), config)

		for i := 0; i < repeats; i++ {
			count, metric := createEngine(config).Count(board.Grid, board.Start)
			records = append(records, metrics.NewRunRecord(uuid.NewString(), exp.Board, config, i+1, count, metric))

			log.Info().Msgf("completed config %d repeat %d of %d with count %d in %s", config.ID, i+1, repeats, count, metric.Duration)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	logThroughput(SummarizeThroughput(records))

	if err := checkAgreement(records); err != nil {
		return records, err
	}
	if err := store(exp, configs, records); err != nil {
		return records, err
	}
	return records, nil
}

func checkAgreement(records []metrics.RunRecord) error {
	for _, record := range records[1:] {
		if record.Count != records[0].Count {
			return fmt.Errorf("%w: config %d counted %d, config %d counted %d",
				ErrCountMismatch, records[0].Config, records[0].Count, record.Config, record.Count)
		}
	}
	return nil
}

func store(exp Experiment, configs []metrics.EngineConfig, records []metrics.RunRecord) error {
	writer, err := metrics.NewWriter(exp.Root, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteEngineConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store engine configs: %w", err)
	}
	log.Info().Msg("stored engine configs")

	err = writer.WriteRunRecords(records)
	if err != nil {
		return fmt.Errorf("failed to write run records: %w", err)
	}

	path, err := writer.WriteRunParquet(records)
	if err != nil {
		return fmt.Errorf("failed to write run parquet: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Str("parquet", path).Msg("stored run records")
	return nil
}

func createEngine(config metrics.EngineConfig) *searcher.Engine {
	options := []searcher.Option{searcher.WithMetrics()}

	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Shuffle {
		options = append(options, searcher.WithShuffle(config.Seed))
	}

	return searcher.New(options...)
}
