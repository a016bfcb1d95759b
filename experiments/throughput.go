package experiments

import (
	"slices"
	"time"

	"hunt/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Throughput summarizes the repeats of one engine config.
type Throughput struct {
	Config       int32
	Goroutines   int32
	Runs         int
	MeanDuration time.Duration
	StatesPerSec float64
	Speedup      float64 // relative to the config with the fewest goroutines
}

// SummarizeThroughput groups records by config, in the order configs first
// appear.
func SummarizeThroughput(records []metrics.RunRecord) []Throughput {
	type acc struct {
		goroutines int32
		runs       int
		duration   int64
		expanded   int64
	}
	order := []int32{}
	byConfig := map[int32]*acc{}
	for _, r := range records {
		a, ok := byConfig[r.Config]
		if !ok {
			a = &acc{goroutines: r.Goroutines}
			byConfig[r.Config] = a
			order = append(order, r.Config)
		}
		a.runs++
		a.duration += r.DurationNs
		a.expanded += r.Expanded
	}

	rows := make([]Throughput, 0, len(order))
	for _, id := range order {
		a := byConfig[id]
		row := Throughput{
			Config:       id,
			Goroutines:   a.goroutines,
			Runs:         a.runs,
			MeanDuration: time.Duration(a.duration / int64(a.runs)),
		}
		if a.duration > 0 {
			row.StatesPerSec = float64(a.expanded) / time.Duration(a.duration).Seconds()
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return rows
	}

	base := slices.MinFunc(rows, func(a, b Throughput) int {
		return int(a.Goroutines - b.Goroutines)
	})
	for i := range rows {
		if rows[i].MeanDuration > 0 {
			rows[i].Speedup = float64(base.MeanDuration) / float64(rows[i].MeanDuration)
		}
	}
	return rows
}

func logThroughput(rows []Throughput) {
	for _, row := range rows {
		log.Info().
			Int32("config", row.Config).
			Int32("goroutines", row.Goroutines).
			Dur("mean", row.MeanDuration).
			Float64("states_per_sec", row.StatesPerSec).
			Float64("speedup", row.Speedup).
			Msg("throughput")
	}
}
