package engine

import (
	"fmt"
	"time"

	"hunt/config"
	"hunt/experiments/metrics"
)

// Outcome is the result of running one scenario. Only the fields of the
// scenario's mode are set.
type Outcome struct {
	Scenario string
	Mode     config.Mode
	Duration time.Duration

	// sweep and simulate
	Eliminated int
	Escaped    int
	Survivors  int
	PerRound   []int

	// count
	Count  uint64
	Search metrics.SearchMetric
}

func (o Outcome) String() string {
	switch o.Mode {
	case config.ModeCount:
		return fmt.Sprintf("%s: %d sequences (%d states expanded, %s)", o.Scenario, o.Count, o.Search.Expanded, o.Duration)
	case config.ModeSimulate:
		return fmt.Sprintf("%s: %d eliminated, %d escaped, %d remaining after %d rounds", o.Scenario, o.Eliminated, o.Escaped, o.Survivors, len(o.PerRound))
	default:
		return fmt.Sprintf("%s: %d eliminated", o.Scenario, o.Eliminated)
	}
}

type Engine interface {
	// Run plays one scenario to completion
	Run(scenario config.Scenario) (Outcome, error)
}
