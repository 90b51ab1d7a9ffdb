package experiments

import (
	"fmt"
	"time"

	"skirmish/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Throughput is the mean search effort of one decision at a given budget.
type Throughput struct {
	Duration   time.Duration
	Decisions  int
	Episodes   float64
	Expansions float64
	MaxDepth   float64
	Stalls     float64
}

// RunThroughput decides cfg.Games times from the starting position of the
// configured map for every budget and averages what the searches achieved.
func RunThroughput(cfg Config, durations []time.Duration) ([]Throughput, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := loadMap(cfg.Map)
	if err != nil {
		return nil, err
	}
	state, err := m.NewState()
	if err != nil {
		return nil, err
	}

	log.Info().Msg("starting throughput experiment...")

	results := make([]Throughput, 0, len(durations))
	for _, duration := range durations {
		agent := cfg.Agent
		agent.Duration = duration
		bot := createMCTS(agent, cfg.Seed)

		searchMetrics := make([]metrics.SearchMetric, 0, cfg.Games)
		for i := 0; i < cfg.Games; i++ {
			_, metric, err := bot.DecideWithMetrics(i%2, state.Clone())
			if err != nil {
				return nil, fmt.Errorf("decision %d at %s: %w", i+1, duration, err)
			}
			searchMetrics = append(searchMetrics, metric)
		}

		result := summarise(duration, searchMetrics)
		log.Info().Msgf("completed %s budget: %.1f episodes per decision", duration, result.Episodes)
		results = append(results, result)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}

func summarise(duration time.Duration, searchMetrics []metrics.SearchMetric) Throughput {
	t := Throughput{Duration: duration, Decisions: len(searchMetrics)}
	if len(searchMetrics) == 0 {
		return t
	}
	for _, m := range searchMetrics {
		t.Episodes += float64(m.Episodes)
		t.Expansions += float64(m.Expansions)
		t.MaxDepth += float64(m.MaxDepth)
		t.Stalls += float64(m.Stalls)
	}
	n := float64(len(searchMetrics))
	t.Episodes /= n
	t.Expansions /= n
	t.MaxDepth /= n
	t.Stalls /= n
	return t
}
