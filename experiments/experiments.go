package experiments

import (
	"fmt"

	"skirmish/engine"
	"skirmish/experiments/metrics"
	"skirmish/game"
	"skirmish/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	baselineID = 0
	botID      = 1
	// baselineSeedOffset keeps the baseline's stream apart from the bot's
	baselineSeedOffset = 1 << 32
)

// Summary counts game outcomes from the bot's side.
type Summary struct {
	Games  int
	Wins   int
	Losses int
	Draws  int
	Dir    string // Where results were written, if anywhere
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays cfg.Games games of the bot against the random-biased baseline,
// alternating sides, and writes the records when cfg.Output is set.
func Run(cfg Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	m, err := loadMap(cfg.Map)
	if err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("starting %s experiment with %d games...", cfg.Name, cfg.Games)

	results := make([]gameResult, cfg.Games)
	g := errgroup.Group{}
	g.SetLimit(cfg.Parallel)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			result, err := runGame(cfg, m, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			log.Info().Msgf("completed game %d of %d with winner: %d", i+1, cfg.Games, result.record.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	summary := Summary{Games: cfg.Games}
	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		switch r.record.Winner {
		case r.record.BotPlayer:
			summary.Wins++
		case game.NoWinner:
			summary.Draws++
		default:
			summary.Losses++
		}
		gameRecords = append(gameRecords, r.record)
		moveRecords = append(moveRecords, r.moves...)
	}

	if cfg.Output == "" {
		return summary, nil
	}
	dir, err := store(cfg, gameRecords, moveRecords)
	if err != nil {
		return summary, err
	}
	summary.Dir = dir
	return summary, nil
}

// runGame executes a single game between the bot and the baseline
func runGame(cfg Config, m *game.Map, i int) (gameResult, error) {
	state, err := m.NewState()
	if err != nil {
		return gameResult{}, err
	}
	state.SetMaxCycles(cfg.MaxCycles)

	botPlayer := i % 2
	seed := cfg.Seed + uint64(i)
	baseline := engine.PolicyAdapter{Policy: game.NewRandomBiased(seed + baselineSeedOffset)}
	agents := []engine.Agent{baseline, baseline}
	agents[botPlayer] = createMCTS(cfg.Agent, seed)

	winner, gameMetric, moveMetrics, err := engine.NewLocal(state, agents...).Run()
	if err != nil {
		return gameResult{}, err
	}
	log.Debug().Int("game", i+1).Int("bot", botPlayer).Int("winner", winner).Int("ticks", gameMetric.Ticks).Msg("game-complete")

	result := gameResult{
		record: metrics.GameRecord{
			ID:         i + 1,
			Bot:        botID,
			Baseline:   baselineID,
			BotPlayer:  botPlayer,
			GameMetric: gameMetric,
		},
	}
	for _, mm := range moveMetrics {
		result.moves = append(result.moves, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
	}
	return result, nil
}

func createMCTS(agent Agent, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithDuration(agent.Duration),
		searcher.WithMaxDepth(agent.MaxDepth),
		searcher.WithPlayouts(agent.Playouts),
		searcher.WithExploration(agent.Exploration),
		searcher.WithSeed(seed),
	}
	if agent.Averaged {
		options = append(options, searcher.WithAveragedPlayouts())
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}

func agentConfigs(cfg Config) []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: baselineID, Name: "random_biased"},
		{
			ID:       botID,
			Name:     "mcts",
			Duration: cfg.Agent.Duration,
			MaxDepth: cfg.Agent.MaxDepth,
			Playouts: cfg.Agent.Playouts,
			Averaged: cfg.Agent.Averaged,
		},
	}
}

func store(cfg Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(cfg.Output)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(agentConfigs(cfg)); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

func loadMap(path string) (*game.Map, error) {
	if path == "" {
		return game.DefaultMap(), nil
	}
	return game.LoadMap(path)
}
