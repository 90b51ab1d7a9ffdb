package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"skirmish/engine"
	"skirmish/experiments"
	"skirmish/game"
	"skirmish/meta"
	"skirmish/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config, runs an experiment when set")
	mapPath := flag.String("map", "", "YAML map file, the built-in 8x8 map when empty")
	games := flag.Int("games", 0, "Number of experiment games, overrides the config")
	duration := flag.Duration("duration", meta.SimulationTime, "Search budget per decision")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	seed := flag.Uint64("seed", 1, "Random seed")
	throughput := flag.Bool("throughput", false, "Measure search effort per decision instead of playing")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case *throughput:
		cfg, err := loadConfig(*configPath, *mapPath, *games, *seed, set)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		results, err := experiments.RunThroughput(cfg, []time.Duration{
			10 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		for _, r := range results {
			fmt.Printf("%-6s episodes=%.1f expansions=%.1f depth=%.1f stalls=%.1f\n", r.Duration, r.Episodes, r.Expansions, r.MaxDepth, r.Stalls)
		}
	case *configPath != "" || *games > 0:
		cfg, err := loadConfig(*configPath, *mapPath, *games, *seed, set)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		if set["duration"] {
			cfg.Agent.Duration = *duration
		}
		summary, err := experiments.Run(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		fmt.Printf("games=%d wins=%d losses=%d draws=%d results=%s\n",
			summary.Games, summary.Wins, summary.Losses, summary.Draws, summary.Dir)
	default:
		if err := showcase(*mapPath, *duration, *seed); err != nil {
			log.Fatal().Err(err).Msg("game failed")
		}
	}
}

func loadConfig(path, mapPath string, games int, seed uint64, set map[string]bool) (experiments.Config, error) {
	cfg := experiments.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = experiments.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if mapPath != "" {
		cfg.Map = mapPath
	}
	if games > 0 {
		cfg.Games = games
	}
	if set["seed"] {
		cfg.Seed = seed
	}
	return cfg, nil
}

// showcase plays one game of the search bot against the baseline and prints
// the final board.
func showcase(mapPath string, duration time.Duration, seed uint64) error {
	m := game.DefaultMap()
	if mapPath != "" {
		var err error
		if m, err = game.LoadMap(mapPath); err != nil {
			return err
		}
	}
	state, err := m.NewState()
	if err != nil {
		return err
	}

	bot := searcher.NewMCTS(searcher.WithDuration(duration), searcher.WithSeed(seed))
	baseline := engine.PolicyAdapter{Policy: game.NewRandomBiased(seed + 1)}
	e := engine.NewLocal(state, bot, baseline)

	winner, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}

	output := termenv.NewOutput(os.Stdout)
	if err := render(output, output.EnvColorProfile(), e.State()); err != nil {
		return err
	}
	fmt.Printf("winner=%d ticks=%d moves=%d duration=%s\n", winner, gameMetric.Ticks, gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}
