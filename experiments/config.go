package experiments

import (
	"fmt"
	"os"
	"time"

	"skirmish/meta"

	"gopkg.in/yaml.v3"
)

// Config describes a bot versus baseline experiment.
type Config struct {
	Name      string `yaml:"name"`
	Games     int    `yaml:"games"`
	Parallel  int    `yaml:"parallel"`
	Seed      uint64 `yaml:"seed"`
	Map       string `yaml:"map"` // Empty for the default map
	MaxCycles int    `yaml:"max_cycles"`
	Output    string `yaml:"output"` // Empty to skip writing results
	Agent     Agent  `yaml:"agent"`
}

// Agent holds the search budget of the bot.
type Agent struct {
	Duration    time.Duration `yaml:"duration"`
	MaxDepth    int           `yaml:"max_depth"`
	Playouts    int           `yaml:"playouts"`
	Averaged    bool          `yaml:"averaged"`
	Exploration float64       `yaml:"exploration"`
}

func DefaultConfig() Config {
	return Config{
		Name:     "bot_vs_baseline",
		Games:    10,
		Parallel: 4,
		Seed:     1,
		Output:   "results",
		Agent: Agent{
			Duration:    meta.SimulationTime,
			MaxDepth:    meta.MaxTreeDepth,
			Playouts:    meta.SimulationPlayouts,
			Exploration: meta.Exploration,
		},
	}
}

// LoadConfig reads a YAML experiment file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(b)
}

func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("parallel must be positive, got %d", c.Parallel)
	}
	if c.Agent.Duration <= 0 {
		return fmt.Errorf("agent duration must be positive, got %s", c.Agent.Duration)
	}
	return nil
}
