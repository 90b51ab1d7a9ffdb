package engine

import (
	"fmt"
	"time"

	"skirmish/experiments/metrics"
	"skirmish/game"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

type Local struct {
	state  *game.GameState
	agents [2]Agent
}

// NewLocal pits two agents against each other, agents[p] playing player p.
func NewLocal(state *game.GameState, agents ...Agent) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	for i, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("agent %d is nil", i))
		}
	}
	return &Local{
		state:  state,
		agents: [2]Agent{agents[0], agents[1]},
	}
}

func (e *Local) State() *game.GameState {
	return e.state
}

// Run executes the entire game loop: every tick each player with idle units
// gets to act on a private copy of the state, then the clock advances.
func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Msgf("starting game at tick %d", e.state.Time())

	for !e.state.GameOver() {
		for player := 0; player < 2; player++ {
			if !e.state.IsActionable(player) {
				continue
			}

			action, searchMetric, err := decide(e.agents[player], player, e.state.Clone())
			if err != nil {
				return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("player %d failed to decide at tick %d: %w", player, e.state.Time(), err)
			}
			if err := e.state.Issue(action); err != nil {
				return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("player %d issued an invalid action at tick %d: %w", player, e.state.Time(), err)
			}

			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Time:         e.state.Time(),
				Player:       player,
				Action:       action.String(),
				SearchMetric: searchMetric,
			})
		}
		e.state.Cycle()
	}

	gameMetric.Winner = e.state.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Ticks = e.state.Time()
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game over at tick %d with winner %d after %d moves", gameMetric.Ticks, gameMetric.Winner, gameMetric.TotalMoves)
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}

func decide(agent Agent, player int, state game.State) (game.PlayerAction, metrics.SearchMetric, error) {
	if a, ok := agent.(MetricAgent); ok {
		return a.DecideWithMetrics(player, state)
	}
	action, err := agent.Decide(player, state)
	return action, metrics.SearchMetric{}, err
}
