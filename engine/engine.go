package engine

import (
	"skirmish/experiments/metrics"
	"skirmish/game"
)

// Agent chooses the action for a player's idle units.
type Agent interface {
	Decide(player int, state game.State) (game.PlayerAction, error)
}

// MetricAgent is an Agent that also reports how it searched.
type MetricAgent interface {
	Agent
	DecideWithMetrics(player int, state game.State) (game.PlayerAction, metrics.SearchMetric, error)
}

type Engine interface {
	// Run plays a game till game over and returns the winner, or game.NoWinner for a draw
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// PolicyAdapter lets a baseline policy play as an agent.
type PolicyAdapter struct {
	Policy game.Policy
}

func (p PolicyAdapter) Decide(player int, state game.State) (game.PlayerAction, error) {
	return p.Policy.ActionFor(player, state)
}
