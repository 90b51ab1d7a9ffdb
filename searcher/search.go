package searcher

import (
	"fmt"
	"time"

	"skirmish/analysis"
	"skirmish/experiments/metrics"
	"skirmish/game"
)

// search holds everything that lives for a single decision, so the MCTS
// itself keeps no per-call tree state.
type search struct {
	owner        int
	opponent     int
	rootTime     int
	deadline     time.Time
	clock        Clock
	maxDepth     int
	branching    int
	advanceTicks int
	rolloutTicks int
	playouts     int
	averaged     bool
	exploration  float64
	analyzer     *analysis.Analyzer
	policy       game.Policy
	evaluate     game.Evaluate
	metrics      metrics.Collector
}

func (s *search) expired() bool {
	return s.clock.Now().After(s.deadline)
}

func (s *search) candidates(state game.State) []game.PlayerAction {
	ranked := s.analyzer.Candidates(state, s.owner, s.branching)
	actions := make([]game.PlayerAction, len(ranked))
	for i, c := range ranked {
		actions[i] = c.Action
	}
	return actions
}

// respond issues the baseline's action for the opponent if it has idle
// units, returning what was issued.
func (s *search) respond(state game.State) (game.PlayerAction, error) {
	if !state.IsActionable(s.opponent) {
		return game.PlayerAction{}, nil
	}
	response, err := s.policy.ActionFor(s.opponent, state)
	if err != nil {
		return game.PlayerAction{}, fmt.Errorf("baseline failed for player %d: %w", s.opponent, err)
	}
	if err := state.Issue(response); err != nil {
		return game.PlayerAction{}, fmt.Errorf("failed to issue baseline response: %w", err)
	}
	return response, nil
}

// advance moves the state forward until the owner has an idle unit again,
// letting the baseline play the opponent in between.
func (s *search) advance(state game.State) error {
	for ticks := 0; ticks < s.advanceTicks && !state.GameOver() && !state.IsActionable(s.owner); {
		if state.IsComplete() {
			state.Cycle()
			ticks++
			continue
		}
		if _, err := s.respond(state); err != nil {
			return err
		}
		// A response may leave units idle
		if !state.IsComplete() {
			state.Cycle()
			ticks++
		}
	}
	return nil
}

// simulate scores a freshly selected node by rolling out a clone of its
// state, discounted by how far the node lies past the root.
func (s *search) simulate(n *node) (float64, error) {
	elapsed := n.GameState().Time() - s.rootTime
	if s.averaged {
		return s.averagedPlayout(n.GameState(), elapsed)
	}

	state := n.GameState().Clone()
	if err := rollout(state, state.Time()+s.rolloutTicks, s.policy); err != nil {
		return 0, err
	}
	return s.evaluate(s.owner, s.opponent, state) * decay(elapsed), nil
}

// averagedPlayout averages up to s.playouts rollouts of the same state. The
// first rollout always runs, later ones stop at the deadline.
func (s *search) averagedPlayout(origin game.State, elapsed int) (float64, error) {
	total := 0.0
	count := 0
	for i := 0; i < s.playouts; i++ {
		if i > 0 && s.expired() {
			break
		}
		state := origin.Clone()
		if err := rollout(state, state.Time()+s.rolloutTicks, s.policy); err != nil {
			return 0, err
		}
		total += s.evaluate(s.owner, s.opponent, state) * decay(elapsed)
		count++
	}
	return total / float64(count), nil
}
