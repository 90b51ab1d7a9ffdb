package searcher

import (
	"fmt"

	"skirmish/game"
)

// rollout plays both sides with the policy, mutating state in place, until
// the game ends or its clock reaches untilTime.
func rollout(state game.State, untilTime int, policy game.Policy) error {
	for !state.GameOver() && state.Time() < untilTime {
		if state.IsComplete() {
			state.Cycle()
			continue
		}

		for player := 0; player < 2; player++ {
			if !state.IsActionable(player) {
				continue
			}
			action, err := policy.ActionFor(player, state)
			if err != nil {
				return fmt.Errorf("rollout policy failed for player %d: %w", player, err)
			}
			if err := state.Issue(action); err != nil {
				return fmt.Errorf("failed to issue rollout action at tick %d: %w", state.Time(), err)
			}
		}
		// A policy may leave units idle
		if !state.IsComplete() {
			state.Cycle()
		}
	}
	return nil
}
