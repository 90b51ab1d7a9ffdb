package searcher

import (
	"errors"
	"testing"

	"skirmish/game"

	"github.com/stretchr/testify/require"
)

type idlePolicy struct{}

func (idlePolicy) ActionFor(player int, state game.State) (game.PlayerAction, error) {
	return game.PlayerAction{}, nil
}

type failingPolicy struct{ err error }

func (p failingPolicy) ActionFor(player int, state game.State) (game.PlayerAction, error) {
	return game.PlayerAction{}, p.err
}

func TestRollout(t *testing.T) {
	newState := func(t *testing.T) *game.GameState {
		gs, err := game.DefaultMap().NewState()
		require.NoError(t, err)
		return gs
	}

	t.Run("stopping at the time limit", func(t *testing.T) {
		gs := newState(t)

		require.NoError(t, rollout(gs, 30, game.Passive{}))
		require.Equal(t, 30, gs.Time())
	})

	t.Run("stopping at game over", func(t *testing.T) {
		gs := newState(t)
		gs.SetMaxCycles(20)

		require.NoError(t, rollout(gs, 100, game.Passive{}))
		require.True(t, gs.GameOver())
		require.Equal(t, 20, gs.Time())
	})

	t.Run("advancing when the policy leaves units idle", func(t *testing.T) {
		gs := newState(t)

		require.NoError(t, rollout(gs, 15, idlePolicy{}))
		require.Equal(t, 15, gs.Time())
	})

	t.Run("leaving a finished state alone", func(t *testing.T) {
		gs := newState(t)
		gs.SetTime(50)

		require.NoError(t, rollout(gs, 50, game.Passive{}))
		require.Equal(t, 50, gs.Time())
	})

	t.Run("propagating policy errors", func(t *testing.T) {
		errPolicy := errors.New("policy failed")

		err := rollout(newState(t), 30, failingPolicy{err: errPolicy})

		require.ErrorIs(t, err, errPolicy)
	})

	t.Run("playing a full game with the biased policy", func(t *testing.T) {
		gs := newState(t)
		gs.SetMaxCycles(500)

		require.NoError(t, rollout(gs, 1000, game.NewRandomBiased(1)))
		require.True(t, gs.GameOver())
	})
}

func TestAveragedPlayout(t *testing.T) {
	gs, err := game.DefaultMap().NewState()
	require.NoError(t, err)

	calls := 0
	evaluate := func(self, opponent int, state game.State) float64 {
		calls++
		return game.EvaluateSqrt(self, opponent, state)
	}

	t.Run("averaging every playout before the deadline", func(t *testing.T) {
		calls = 0
		s := newTestSearch(t, gs, 0, newSteppingClock(0), WithPlayouts(4), WithEvaluationFn(evaluate))
		single := newTestSearch(t, gs, 0, newSteppingClock(0), WithEvaluationFn(evaluate))

		averaged, err := s.averagedPlayout(gs, 20)
		require.NoError(t, err)
		require.Equal(t, 4, calls)

		score, err := single.simulate(newRoot(0, 1, gs))
		require.NoError(t, err)
		require.InDelta(t, score*decay(20), averaged, 1e-12, "Deterministic playouts should average to a single one")
	})

	t.Run("finishing the first playout after the deadline", func(t *testing.T) {
		calls = 0
		clock := newSteppingClock(0)
		s := newTestSearch(t, gs, 0, clock, WithPlayouts(4), WithEvaluationFn(evaluate))
		clock.step = s.deadline.Sub(clock.now) + 1

		_, err := s.averagedPlayout(gs, 0)

		require.NoError(t, err)
		require.Equal(t, 1, calls, "Only the first playout should run past the deadline")
	})
}
