package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateSqrt(t *testing.T) {
	t.Run("symmetric position scores zero", func(t *testing.T) {
		gs, err := DefaultMap().NewState()
		require.NoError(t, err)

		require.InDelta(t, 0.0, EvaluateSqrt(0, 1, gs), 1e-9)
	})

	t.Run("material advantage scores positive for self and negative for opponent", func(t *testing.T) {
		gs, err := DefaultMap().NewState()
		require.NoError(t, err)
		gs.SetResources(0, 10)

		self := EvaluateSqrt(0, 1, gs)
		other := EvaluateSqrt(1, 0, gs)
		require.Greater(t, self, 0.0)
		require.InDelta(t, -self, other, 1e-9, "Score should be antisymmetric")
		require.LessOrEqual(t, self, 1.0)
	})

	t.Run("damaged units count by the square root of their health", func(t *testing.T) {
		gs := NewGameState(2, 1)
		mustAdd(t, gs, LightType, 0, 0, 0, 0)
		mustAdd(t, gs, LightType, 1, 1, 0, 0)
		gs.units[1].HP = 1

		s1 := 2 * unitBonusWeight
		s2 := 2 * unitBonusWeight * math.Sqrt(1.0/4.0)
		require.InDelta(t, (s1-s2)/(s1+s2), EvaluateSqrt(0, 1, gs), 1e-9)
	})

	t.Run("empty board scores zero", func(t *testing.T) {
		require.Equal(t, 0.0, EvaluateSqrt(0, 1, NewGameState(2, 2)))
	})
}

func TestEvaluateUnits(t *testing.T) {
	gs, err := DefaultMap().NewState()
	require.NoError(t, err)
	gs.SetResources(0, 10)

	require.InDelta(t, 0.0, EvaluateUnits(0, 1, gs), 1e-9, "Stored resources should not count")
}
