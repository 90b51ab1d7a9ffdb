package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const smallMap = `
width: 4
height: 3
time: 120
max_cycles: 500
resources: [2, 3]
units:
  - {type: Resource, x: 0, y: 0, resources: 10}
  - {type: Base, player: 0, x: 1, y: 1}
  - {type: Worker, player: 1, x: 3, y: 2}
`

func TestParseMap(t *testing.T) {
	t.Run("building the described state", func(t *testing.T) {
		m, err := ParseMap([]byte(smallMap))
		require.NoError(t, err)

		gs, err := m.NewState()
		require.NoError(t, err)

		require.Equal(t, 4, gs.Width())
		require.Equal(t, 3, gs.Height())
		require.Equal(t, 120, gs.Time())
		require.Equal(t, 2, gs.Resources(0))
		require.Equal(t, 3, gs.Resources(1))
		units := gs.Units()
		require.Len(t, units, 3)
		require.Equal(t, Neutral, units[0].Player, "Resources are always neutral")
		require.Equal(t, 10, units[0].Resources)
		require.Equal(t, WorkerType, units[2].Type)
	})

	t.Run("rejecting an empty board", func(t *testing.T) {
		_, err := ParseMap([]byte("width: 0\nheight: 3\n"))
		require.Error(t, err)
	})

	t.Run("rejecting overlapping units", func(t *testing.T) {
		m, err := ParseMap([]byte("width: 2\nheight: 2\nunits:\n  - {type: Base, player: 0, x: 0, y: 0}\n  - {type: Worker, player: 0, x: 0, y: 0}\n"))
		require.NoError(t, err)

		_, err = m.NewState()
		require.Error(t, err)
	})

	t.Run("rejecting unknown unit types", func(t *testing.T) {
		m, err := ParseMap([]byte("width: 2\nheight: 2\nunits:\n  - {type: Tank, player: 0, x: 0, y: 0}\n"))
		require.NoError(t, err)

		_, err = m.NewState()
		require.Error(t, err)
	})
}
