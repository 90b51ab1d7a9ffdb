package main

import (
	"strings"
	"testing"

	"skirmish/game"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	gs, err := game.DefaultMap().NewState()
	require.NoError(t, err)

	t.Run("plain board without colours", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, render(&b, termenv.Ascii, gs))

		lines := strings.Split(strings.TrimSpace(b.String()), "\n")
		require.Len(t, lines, 1+gs.Height())
		require.Equal(t, "t=0 resources=5/5", lines[0])
		require.Equal(t, "R.......", lines[1])
		require.Equal(t, ".WB.....", lines[2])
		require.Equal(t, ".....bw.", lines[7])
		require.Equal(t, ".......R", lines[8])
	})

	t.Run("coloured board", func(t *testing.T) {
		var b strings.Builder
		require.NoError(t, render(&b, termenv.TrueColor, gs))

		require.Contains(t, b.String(), "\x1b[", "True colour output should carry escape sequences")
	})
}
