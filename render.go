package main

import (
	"fmt"
	"io"
	"strings"

	"skirmish/game"

	"github.com/muesli/termenv"
)

var (
	playerColors  = [2]string{"#5fafff", "#ff5f5f"}
	resourceColor = "#ffd75f"
)

// render draws the board with one coloured glyph per cell, player 0 in
// upper case and player 1 in lower case.
func render(w io.Writer, profile termenv.Profile, gs *game.GameState) error {
	board := make(map[[2]int]game.Unit)
	for _, u := range gs.Units() {
		board[[2]int{u.X, u.Y}] = u
	}

	var b strings.Builder
	fmt.Fprintf(&b, "t=%d resources=%d/%d\n", gs.Time(), gs.Resources(0), gs.Resources(1))
	for y := 0; y < gs.Height(); y++ {
		for x := 0; x < gs.Width(); x++ {
			u, ok := board[[2]int{x, y}]
			if !ok {
				b.WriteString(profile.String(".").Faint().String())
				continue
			}
			glyph := profile.String(string(game.Glyph(&u)))
			switch u.Player {
			case game.Neutral:
				glyph = glyph.Foreground(profile.Color(resourceColor))
			default:
				glyph = glyph.Foreground(profile.Color(playerColors[u.Player])).Bold()
			}
			b.WriteString(glyph.String())
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
