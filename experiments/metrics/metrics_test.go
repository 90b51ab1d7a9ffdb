package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("{weights}")
	c.AddEpisode()
	c.AddEpisode()
	c.AddExpansion(3)
	c.AddExpansion(1)
	c.SetRootVisits(2)
	c.AddStall()
	c.SetFallback(true)

	m := c.Complete()

	require.Equal(t, 2, m.Episodes)
	require.Equal(t, 2, m.Expansions)
	require.Equal(t, 3, m.MaxDepth, "Max depth should keep the deepest expansion")
	require.Equal(t, 2, m.RootVisits)
	require.Equal(t, 1, m.Stalls)
	require.Equal(t, "{weights}", m.Weights)
	require.True(t, m.IsFallback)

	c.Start("")
	cleared := c.Complete()
	cleared.Duration = 0
	require.Equal(t, SearchMetric{}, cleared, "Start should clear the last search")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 0, Name: "baseline"},
		{ID: 1, Name: "mcts", Duration: 100 * time.Millisecond, MaxDepth: 10, Playouts: 5},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{
		{ID: 1, Bot: 1, Baseline: 0, BotPlayer: 1, GameMetric: GameMetric{Winner: 1, Ticks: 420, TotalMoves: 80}},
	}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Time: 0, Player: 1, Action: "{}", SearchMetric: SearchMetric{Episodes: 12, Stalls: 4}}},
		{Game: 1, MoveMetric: MoveMetric{Time: 10, Player: 1, Action: "{}"}},
	}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Len(t, configs, 3, "Header plus one row per agent")
	require.Equal(t, []string{"1", "mcts", "100ms", "10", "5", "false"}, configs[2])

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, "1", games[1][4], "Winner column should hold the player ID")
	require.Equal(t, "420", games[1][5])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 3)
	require.Equal(t, "12", moves[1][5])
	require.Equal(t, "stalls", moves[0][9])
	require.Equal(t, "4", moves[1][9])
}
