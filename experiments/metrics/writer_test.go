package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coinduel/game"

	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))
}

func readCSV(t *testing.T, pattern string) [][]string {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("writing agent configs", func(t *testing.T) {
		chdirTemp(t)
		w, err := NewWriter("test")
		require.NoError(t, err)

		err = w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Iterations: 100, Trees: 4, Exploration: 1.5},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join("results", "test", "*", "agent_configs.csv"))
		require.Equal(t, []string{"id", "iterations", "duration", "trees", "exploration"}, rows[0])
		require.Equal(t, []string{"1", "100", "0s", "4", "1.5"}, rows[1])
	})

	t.Run("writing game records", func(t *testing.T) {
		chdirTemp(t)
		w, err := NewWriter("test")
		require.NoError(t, err)

		err = w.WriteGameRecords([]GameRecord{
			{
				ID:     1,
				Agent1: 0,
				Agent2: 2,
				GameMetric: GameMetric{
					Winner:      game.SideA,
					ScoreA:      5,
					ScoreB:      4,
					TotalRounds: 9,
					StartTime:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
					Duration:    3 * time.Second,
				},
			},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join("results", "test", "*", "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "A", rows[1][3])
		require.Equal(t, "5", rows[1][4])
		require.Equal(t, "4", rows[1][5])
	})

	t.Run("writing move records", func(t *testing.T) {
		chdirTemp(t)
		w, err := NewWriter("test")
		require.NoError(t, err)

		err = w.WriteMoveRecords([]MoveRecord{
			{
				Game: 1,
				MoveMetric: MoveMetric{
					Step:           2,
					Player:         game.SideB,
					Move:           game.Tails,
					WinProbability: 0.625,
					SearchMetric: SearchMetric{
						Trees:      1,
						Iterations: 128,
						Rollouts:   128,
					},
				},
			},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join("results", "test", "*", "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "tails", rows[1][3])
		require.Equal(t, "0.6250", rows[1][4])
		require.Equal(t, "128", rows[1][7])
	})
}
