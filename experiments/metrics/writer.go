package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer persists experiment results as CSV files under a per-run
// timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("results", experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := [][]string{{"id", "iterations", "duration", "trees", "exploration"}}
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Iterations),
			config.Duration.String(),
			strconv.Itoa(config.Trees),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
		})
	}
	return w.writeFile("agent_configs.csv", rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := [][]string{{"id", "agent1", "agent2", "winner", "score_a", "score_b", "total_rounds", "start_time", "duration"}}
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Agent1),
			strconv.Itoa(r.Agent2),
			string(r.Winner),
			strconv.Itoa(r.ScoreA),
			strconv.Itoa(r.ScoreB),
			strconv.Itoa(r.TotalRounds),
			r.StartTime.UTC().Format(time.RFC3339Nano),
			r.Duration.String(),
		})
	}
	return w.writeFile("game_records.csv", rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := [][]string{{"game", "step", "player", "move", "win_probability", "trees", "exploration", "iterations", "rollouts", "rollout_moves", "duration"}}
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			string(r.Player),
			r.Move.String(),
			strconv.FormatFloat(r.WinProbability, 'f', 4, 64),
			strconv.Itoa(r.Trees),
			strconv.FormatFloat(r.Exploration, 'f', -1, 64),
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.Rollouts),
			strconv.Itoa(r.RolloutMoves),
			r.Duration.String(),
		})
	}
	return w.writeFile("move_records.csv", rows)
}

func (w *Writer) writeFile(name string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", name, err)
		}
	}
	return nil
}
