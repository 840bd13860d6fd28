// Package experiments compares search configurations over repeated games
// and persists the results as CSV records.
package experiments

import (
	"fmt"

	"coinduel/engine"
	"coinduel/experiments/metrics"
	"coinduel/game"
	"coinduel/searcher"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

const (
	NumGames    = 30 // Per matchup
	TotalRounds = 9
)

var ladderConfigs = []metrics.AgentConfig{
	{ID: 1, Iterations: 16, Trees: 1},
	{ID: 2, Iterations: 64, Trees: 1},
	{ID: 3, Iterations: 256, Trees: 1},
	{ID: 4, Iterations: 1024, Trees: 1},
	{ID: 5, Iterations: 1024, Trees: 8},
}

// RunIterationLadder pits an iteration-budget ladder against a fixed
// baseline agent and reports how playing strength scales with budget.
func RunIterationLadder(seed uint64) error {
	baseline := metrics.AgentConfig{ID: 0, Iterations: 16, Trees: 1}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range ladderConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment("iteration_ladder", append(ladderConfigs, baseline), matchUps, seed)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, seed uint64) error {
	log.Info().Msgf("starting %s experiment...", name)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), config1, config2)

		// Challenger win indicators and game durations for the summary
		wins := make([]float64, 0, NumGames)
		durations := make([]float64, 0, NumGames)

		for i := 0; i < NumGames; i++ {
			count++
			winner, gameMetric, moveMetrics, err := runGame(config1, config2, seed+uint64(count))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			win := 0.0
			if winner == game.SideB { // Challenger plays side B
				win = 1.0
			}
			wins = append(wins, win)
			durations = append(durations, gameMetric.Duration.Seconds())
		}

		meanDuration, stdDuration := stat.MeanStdDev(durations, nil)
		log.Info().
			Int("matchup", mi+1).
			Float64("challenger_win_rate", stat.Mean(wins, nil)).
			Float64("mean_game_seconds", meanDuration).
			Float64("stddev_game_seconds", stdDuration).
			Msg("completed matchup")
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msg("stored experiment records")

	return nil
}

// runGame plays one game: config1 on side A, config2 on side B.
func runGame(config1, config2 metrics.AgentConfig, seed uint64) (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := game.NewGameState(TotalRounds, game.NewFairCoin(seed), game.NewAlternatingRules())
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	agentA, err := createMCTS(config1, seed+1)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agentB, err := createMCTS(config2, seed+2)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	e, err := engine.NewLocalEngine(state, map[game.Side]engine.Agent{
		game.SideA: agentA,
		game.SideB: agentB,
	})
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

func createMCTS(config metrics.AgentConfig, seed uint64) (*searcher.MCTS, error) {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Trees > 0 {
		options = append(options, searcher.WithTrees(config.Trees))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}

	return searcher.NewMCTS(game.NewFairCoin(seed), options...)
}
