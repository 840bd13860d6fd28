package engine

import (
	"fmt"
	"time"

	"coinduel/experiments/metrics"
	"coinduel/game"

	"github.com/rs/zerolog/log"
)

// LocalEngine plays both sides in-process: each round it asks the current
// caller's agent for a move, applies it to the real game, and reports the
// round winner and running score.
type LocalEngine struct {
	State  game.GameState
	agents map[game.Side]Agent
}

func NewLocalEngine(state game.GameState, agents map[game.Side]Agent) (*LocalEngine, error) {
	for _, side := range []game.Side{game.SideA, game.SideB} {
		if agents[side] == nil {
			return nil, fmt.Errorf("%w: no agent for side %s", game.ErrInvalidConfig, side)
		}
	}

	return &LocalEngine{State: state, agents: agents}, nil
}

// Run executes the remaining rounds and returns the final winner.
func (e *LocalEngine) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	startTime := time.Now()
	var moveMetrics []metrics.MoveMetric

	state := e.State
	step := 1
	for !state.IsTerminal() {
		caller := state.Player()

		decision, err := e.agents[caller].Search(state)
		if err != nil {
			return "", metrics.GameMetric{}, moveMetrics, fmt.Errorf("search for side %s: %w", caller, err)
		}

		played, err := state.Play(decision.Move)
		if err != nil {
			return "", metrics.GameMetric{}, moveMetrics, fmt.Errorf("play %s for side %s: %w", decision.Move, caller, err)
		}
		next := played.(game.GameState)

		log.Info().
			Int("round", step).
			Str("caller", string(caller)).
			Stringer("call", decision.Move).
			Str("round_winner", string(roundWinner(state, next))).
			Str("score", fmt.Sprintf("%d-%d", next.ScoreA, next.ScoreB)).
			Float64("win_probability", decision.WinProbability).
			Msg("round played")

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:           step,
			Player:         caller,
			Move:           decision.Move,
			WinProbability: decision.WinProbability,
			SearchMetric:   decision.Metric,
		})

		state = next
		step++
	}
	e.State = state

	endTime := time.Now()
	winner := state.Winner()
	log.Info().
		Str("winner", string(winner)).
		Str("score", fmt.Sprintf("%d-%d", state.ScoreA, state.ScoreB)).
		Msg("game over")

	gameMetric := metrics.GameMetric{
		Winner:      winner,
		ScoreA:      state.ScoreA,
		ScoreB:      state.ScoreB,
		TotalRounds: state.TotalRounds,
		StartTime:   startTime,
		EndTime:     endTime,
		Duration:    endTime.Sub(startTime),
	}
	return winner, gameMetric, moveMetrics, nil
}

// roundWinner reads the round's scorer off the score delta.
func roundWinner(before, after game.GameState) game.Side {
	if after.ScoreA > before.ScoreA {
		return game.SideA
	}
	return game.SideB
}
