// Package searcher implements Monte Carlo Tree Search over game.State.
// Each top-level decision builds a fresh tree: iterations of select,
// expand, simulate and backpropagate, then a robust-child pick (most
// visits) for the final move.
package searcher

import (
	"math"

	"coinduel/game"
)

// Hyperparameters for MCTS

// DefaultExploration is the UCB1 exploration constant.
const DefaultExploration = math.Sqrt2

// Rewards estimate the chance of winning from a fixed perspective: the
// side that played the move into a node. Held consistent across
// backpropagation, decision policy and reported win probabilities.
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

func computeReward(winner, player game.Side) float64 {
	switch winner {
	case player:
		return Win
	case game.Tie:
		return Draw
	default:
		return Loss
	}
}
