package engine

import (
	"coinduel/experiments/metrics"
	"coinduel/game"
	"coinduel/searcher"
)

// Agent decides the call for the side whose turn it is. *searcher.MCTS
// satisfies this directly.
type Agent interface {
	Search(state game.State) (searcher.Decision, error)
}

// Engine drives a game until all rounds are played.
type Engine interface {
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
