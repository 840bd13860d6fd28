package searcher

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"coinduel/experiments/metrics"
	"coinduel/game"
	"coinduel/utils"
)

var (
	// ErrNoBudget reports a search configured without a positive
	// iteration or duration budget.
	ErrNoBudget = errors.New("search requires a positive iteration or duration budget")
	// ErrGameOver reports a search requested on a terminal state: there
	// is no move to recommend, only a result to read off the state.
	ErrGameOver = errors.New("game is over")
)

type Option func(m *MCTS)

// MCTS owns the search configuration. One Search call owns one tree (or
// one tree per goroutine with root parallelization) and discards it when
// the decision is made.
type MCTS struct {
	coin        game.Coin
	iterations  int
	duration    time.Duration
	exploration float64
	trees       int
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration sets a soft deadline instead of an iteration budget:
// elapsed time is checked between iterations, never within one.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithTrees enables root parallelization: independent trees searched
// concurrently, root statistics merged before the final decision.
func WithTrees(trees int) Option {
	return func(m *MCTS) {
		if trees > 0 {
			m.trees = trees
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(coin game.Coin, options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		coin:        coin,
		exploration: DefaultExploration,
		trees:       1,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}

	if m.coin == nil {
		return nil, fmt.Errorf("%w: search requires an outcome source", game.ErrInvalidConfig)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		return nil, ErrNoBudget
	}
	if m.iterations > 0 && m.trees > m.iterations {
		return nil, fmt.Errorf("%w: %d iterations cannot feed %d trees", ErrNoBudget, m.iterations, m.trees)
	}
	return m, nil
}

// Decision is the recommendation produced by one search.
type Decision struct {
	Move   game.Move
	Visits int
	// WinProbability estimates the searched side's chance of winning,
	// read off the chosen root child. Diagnostic only.
	WinProbability float64
	Metric         metrics.SearchMetric
}

// FindNextMove runs a search and returns only the recommended move.
func (m *MCTS) FindNextMove(state game.State) (game.Move, error) {
	decision, err := m.Search(state)
	if err != nil {
		return 0, err
	}
	return decision.Move, nil
}

// Search builds a fresh tree from state, spends the configured budget,
// and returns the robust-child decision. A terminal root short-circuits
// with ErrGameOver before any iteration runs.
func (m *MCTS) Search(state game.State) (Decision, error) {
	if state == nil {
		return Decision{}, fmt.Errorf("%w: nil state", game.ErrInvalidConfig)
	}
	if state.IsTerminal() {
		return Decision{}, fmt.Errorf("%w: winner %s", ErrGameOver, state.Winner())
	}

	m.metrics.Start(m.trees, m.exploration)

	roots := make([]*node, m.trees)
	if m.trees == 1 {
		roots[0] = m.searchTree(state, m.iterations)
	} else {
		var wg sync.WaitGroup
		for i := range roots {
			wg.Add(1)
			go func(ith int) {
				defer wg.Done()
				roots[ith] = m.searchTree(state, m.treeBudget(ith))
			}(i)
		}
		wg.Wait()
	}

	decision := m.decide(state, roots)
	decision.Metric = m.metrics.Complete()
	return decision, nil
}

// treeBudget splits the iteration budget across trees; the first trees
// absorb the remainder so the split is exact.
func (m *MCTS) treeBudget(ith int) int {
	if m.iterations <= 0 {
		return 0 // Duration budget: every tree runs to the deadline
	}
	budget := m.iterations / m.trees
	if ith < m.iterations%m.trees {
		budget++
	}
	return budget
}

func (m *MCTS) searchTree(state game.State, iterations int) *node {
	root := newNode(state, nil)
	c2 := m.exploration * m.exploration

	if iterations > 0 {
		for i := 0; i < iterations; i++ {
			m.simulate(root, c2)
		}
		return root
	}

	// At least one iteration runs even when the deadline has passed, so
	// the root always has a visited child to decide from.
	deadline := time.Now().Add(m.duration)
	for ok := true; ok; ok = time.Now().Before(deadline) {
		m.simulate(root, c2)
	}
	return root
}

// simulate runs one iteration: select, expand, rollout, backpropagate.
func (m *MCTS) simulate(root *node, c2 float64) {
	newNode := selectThenExpand(root, c2)
	winner, moves := m.rollout(newNode.state)
	m.metrics.AddRollout(moves)
	backup(newNode, winner)
	m.metrics.AddIteration()
}

// selectThenExpand descends by UCB1 while nodes are fully expanded and
// non-terminal, then attaches one unexplored move. A terminal node is
// returned as-is and simulated from directly.
func selectThenExpand(root *node, c2 float64) *node {
	current := root
	for {
		child, expanded := current.selectOrExpand(c2)
		if expanded || child == current {
			return child
		}
		current = child
	}
}

// rollout plays uniformly random calls to a terminal state. The playout
// estimates value only; none of it is attached to the tree.
func (m *MCTS) rollout(state game.State) (winner game.Side, depth int) {
	moves := state.LegalMoves()
	for len(moves) > 0 {
		call := moves[int(m.coin.Flip())%len(moves)] // Uniform over the binary call space
		next, err := state.Play(call)
		if err != nil {
			// Unreachable: legal moves are non-empty
			panic(fmt.Sprintf("rollout: %v", err))
		}
		state = next
		moves = state.LegalMoves()
		depth++
	}
	return state.Winner(), depth
}

func backup(newNode *node, winner game.Side) {
	node := newNode
	for node != nil {
		node = node.backup(winner)
	}
}

// decide applies the robust-child policy over the root statistics, merged
// by move across trees when root parallelization is on.
func (m *MCTS) decide(state game.State, roots []*node) Decision {
	if len(roots) == 1 {
		move, child := roots[0].bestChildByVisits()
		return Decision{Move: move, Visits: child.visits, WinProbability: meanReward(child)}
	}

	legal := state.LegalMoves()
	visits := make([]int, len(legal))
	rewards := make([]float64, len(legal))
	for _, root := range roots {
		for i, move := range root.moves {
			ith := utils.FindIndex(legal, move)
			if ith < 0 {
				panic(fmt.Sprintf("decide: move %v expanded at the root is not legal", move))
			}
			visits[ith] += root.children[i].visits
			rewards[ith] += root.children[i].rewards
		}
	}

	best := 0
	for i := 1; i < len(legal); i++ {
		if visits[i] > visits[best] ||
			(visits[i] == visits[best] && mean(rewards[i], visits[i]) > mean(rewards[best], visits[best])) {
			best = i
		}
	}
	return Decision{Move: legal[best], Visits: visits[best], WinProbability: mean(rewards[best], visits[best])}
}

func mean(rewards float64, visits int) float64 {
	if visits == 0 {
		return 0
	}
	return rewards / float64(visits)
}
