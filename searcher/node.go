package searcher

import (
	"fmt"
	"math"

	"coinduel/game"
)

// node is one tree vertex. It owns its children; parent is a non-owning
// back-reference walked only during backpropagation. rewards accumulate
// from the perspective of the side that played the move into this node,
// so selection at any fully expanded node is a plain maximization.
type node struct {
	parent   *node
	player   game.Side // Caller at this node's state
	state    game.State
	untried  []game.Move // Unexplored moves, ascending move index
	moves    []game.Move // Explored moves, parallel to children
	children []*node
	rewards  float64
	visits   int
}

func newNode(state game.State, parent *node) *node {
	return &node{
		parent:  parent,
		player:  state.Player(),
		state:   state,
		untried: state.LegalMoves(),
	}
}

// perspective is the side whose wins this node's rewards count.
func (n *node) perspective() game.Side {
	if n.parent != nil {
		return n.parent.player
	}
	return n.player
}

func (n *node) isTerminal() bool {
	return len(n.untried) == 0 && len(n.children) == 0
}

func (n *node) isFullyExpanded() bool {
	return len(n.untried) == 0
}

// selectOrExpand advances the tree walk by one level: on an expandable
// node it attaches the first unexplored move as a new child, on a fully
// expanded node it descends by UCB1, and on a terminal node it stagnates.
func (n *node) selectOrExpand(c2 float64) (child *node, expanded bool) {
	if n.isTerminal() {
		return n, false
	}

	if !n.isFullyExpanded() {
		return n.addChild(n.untried[0]), true
	}

	return n.children[n.bestChildByUCB1(c2)], false
}

// addChild expands one unexplored move via the state transition. Exactly
// one child may ever exist per move.
func (n *node) addChild(move game.Move) *node {
	state, err := n.state.Play(move)
	if err != nil {
		// Unreachable: untried moves are non-empty only on non-terminal states
		panic(fmt.Sprintf("expand %v: %v", move, err))
	}

	rest := make([]game.Move, 0, len(n.untried))
	for _, m := range n.untried {
		if m != move {
			rest = append(rest, m)
		}
	}
	n.untried = rest

	child := newNode(state, n)
	n.moves = append(n.moves, move)
	n.children = append(n.children, child)
	return child
}

// bestChildByUCB1 picks the child maximizing UCB1. Ties break towards the
// lowest move index. Must only run on a fully expanded node whose children
// have all been visited.
func (n *node) bestChildByUCB1(c2 float64) int {
	if len(n.children) == 0 {
		panic("cannot select: node has no children")
	}
	if n.visits == 0 {
		panic("cannot select: node has children but no visits")
	}

	normalizer := c2 * math.Log(float64(n.visits))

	best := 0
	bestScore := ucb1(n.children[0].rewards, n.children[0].visits, normalizer)
	for i, child := range n.children[1:] {
		if score := ucb1(child.rewards, child.visits, normalizer); score > bestScore {
			bestScore = score
			best = i + 1
		}
	}
	return best
}

// bestChildByVisits is the robust-child decision policy used once the
// search budget is spent: most visits, ties broken by higher average
// reward, then by lower move index.
func (n *node) bestChildByVisits() (game.Move, *node) {
	if len(n.children) == 0 {
		panic("cannot decide: node has no children")
	}

	best := 0
	for i, child := range n.children[1:] {
		if betterByVisits(child, n.children[best]) {
			best = i + 1
		}
	}
	return n.moves[best], n.children[best]
}

func betterByVisits(c, best *node) bool {
	if c.visits != best.visits {
		return c.visits > best.visits
	}
	return meanReward(c) > meanReward(best)
}

func meanReward(n *node) float64 {
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

// backup records one simulation result and returns the parent, so the
// caller can walk the chain up to the root iteratively.
func (n *node) backup(winner game.Side) *node {
	n.rewards += computeReward(winner, n.perspective())
	n.visits++
	return n.parent
}
