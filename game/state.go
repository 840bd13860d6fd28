package game

import "fmt"

// GameState is the game at one point in time. It is a value: Play returns
// a new state and never mutates the receiver. The coin and rules are
// shared capabilities, injected once and carried unchanged into every
// descendant so that simulation and real play run the same transition.
type GameState struct {
	Round       int
	ScoreA      int
	ScoreB      int
	TotalRounds int

	coin  Coin
	rules Rules
}

// NewGameState builds the state for round 0 with zero scores.
func NewGameState(totalRounds int, coin Coin, rules Rules) (GameState, error) {
	if totalRounds <= 0 {
		return GameState{}, fmt.Errorf("%w: total rounds must be positive, got %d", ErrInvalidConfig, totalRounds)
	}
	if coin == nil {
		return GameState{}, fmt.Errorf("%w: nil coin", ErrInvalidConfig)
	}
	if rules == nil {
		return GameState{}, fmt.Errorf("%w: nil rules", ErrInvalidConfig)
	}

	return GameState{TotalRounds: totalRounds, coin: coin, rules: rules}, nil
}

// Player is the side whose call decides the current round.
func (gs GameState) Player() Side {
	return gs.rules.CallerFor(gs.Round)
}

func (gs GameState) IsTerminal() bool {
	return gs.Round == gs.TotalRounds
}

func (gs GameState) LegalMoves() []Move {
	if gs.IsTerminal() {
		return nil
	}
	return Calls()
}

// Play resolves one round: the coin is flipped, the caller scores when the
// call matches the outcome, otherwise the opposing side scores.
func (gs GameState) Play(call Move) (State, error) {
	if gs.IsTerminal() {
		return nil, fmt.Errorf("play round %d of %d: %w", gs.Round, gs.TotalRounds, ErrTerminalState)
	}

	winner := gs.Player()
	if call != gs.coin.Flip() {
		winner = winner.Opponent()
	}

	next := gs
	next.Round++
	if winner == SideA {
		next.ScoreA++
	} else {
		next.ScoreB++
	}
	return next, nil
}

// Winner is the side that leads once all rounds are played, or Tie on
// equal scores. Empty while rounds remain.
func (gs GameState) Winner() Side {
	if !gs.IsTerminal() {
		return ""
	}
	switch {
	case gs.ScoreA > gs.ScoreB:
		return SideA
	case gs.ScoreB > gs.ScoreA:
		return SideB
	default:
		return Tie
	}
}

func (gs GameState) String() string {
	return fmt.Sprintf("round %d/%d score %d-%d", gs.Round, gs.TotalRounds, gs.ScoreA, gs.ScoreB)
}
