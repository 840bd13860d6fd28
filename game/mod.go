package game

// Side identifies one of the two players. The zero value means "no side"
// (e.g. Winner on a non-terminal state).
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
	Tie   Side = "Tie"
)

// Opponent returns the other side. Only meaningful for SideA and SideB.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// State should be immutable - playing a move always returns a new value.
// Any finite turn-based stochastic game that implements this interface is
// searchable by the searcher package.
type State interface {
	// Player is the side whose call decides the current round.
	Player() Side
	// LegalMoves returns the calls available, in ascending move-index
	// order, or nil on a terminal state.
	LegalMoves() []Move
	// Play advances the state by one move. It fails on a terminal state.
	Play(Move) (State, error)
	IsTerminal() bool
	// Winner is the side with the higher score, or Tie. Empty until the
	// state is terminal.
	Winner() Side
}
