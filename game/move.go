package game

// Move is a call on the outcome of the round's coin flip.
type Move uint8

const (
	Heads Move = iota
	Tails
)

// Calls returns both legal calls in move-index order (Heads before Tails).
func Calls() []Move {
	return []Move{Heads, Tails}
}

func (m Move) String() string {
	switch m {
	case Heads:
		return "heads"
	case Tails:
		return "tails"
	default:
		return "unknown"
	}
}
