package game

// Rules fix the caller schedule: which side's call decides a given round.
// The schedule must be a pure function of the round index so that every
// state derived from the same round agrees on whose turn it is.
type Rules interface {
	CallerFor(round int) Side
}

// AlternatingRules is the standard game: side A calls even rounds, side B
// calls odd rounds.
type AlternatingRules struct{}

func NewAlternatingRules() *AlternatingRules {
	return &AlternatingRules{}
}

func (*AlternatingRules) CallerFor(round int) Side {
	if round%2 == 0 {
		return SideA
	}
	return SideB
}

// FixedRules pins every round's call on one side; the opponent only
// scores when that side's call misses.
type FixedRules struct {
	caller Side
}

func NewFixedRules(caller Side) *FixedRules {
	return &FixedRules{caller: caller}
}

func (r *FixedRules) CallerFor(round int) Side {
	return r.caller
}
