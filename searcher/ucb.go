package searcher

import "math"

// ucb1 scores one child: exploitation (mean reward) plus exploration
// bonus. c2LnN is exploration²·ln(parent visits), computed once per
// selection over all siblings.
func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	if visits == 0 { // Expansion must precede selection
		panic("cannot compute UCB1: 0 visits")
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}
