package game

import (
	"sync"

	"golang.org/x/exp/rand"
)

// Coin is the outcome source for flips: Heads or Tails with probability
// 0.5 each, independent across calls. The engine never reseeds or
// inspects it beyond invoking Flip.
type Coin interface {
	Flip() Move
}

type fairCoin struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFairCoin returns a seeded fair coin. The same seed yields the same
// flip sequence, so searches are reproducible. Safe for concurrent use.
func NewFairCoin(seed uint64) Coin {
	return &fairCoin{rng: rand.New(rand.NewSource(seed))}
}

func (c *fairCoin) Flip() Move {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rng.Uint64()&1 == 0 {
		return Heads
	}
	return Tails
}
