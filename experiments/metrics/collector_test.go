package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting iterations and rollouts", func(t *testing.T) {
		c := NewCollector()
		c.Start(2, 1.4)

		c.AddIteration()
		c.AddIteration()
		c.AddRollout(5)
		c.AddRollout(3)
		c.AddRollout(0)

		got := c.Complete()
		require.Equal(t, 2, got.Trees)
		require.Equal(t, 1.4, got.Exploration)
		require.Equal(t, 2, got.Iterations)
		require.Equal(t, 3, got.Rollouts)
		require.Equal(t, 8, got.RolloutMoves)
		require.GreaterOrEqual(t, got.Duration.Nanoseconds(), int64(0))
	})

	t.Run("resetting counters on Start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1.0)
		c.AddIteration()
		c.Complete()

		c.Start(1, 1.0)
		got := c.Complete()
		require.Zero(t, got.Iterations)
	})

	t.Run("counting from concurrent trees without lost updates", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 1.4)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddIteration()
					c.AddRollout(1)
				}
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, 400, got.Iterations)
		require.Equal(t, 400, got.Rollouts)
		require.Equal(t, 400, got.RolloutMoves)
	})
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start(1, 1.4)
	c.AddIteration()
	c.AddRollout(3)
	require.Equal(t, SearchMetric{}, c.Complete())
}
