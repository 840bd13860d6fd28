package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedCoin replays a fixed flip sequence, cycling when exhausted.
type scriptedCoin struct {
	flips []Move
	next  int
}

func (c *scriptedCoin) Flip() Move {
	m := c.flips[c.next%len(c.flips)]
	c.next++
	return m
}

func TestNewGameState(t *testing.T) {
	t.Run("rejecting non-positive round count", func(t *testing.T) {
		for _, rounds := range []int{0, -1} {
			_, err := NewGameState(rounds, NewFairCoin(1), NewAlternatingRules())
			require.ErrorIs(t, err, ErrInvalidConfig)
		}
	})

	t.Run("rejecting nil coin", func(t *testing.T) {
		_, err := NewGameState(3, nil, NewAlternatingRules())
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejecting nil rules", func(t *testing.T) {
		_, err := NewGameState(3, NewFairCoin(1), nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("starting at round zero with zero scores", func(t *testing.T) {
		gs, err := NewGameState(5, NewFairCoin(1), NewAlternatingRules())
		require.NoError(t, err)
		require.Equal(t, 0, gs.Round)
		require.Equal(t, 0, gs.ScoreA)
		require.Equal(t, 0, gs.ScoreB)
		require.Equal(t, SideA, gs.Player(), "Side A should call round 0")
		require.False(t, gs.IsTerminal())
		require.Empty(t, gs.Winner(), "No winner before the last round")
	})
}

func TestGameStatePlay(t *testing.T) {
	t.Run("scoring the caller on a matching call", func(t *testing.T) {
		gs, err := NewGameState(2, &scriptedCoin{flips: []Move{Heads}}, NewAlternatingRules())
		require.NoError(t, err)

		got, err := gs.Play(Heads)
		require.NoError(t, err)

		next := got.(GameState)
		require.Equal(t, 1, next.Round)
		require.Equal(t, 1, next.ScoreA, "Caller A called the flip and scores")
		require.Equal(t, 0, next.ScoreB)
	})

	t.Run("scoring the opponent on a missed call", func(t *testing.T) {
		gs, err := NewGameState(2, &scriptedCoin{flips: []Move{Tails}}, NewAlternatingRules())
		require.NoError(t, err)

		got, err := gs.Play(Heads)
		require.NoError(t, err)

		next := got.(GameState)
		require.Equal(t, 1, next.Round)
		require.Equal(t, 0, next.ScoreA)
		require.Equal(t, 1, next.ScoreB, "B scores when A's call misses")
	})

	t.Run("leaving the original state untouched", func(t *testing.T) {
		gs, err := NewGameState(2, &scriptedCoin{flips: []Move{Heads}}, NewAlternatingRules())
		require.NoError(t, err)

		_, err = gs.Play(Heads)
		require.NoError(t, err)

		require.Equal(t, 0, gs.Round, "Play should not mutate the receiver")
		require.Equal(t, 0, gs.ScoreA)
	})

	t.Run("rejecting a move on a terminal state", func(t *testing.T) {
		gs, err := NewGameState(1, &scriptedCoin{flips: []Move{Heads}}, NewAlternatingRules())
		require.NoError(t, err)

		got, err := gs.Play(Heads)
		require.NoError(t, err)
		require.True(t, got.IsTerminal())

		_, err = got.Play(Heads)
		require.ErrorIs(t, err, ErrTerminalState, "Terminal state must reject further moves")
	})

	t.Run("holding score sum equal to round on every reachable state", func(t *testing.T) {
		var state State
		gs, err := NewGameState(20, NewFairCoin(42), NewAlternatingRules())
		require.NoError(t, err)
		state = gs

		coin := NewFairCoin(7) // Rollout policy for the calls
		for !state.IsTerminal() {
			cur := state.(GameState)
			require.Equal(t, cur.Round, cur.ScoreA+cur.ScoreB)
			require.LessOrEqual(t, cur.Round, cur.TotalRounds)

			state, err = state.Play(coin.Flip())
			require.NoError(t, err)
		}
		end := state.(GameState)
		require.Equal(t, end.TotalRounds, end.ScoreA+end.ScoreB)
	})
}

func TestGameStateLegalMoves(t *testing.T) {
	t.Run("offering both calls while rounds remain", func(t *testing.T) {
		gs, err := NewGameState(1, NewFairCoin(1), NewAlternatingRules())
		require.NoError(t, err)
		require.Equal(t, []Move{Heads, Tails}, gs.LegalMoves())
	})

	t.Run("offering nothing on a terminal state", func(t *testing.T) {
		gs, err := NewGameState(1, &scriptedCoin{flips: []Move{Heads}}, NewAlternatingRules())
		require.NoError(t, err)
		got, err := gs.Play(Heads)
		require.NoError(t, err)
		require.Empty(t, got.LegalMoves())
	})
}

func TestGameStateWinner(t *testing.T) {
	t.Run("reporting the leading side", func(t *testing.T) {
		gs := GameState{Round: 3, TotalRounds: 3, ScoreA: 2, ScoreB: 1}
		require.Equal(t, SideA, gs.Winner())

		gs = GameState{Round: 3, TotalRounds: 3, ScoreA: 0, ScoreB: 3}
		require.Equal(t, SideB, gs.Winner())
	})

	t.Run("reporting a tie on equal scores", func(t *testing.T) {
		gs := GameState{Round: 2, TotalRounds: 2, ScoreA: 1, ScoreB: 1}
		require.Equal(t, Tie, gs.Winner())
	})
}

func TestRules(t *testing.T) {
	t.Run("alternating caller by round parity", func(t *testing.T) {
		rules := NewAlternatingRules()
		require.Equal(t, SideA, rules.CallerFor(0))
		require.Equal(t, SideB, rules.CallerFor(1))
		require.Equal(t, SideA, rules.CallerFor(2))
	})

	t.Run("fixed caller for every round", func(t *testing.T) {
		rules := NewFixedRules(SideB)
		for round := 0; round < 4; round++ {
			require.Equal(t, SideB, rules.CallerFor(round))
		}
	})
}

func TestFairCoin(t *testing.T) {
	t.Run("reproducing the same sequence for the same seed", func(t *testing.T) {
		c1 := NewFairCoin(99)
		c2 := NewFairCoin(99)
		for i := 0; i < 32; i++ {
			require.Equal(t, c1.Flip(), c2.Flip())
		}
	})

	t.Run("producing both faces", func(t *testing.T) {
		coin := NewFairCoin(1)
		seen := map[Move]bool{}
		for i := 0; i < 64; i++ {
			seen[coin.Flip()] = true
		}
		require.True(t, seen[Heads])
		require.True(t, seen[Tails])
	})
}
