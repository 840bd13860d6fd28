package main

import (
	"flag"
	"os"
	"time"

	"coinduel/engine"
	"coinduel/experiments"
	"coinduel/game"
	"coinduel/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	rounds := flag.Int("rounds", 9, "Rounds per game")
	iterations := flag.Int("iterations", 1000, "Search iterations per move")
	duration := flag.Duration("duration", 0, "Soft search deadline per move (replaces -iterations when set)")
	trees := flag.Int("trees", 1, "Independent search trees (root parallelization)")
	exploration := flag.Float64("exploration", searcher.DefaultExploration, "UCB1 exploration constant")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the game coin and rollout policies")
	experiment := flag.Bool("experiment", false, "Run the iteration-ladder experiment instead of a single game")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *experiment {
		if err := experiments.RunIterationLadder(*seed); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	if err := runMatch(*rounds, *iterations, *duration, *trees, *exploration, *seed); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
}

// runMatch plays one game with an identically configured agent per side,
// each on its own seeded coin for the rollout policy.
func runMatch(rounds, iterations int, duration time.Duration, trees int, exploration float64, seed uint64) error {
	state, err := game.NewGameState(rounds, game.NewFairCoin(seed), game.NewAlternatingRules())
	if err != nil {
		return err
	}

	newAgent := func(agentSeed uint64) (*searcher.MCTS, error) {
		options := []searcher.Option{
			searcher.WithExploration(exploration),
			searcher.WithTrees(trees),
			searcher.WithMetrics(),
		}
		if duration > 0 {
			options = append(options, searcher.WithDuration(duration))
		} else {
			options = append(options, searcher.WithIterations(iterations))
		}
		return searcher.NewMCTS(game.NewFairCoin(agentSeed), options...)
	}

	agentA, err := newAgent(seed + 1)
	if err != nil {
		return err
	}
	agentB, err := newAgent(seed + 2)
	if err != nil {
		return err
	}

	e, err := engine.NewLocalEngine(state, map[game.Side]engine.Agent{
		game.SideA: agentA,
		game.SideB: agentB,
	})
	if err != nil {
		return err
	}

	_, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}

	log.Info().
		Dur("duration", gameMetric.Duration).
		Int("rounds", gameMetric.TotalRounds).
		Msg("match complete")
	return nil
}
