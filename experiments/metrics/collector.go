package metrics

import (
	"sync/atomic"
	"time"

	"coinduel/game"
)

// SearchMetric describes one completed search (one move decision).
type SearchMetric struct {
	Trees        int
	Exploration  float64
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int
	Rollouts     int // Completed playouts to a terminal state
	RolloutMoves int // Total moves played across all rollouts
}

// MoveMetric ties a search to its step in a game.
type MoveMetric struct {
	Step   int
	Player game.Side
	Move   game.Move
	// WinProbability is the searched side's estimated chance of winning,
	// read off the chosen root child.
	WinProbability float64
	SearchMetric
}

// GameMetric summarizes one finished game.
type GameMetric struct {
	Winner      game.Side
	ScoreA      int
	ScoreB      int
	TotalRounds int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// AgentConfig identifies a search configuration under comparison.
type AgentConfig struct {
	ID          int
	Iterations  int
	Duration    time.Duration
	Trees       int
	Exploration float64
}

// Collector gathers counters during a search. Counters are atomic so
// root-parallel trees can share one collector.
type Collector interface {
	Start(trees int, exploration float64)
	AddIteration()
	AddRollout(moves int)
	Complete() SearchMetric
}

type collector struct {
	trees        int
	exploration  float64
	startTime    time.Time
	iterations   atomic.Int64
	rollouts     atomic.Int64
	rolloutMoves atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(trees int, exploration float64) {
	c.trees = trees
	c.exploration = exploration
	c.startTime = time.Now()
	c.iterations.Store(0)
	c.rollouts.Store(0)
	c.rolloutMoves.Store(0)
}

func (c *collector) AddIteration() {
	c.iterations.Add(1)
}

func (c *collector) AddRollout(moves int) {
	c.rollouts.Add(1)
	c.rolloutMoves.Add(int64(moves))
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Trees:        c.trees,
		Exploration:  c.exploration,
		StartTime:    c.startTime,
		Duration:     time.Since(c.startTime),
		Iterations:   int(c.iterations.Load()),
		Rollouts:     int(c.rollouts.Load()),
		RolloutMoves: int(c.rolloutMoves.Load()),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches that do not
// record metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (*dummyCollector) Start(int, float64) {}
func (*dummyCollector) AddIteration()      {}
func (*dummyCollector) AddRollout(int)     {}

func (*dummyCollector) Complete() SearchMetric { return SearchMetric{} }
