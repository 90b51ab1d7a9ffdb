package searcher

import (
	"fmt"
	"time"

	"skirmish/analysis"
	"skirmish/experiments/metrics"
	"skirmish/game"
	"skirmish/meta"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

// MCTS decides a player action by UCT search within a wall-clock budget. It
// is not safe for concurrent use; Clone one per goroutine.
type MCTS struct {
	duration     time.Duration
	maxDepth     int
	playouts     int
	averaged     bool
	exploration  float64
	branching    int
	advanceTicks int
	evaluate     game.Evaluate
	newBaseline  func() game.Policy
	baseline     game.Policy
	clock        Clock
	withMetrics  bool
	metrics      metrics.Collector
	// totalVisits counts the episodes of the last decision
	totalVisits int
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

func WithPlayouts(playouts int) Option {
	return func(m *MCTS) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

// WithAveragedPlayouts scores every expansion by the mean of several
// rollouts instead of a single one.
func WithAveragedPlayouts() Option {
	return func(m *MCTS) {
		m.averaged = true
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithBranching(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.branching = n
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithBaseline sets the factory of the policy used for rollouts, opponent
// responses and the fallback action.
func WithBaseline(newBaseline func() game.Policy) Option {
	return func(m *MCTS) {
		if newBaseline != nil {
			m.newBaseline = newBaseline
		}
	}
}

// WithSeed makes the default baseline reproducible.
func WithSeed(seed uint64) Option {
	return WithBaseline(func() game.Policy { return game.NewRandomBiased(seed) })
}

func WithClock(clock Clock) Option {
	return func(m *MCTS) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.withMetrics = true
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:     meta.SimulationTime,
		maxDepth:     meta.MaxTreeDepth,
		playouts:     meta.SimulationPlayouts,
		exploration:  meta.Exploration,
		branching:    meta.MaxBranching,
		advanceTicks: meta.MaxAdvanceTicks,
		evaluate:     game.EvaluateSqrt,
		newBaseline: func() game.Policy {
			return game.NewRandomBiased(uint64(time.Now().UnixNano()))
		},
		clock:   wallClock{},
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	m.baseline = m.newBaseline()
	return m
}

// Clone returns an MCTS with the same configuration and fresh per-call state.
func (m *MCTS) Clone() *MCTS {
	clone := *m
	if m.withMetrics {
		clone.metrics = metrics.NewCollector()
	}
	clone.Reset()
	return &clone
}

// Reset prepares the MCTS for a new game.
func (m *MCTS) Reset() {
	m.ResetSearch()
}

// ResetSearch clears the counters of the last decision and starts the
// baseline over.
func (m *MCTS) ResetSearch() {
	m.totalVisits = 0
	m.baseline = m.newBaseline()
}

// TotalVisits is the number of episodes run by the last decision.
func (m *MCTS) TotalVisits() int {
	return m.totalVisits
}

func (m *MCTS) Decide(player int, state game.State) (game.PlayerAction, error) {
	action, _, err := m.DecideWithMetrics(player, state)
	return action, err
}

// DecideWithMetrics searches from state until the time budget runs out and
// returns the action toward the most visited child of the root. Without a
// usable tree the baseline's action is returned instead.
func (m *MCTS) DecideWithMetrics(player int, state game.State) (game.PlayerAction, metrics.SearchMetric, error) {
	if !state.IsActionable(player) {
		return game.PlayerAction{}, metrics.SearchMetric{}, nil
	}

	m.ResetSearch()
	s := m.newSearch(player, state)
	m.metrics.Start(s.analyzer.Weights().String())

	root := newRoot(s.owner, s.opponent, state.Clone())
	if err := m.grow(s, root); err != nil {
		return game.PlayerAction{}, metrics.SearchMetric{}, fmt.Errorf("search failed at tick %d: %w", state.Time(), err)
	}
	m.metrics.SetRootVisits(root.Visits())

	best := root.BestChild()
	if best == nil {
		action, err := m.fallback(player, state)
		return action, m.metrics.Complete(), err
	}

	action, err := root.ActionTowardChild(best)
	if err != nil {
		return game.PlayerAction{}, metrics.SearchMetric{}, err
	}
	log.Debug().
		Int("player", player).
		Int("time", state.Time()).
		Int("episodes", m.totalVisits).
		Int("children", len(root.Children())).
		Int("visits", best.Visits()).
		Float64("score", best.AverageScore()).
		Msgf("decided %s", action)
	return action, m.metrics.Complete(), nil
}

// grow runs select, simulate and backup episodes on root until the deadline.
func (m *MCTS) grow(s *search, root *node) error {
	for !s.expired() {
		leaf, err := root.SelectOrExpand(s)
		if err != nil {
			return err
		}
		if leaf == nil {
			m.metrics.AddStall()
			continue
		}
		// Expansion may have used up the budget
		if s.expired() {
			break
		}

		score, err := s.simulate(leaf)
		if err != nil {
			return err
		}
		backup(leaf, score)
		m.totalVisits++
		m.metrics.AddEpisode()
	}
	return nil
}

func (m *MCTS) newSearch(player int, state game.State) *search {
	analyzer := analysis.New(player, state.Width(), state.Height())
	analyzer.Analyse(state)
	analyzer.SetWeights(state.Time())

	return &search{
		owner:        player,
		opponent:     game.Opponent(player),
		rootTime:     state.Time(),
		deadline:     m.clock.Now().Add(m.duration),
		clock:        m.clock,
		maxDepth:     m.maxDepth,
		branching:    m.branching,
		advanceTicks: m.advanceTicks,
		rolloutTicks: int(m.duration.Milliseconds()),
		playouts:     m.playouts,
		averaged:     m.averaged,
		exploration:  m.exploration,
		analyzer:     analyzer,
		policy:       m.baseline,
		evaluate:     m.evaluate,
		metrics:      m.metrics,
	}
}

// fallback answers with the baseline when the search produced no child.
func (m *MCTS) fallback(player int, state game.State) (game.PlayerAction, error) {
	m.metrics.SetFallback(true)
	log.Warn().Int("player", player).Int("time", state.Time()).Msg("search produced no move, falling back to baseline")

	action, err := m.baseline.ActionFor(player, state)
	if err != nil {
		return game.PlayerAction{}, fmt.Errorf("fallback failed for player %d: %w", player, err)
	}
	return action, nil
}
