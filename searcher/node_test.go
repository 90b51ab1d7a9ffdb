package searcher

import (
	"math"
	"testing"
	"time"

	"skirmish/game"

	"github.com/stretchr/testify/require"
)

type steppingClock struct {
	now  time.Time
	step time.Duration
}

func newSteppingClock(step time.Duration) *steppingClock {
	return &steppingClock{now: time.Unix(0, 0), step: step}
}

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestSearch(t *testing.T, state game.State, player int, clock Clock, options ...Option) *search {
	t.Helper()
	options = append([]Option{
		WithClock(clock),
		WithBaseline(func() game.Policy { return game.Passive{} }),
	}, options...)
	return NewMCTS(options...).newSearch(player, state)
}

func TestUCB1(t *testing.T) {
	require.Equal(t, math.Inf(1), ucb1(5, 0, 1), "Unvisited nodes should score +Inf")
	require.InDelta(t, 0.5+math.Sqrt(0.25), ucb1(1, 2, 0.5), 1e-12)
}

func TestDecay(t *testing.T) {
	require.Equal(t, 1.0, decay(0))
	require.InDelta(t, 0.99, decay(10), 1e-12)
	for elapsed := 1; elapsed < 1000; elapsed++ {
		require.LessOrEqual(t, decay(elapsed), decay(elapsed-1), "Decay should not grow with elapsed time")
	}
}

func TestNodeSelectChild(t *testing.T) {
	t.Run("selecting the first unvisited child", func(t *testing.T) {
		visited := &node{score: 10, visits: 1}
		first := &node{}
		second := &node{}
		parent := &node{children: []*node{visited, first, second}, visits: 1}

		require.Same(t, first, parent.selectChild(0.05), "Unvisited child should win before any visited one")
	})

	t.Run("selecting the max UCB child", func(t *testing.T) {
		low := &node{score: 0, visits: 1}
		high := &node{score: 1, visits: 1}
		parent := &node{children: []*node{low, high}, visits: 2}

		require.Same(t, high, parent.selectChild(0.05))
	})

	t.Run("exploring a rarely visited child", func(t *testing.T) {
		often := &node{score: 60, visits: 100}
		rarely := &node{score: 0.5, visits: 1}
		parent := &node{children: []*node{often, rarely}, visits: 101}

		require.Same(t, often, parent.selectChild(0.05), "Small exploration should exploit")
		require.Same(t, rarely, parent.selectChild(2), "Large exploration should explore")
	})
}

func TestNodeBestChild(t *testing.T) {
	t.Run("most visits", func(t *testing.T) {
		a := &node{score: 5, visits: 2}
		b := &node{score: 1, visits: 3}
		parent := &node{children: []*node{a, b}}

		require.Same(t, b, parent.BestChild())
	})

	t.Run("ties broken by score", func(t *testing.T) {
		a := &node{score: 1, visits: 3}
		b := &node{score: 2, visits: 3}
		parent := &node{children: []*node{a, b}}

		require.Same(t, b, parent.BestChild())
	})

	t.Run("full ties keep insertion order", func(t *testing.T) {
		a := &node{score: 2, visits: 3}
		b := &node{score: 2, visits: 3}
		parent := &node{children: []*node{a, b}}

		require.Same(t, a, parent.BestChild())
	})

	t.Run("no children", func(t *testing.T) {
		require.Nil(t, (&node{}).BestChild())
	})
}

func TestBackup(t *testing.T) {
	root := &node{}
	child := &node{parent: root}
	grandChild := &node{parent: child}
	root.children = []*node{child}
	child.children = []*node{grandChild}

	backup(grandChild, 0.5)
	backup(child, -0.25)

	require.Equal(t, 2, root.Visits(), "Root should count every episode")
	require.Equal(t, 0.25, root.Score())
	require.Equal(t, 2, child.Visits())
	require.Equal(t, 1, grandChild.Visits())
	require.Equal(t, 0.5, grandChild.AverageScore())
	require.Equal(t, math.Inf(1), (&node{}).AverageScore())
}

func TestNodeActionTowardChild(t *testing.T) {
	var action game.PlayerAction
	action.Add(3, game.Wait())
	root := &node{}
	child := &node{parent: root, action: action}
	root.children = []*node{child}

	got, err := root.ActionTowardChild(child)
	require.NoError(t, err)
	require.Equal(t, action, got)

	_, err = child.ActionTowardChild(root)
	require.ErrorIs(t, err, errNotChild)
}

func TestNodeSelectOrExpand(t *testing.T) {
	gs, err := game.DefaultMap().NewState()
	require.NoError(t, err)

	t.Run("expanding one untried action", func(t *testing.T) {
		s := newTestSearch(t, gs, 0, newSteppingClock(0))
		root := newRoot(0, 1, gs.Clone())
		candidates := s.candidates(gs)

		child, err := root.SelectOrExpand(s)

		require.NoError(t, err)
		require.NotNil(t, child)
		require.Same(t, root, child.Parent())
		require.Equal(t, 1, child.depth)
		require.Equal(t, candidates[0], child.action, "Highest priority candidate should be expanded first")
		require.Len(t, root.Children(), 1)
		require.Len(t, root.untried, len(candidates)-1)
		require.True(t, child.GameState().IsActionable(0), "Child should advance until its owner can act")
		require.Greater(t, child.GameState().Time(), gs.Time())
		require.Equal(t, 0, root.GameState().Time(), "Parent state should not change")
		require.False(t, child.response.IsEmpty(), "Opponent should answer with the baseline")
	})

	t.Run("descending once the root is fully expanded", func(t *testing.T) {
		s := newTestSearch(t, gs, 0, newSteppingClock(0))
		root := newRoot(0, 1, gs.Clone())
		width := len(s.candidates(gs))
		for i := 0; i < width; i++ {
			child, err := root.SelectOrExpand(s)
			require.NoError(t, err)
			backup(child, 0)
		}
		require.Len(t, root.Children(), width)

		child, err := root.SelectOrExpand(s)

		require.NoError(t, err)
		require.Equal(t, 2, child.depth, "Fully expanded root should expand below its best child")
	})

	t.Run("stopping at the depth limit", func(t *testing.T) {
		s := newTestSearch(t, gs, 0, newSteppingClock(0), WithMaxDepth(1))
		root := newRoot(0, 1, gs.Clone())
		root.depth = 1

		child, err := root.SelectOrExpand(s)

		require.NoError(t, err)
		require.Nil(t, child)
	})

	t.Run("stopping after the deadline", func(t *testing.T) {
		s := newTestSearch(t, gs, 0, newSteppingClock(time.Hour))
		root := newRoot(0, 1, gs.Clone())

		child, err := root.SelectOrExpand(s)

		require.NoError(t, err)
		require.Nil(t, child)
		require.Empty(t, root.Children())
	})

	t.Run("stopping when nobody can act", func(t *testing.T) {
		busy := gs.Copy()
		for player := 0; player < 2; player++ {
			passive, err := game.Passive{}.ActionFor(player, busy)
			require.NoError(t, err)
			require.NoError(t, busy.Issue(passive))
		}
		s := newTestSearch(t, busy, 0, newSteppingClock(0))

		child, err := newRoot(0, 1, busy).SelectOrExpand(s)

		require.NoError(t, err)
		require.Nil(t, child)
	})
}
