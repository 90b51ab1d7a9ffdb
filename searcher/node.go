package searcher

import (
	"errors"
	"fmt"
	"math"

	"skirmish/game"
)

var errNotChild = errors.New("node is not an immediate child")

// node owns its children and the state snapshot it represents. The parent
// link is only followed during backup.
type node struct {
	parent   *node
	children []*node
	owner    int
	opponent int
	state    game.State
	// action is what the owner issued on the edge from the parent, response
	// what the baseline answered for the opponent
	action   game.PlayerAction
	response game.PlayerAction
	untried  []game.PlayerAction
	expanded bool
	score    float64
	visits   int
	depth    int
}

func newRoot(owner, opponent int, state game.State) *node {
	return &node{
		owner:    owner,
		opponent: opponent,
		state:    state,
	}
}

// SelectOrExpand descends from n, materialising exactly one untried action
// as a new child at the first node that still has one. Fully expanded nodes
// are traversed through their best UCB1 child. Returns nil when the deadline
// passes, the depth limit is reached or neither player can act.
func (n *node) SelectOrExpand(s *search) (*node, error) {
	current := n
	for {
		if s.expired() || current.depth >= s.maxDepth {
			return nil, nil
		}
		if current.state.GameOver() ||
			(!current.state.IsActionable(current.owner) && !current.state.IsActionable(current.opponent)) {
			return nil, nil
		}

		if !current.expanded {
			current.untried = s.candidates(current.state)
			current.expanded = true
		}
		if len(current.untried) > 0 {
			return current.expand(s)
		}
		if len(current.children) == 0 {
			return nil, nil
		}
		current = current.selectChild(s.exploration)
	}
}

func (n *node) expand(s *search) (*node, error) {
	action := n.untried[0]
	n.untried = n.untried[1:]

	state := n.state.Clone()
	if err := state.Issue(action); err != nil {
		return nil, fmt.Errorf("failed to expand %s at depth %d: %w", action, n.depth, err)
	}
	response, err := s.respond(state)
	if err != nil {
		return nil, err
	}
	if err := s.advance(state); err != nil {
		return nil, err
	}

	child := &node{
		parent:   n,
		owner:    n.owner,
		opponent: n.opponent,
		state:    state,
		action:   action,
		response: response,
		depth:    n.depth + 1,
	}
	n.children = append(n.children, child)
	s.metrics.AddExpansion(child.depth)
	return child, nil
}

// selectChild returns the child maximising UCB1. Unvisited children win
// outright, the first one in insertion order on ties.
func (n *node) selectChild(c float64) *node {
	normalizer := c * c * math.Log(float64(n.visits))

	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := ucb1(child.score, child.visits, normalizer)
		if best == nil || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// BestChild returns the most visited child, breaking ties by the higher
// cumulative score and then by insertion order.
func (n *node) BestChild() *node {
	var best *node
	for _, child := range n.children {
		if best == nil ||
			child.visits > best.visits ||
			(child.visits == best.visits && child.score > best.score) {
			best = child
		}
	}
	return best
}

func (n *node) AddScore(v float64) {
	n.score += v
}

func (n *node) IncrementVisitCount() {
	n.visits++
}

func (n *node) Parent() *node {
	return n.parent
}

func (n *node) Children() []*node {
	return n.children
}

// GameState returns the node's own snapshot; callers clone before mutating.
func (n *node) GameState() game.State {
	return n.state
}

func (n *node) Visits() int {
	return n.visits
}

func (n *node) Score() float64 {
	return n.score
}

// AverageScore is undefined without visits and reported as +Inf so that
// unvisited nodes sort first.
func (n *node) AverageScore() float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}
	return n.score / float64(n.visits)
}

// ActionTowardChild returns the owner's action on the edge to child.
func (n *node) ActionTowardChild(child *node) (game.PlayerAction, error) {
	if child == nil || child.parent != n {
		return game.PlayerAction{}, errNotChild
	}
	return child.action, nil
}

// backup adds the score and a visit to every node from n up to the root.
func backup(n *node, score float64) {
	for node := n; node != nil; node = node.Parent() {
		node.AddScore(score)
		node.IncrementVisitCount()
	}
}
