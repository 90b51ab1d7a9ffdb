// Package analysis extracts static features of a game state and turns them
// into priorities over the legal actions of the searching player.
package analysis

import (
	"math"

	"skirmish/game"
)

// Result holds the features extracted by Analyse.
type Result struct {
	OwnBases  []game.Unit
	Workers   []game.Unit
	Army      []game.Unit
	Enemies   []game.Unit
	Resources []game.Unit
	// LocalResources are the resource fields within half a map of an own base
	LocalResources []game.Unit
	// ResourceDistance maps a worker to its distance to the nearest local resource
	ResourceDistance map[int]int
	// BaseDistance maps a worker to its distance to the nearest own base
	BaseDistance map[int]int
}

// Analyzer is created once per decision and is immutable once its weights
// are set.
type Analyzer struct {
	player          int
	halfMapDistance int
	weights         Weights
	result          Result
}

func New(player, width, height int) *Analyzer {
	return &Analyzer{
		player:          player,
		halfMapDistance: HalfMapDistance(width, height),
	}
}

func (a *Analyzer) HalfMapDistance() int {
	return a.halfMapDistance
}

// SetWeights selects the weighting bracket for the game time.
func (a *Analyzer) SetWeights(time int) Weights {
	a.weights = SetWeights(time, a.halfMapDistance)
	return a.weights
}

func (a *Analyzer) Weights() Weights {
	return a.weights
}

func (a *Analyzer) Result() Result {
	return a.result
}

// Analyse recomputes the features of the state from scratch.
func (a *Analyzer) Analyse(state game.State) Result {
	r := Result{
		ResourceDistance: make(map[int]int),
		BaseDistance:     make(map[int]int),
	}

	for _, u := range state.Units() {
		switch {
		case u.Player == game.Neutral:
			r.Resources = append(r.Resources, u)
		case u.Player != a.player:
			r.Enemies = append(r.Enemies, u)
		case u.Type == game.BaseType:
			r.OwnBases = append(r.OwnBases, u)
		case u.Type == game.WorkerType:
			r.Workers = append(r.Workers, u)
		default:
			r.Army = append(r.Army, u)
		}
	}

	for _, res := range r.Resources {
		if _, d := nearest(res.X, res.Y, r.OwnBases); d <= a.halfMapDistance {
			r.LocalResources = append(r.LocalResources, res)
		}
	}
	// Without a base every field is fair game
	if len(r.OwnBases) == 0 {
		r.LocalResources = r.Resources
	}

	for _, w := range r.Workers {
		if _, d := nearest(w.X, w.Y, r.LocalResources); d < math.MaxInt {
			r.ResourceDistance[w.ID] = d
		}
		if _, d := nearest(w.X, w.Y, r.OwnBases); d < math.MaxInt {
			r.BaseDistance[w.ID] = d
		}
	}

	a.result = r
	return r
}

// Priority scores a legal unit action with the current weights against the
// analysed state. Every action keeps a priority of at least one.
func (a *Analyzer) Priority(u game.Unit, action game.UnitAction) float64 {
	return a.priority(a.result, u, action)
}

func (a *Analyzer) priority(r Result, u game.Unit, action game.UnitAction) float64 {
	w := a.weights
	switch action.Type {
	case game.HarvestAction, game.ReturnAction:
		return 1 + w.Harvest
	case game.AttackAction:
		return 1 + w.Attack
	case game.ProduceAction:
		return 1 + w.Produce
	case game.MoveAction:
		return 1 + a.movePriority(r, u, action)
	default:
		return 1
	}
}

func (a *Analyzer) movePriority(r Result, u game.Unit, action game.UnitAction) float64 {
	dx, dy := action.Direction.Offset()
	x, y := u.X+dx, u.Y+dy
	priority := 0.0

	if u.Type == game.WorkerType {
		targets := r.LocalResources
		if u.Resources > 0 {
			targets = r.OwnBases
		}
		if closer(u, x, y, targets, math.MaxInt) {
			priority = math.Max(priority, a.weights.MoveToHarvest)
		}
	}
	if closer(u, x, y, r.Enemies, a.weights.Visibility) {
		priority = math.Max(priority, a.weights.MoveToEnemy)
	}
	return priority
}

// track follows the analysed targets into a later state. Enemies and own
// bases are taken where they now stand; local resource fields stay the ones
// Analyse found, minus those since exhausted.
func (a *Analyzer) track(state game.State) Result {
	r := a.result
	current := map[int]game.Unit{}
	r.Enemies, r.OwnBases = nil, nil
	for _, u := range state.Units() {
		current[u.ID] = u
		switch {
		case u.Player == game.Neutral:
		case u.Player != a.player:
			r.Enemies = append(r.Enemies, u)
		case u.Type == game.BaseType:
			r.OwnBases = append(r.OwnBases, u)
		}
	}
	r.LocalResources = nil
	for _, res := range a.result.LocalResources {
		if u, ok := current[res.ID]; ok {
			r.LocalResources = append(r.LocalResources, u)
		}
	}
	return r
}

// closer reports whether stepping to (x, y) gets the unit nearer to the
// nearest target within the cutoff.
func closer(u game.Unit, x, y int, targets []game.Unit, cutoff int) bool {
	target, d := nearest(u.X, u.Y, targets)
	if target == nil || d > cutoff {
		return false
	}
	return distance(x, y, target.X, target.Y) < d
}

// VisibleEnemies returns the enemies within the visibility cutoff of any own
// unit.
func (a *Analyzer) VisibleEnemies() []game.Unit {
	own := append(append(append([]game.Unit{}, a.result.OwnBases...), a.result.Workers...), a.result.Army...)
	visible := []game.Unit{}
	for _, e := range a.result.Enemies {
		if _, d := nearest(e.X, e.Y, own); d <= a.weights.Visibility {
			visible = append(visible, e)
		}
	}
	return visible
}

func nearest(x, y int, units []game.Unit) (*game.Unit, int) {
	var best *game.Unit
	bestDistance := math.MaxInt
	for i := range units {
		if d := distance(x, y, units[i].X, units[i].Y); d < bestDistance {
			best = &units[i]
			bestDistance = d
		}
	}
	return best, bestDistance
}

func distance(x1, y1, x2, y2 int) int {
	dx, dy := x1-x2, y1-y2
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
