package analysis

import (
	"sort"

	"skirmish/game"

	"golang.org/x/exp/rand"
)

// samplingAttempts bounds the draws per requested candidate
const samplingAttempts = 4

// Candidate is a player action with the summed priority of its unit actions.
type Candidate struct {
	Action   game.PlayerAction
	Priority float64
}

type ranked struct {
	action   game.UnitAction
	priority float64
}

// picker chooses among the actions of unit i still allowed by the
// reservations.
type picker func(i int, allowed []ranked) int

// Candidates returns at most n distinct player actions for the player's idle
// units, the greedy combination first and the rest ordered by priority.
//
// When every combination fits in n they are all returned. Otherwise each
// single-unit deviation from the greedy combination comes next, and what room
// is left is filled by weighted sampling seeded from the state, so the result
// is reproducible.
func (a *Analyzer) Candidates(state game.State, player, n int) []Candidate {
	units := game.IdleUnits(state, player)
	if len(units) == 0 || n <= 0 {
		return nil
	}

	view := a.track(state)
	options := make([][]ranked, len(units))
	for i, u := range units {
		for _, action := range state.UnitActions(u.ID) {
			options[i] = append(options[i], ranked{action: action, priority: a.priority(view, u, action)})
		}
		sort.SliceStable(options[i], func(x, y int) bool {
			return options[i][x].priority > options[i][y].priority
		})
	}

	greedy := assemble(state, player, units, options, func(int, []ranked) int { return 0 })
	seen := map[string]bool{greedy.Action.Key(): true}
	rest := []Candidate{}
	add := func(c Candidate) {
		if key := c.Action.Key(); !seen[key] {
			seen[key] = true
			rest = append(rest, c)
		}
	}

	if combinations(options, n) <= n {
		for _, c := range enumerate(state, player, units, options) {
			add(c)
		}
		return append([]Candidate{greedy}, byPriority(rest)...)
	}

	for _, c := range byPriority(deviations(state, player, units, options)) {
		if len(rest) >= n-1 {
			break
		}
		add(c)
	}

	rng := rand.New(rand.NewSource(uint64(state.Time())*2 + uint64(player)))
	sample := func(_ int, allowed []ranked) int {
		weights := make([]float64, len(allowed))
		for i, r := range allowed {
			weights[i] = r.priority
		}
		return game.WeightedIndex(rng, weights)
	}
	for attempt := 0; attempt < n*samplingAttempts && len(rest) < n-1; attempt++ {
		add(assemble(state, player, units, options, sample))
	}

	return append([]Candidate{greedy}, byPriority(rest)...)
}

// combinations is the number of unit action combinations before
// reservations, counted up to just past limit.
func combinations(options [][]ranked, limit int) int {
	total := 1
	for _, o := range options {
		total *= len(o)
		if total > limit {
			return limit + 1
		}
	}
	return total
}

// enumerate lists every combination the reservations accept, the first
// unit varying slowest.
func enumerate(state game.State, player int, units []game.Unit, options [][]ranked) []Candidate {
	var out []Candidate
	choice := make([]int, len(units))
	for {
		if c, ok := assembleChoice(state, player, units, options, choice); ok {
			out = append(out, c)
		}
		i := len(choice) - 1
		for ; i >= 0; i-- {
			choice[i]++
			if choice[i] < len(options[i]) {
				break
			}
			choice[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

func assembleChoice(state game.State, player int, units []game.Unit, options [][]ranked, choice []int) (Candidate, bool) {
	var c Candidate
	reserved := game.NewReservations(state, player)
	for i, u := range units {
		chosen := options[i][choice[i]]
		if !reserved.Allows(u, chosen.action) {
			return Candidate{}, false
		}
		reserved.Reserve(u, chosen.action)
		c.Action.Add(u.ID, chosen.action)
		c.Priority += chosen.priority
	}
	return c, true
}

// deviations changes one unit's greedy choice at a time, once per other
// action of that unit.
func deviations(state game.State, player int, units []game.Unit, options [][]ranked) []Candidate {
	var out []Candidate
	for i := range units {
		for _, alternative := range options[i][1:] {
			unit, action := i, alternative.action
			out = append(out, assemble(state, player, units, options, func(j int, allowed []ranked) int {
				if j != unit {
					return 0
				}
				for k, r := range allowed {
					if r.action == action {
						return k
					}
				}
				return 0
			}))
		}
	}
	return out
}

// assemble builds one player action, letting pick choose among the unit
// actions still allowed by the reservations.
func assemble(state game.State, player int, units []game.Unit, options [][]ranked, pick picker) Candidate {
	var c Candidate
	reserved := game.NewReservations(state, player)
	for i, u := range units {
		allowed := make([]ranked, 0, len(options[i]))
		for _, r := range options[i] {
			if reserved.Allows(u, r.action) {
				allowed = append(allowed, r)
			}
		}
		if len(allowed) == 0 {
			continue
		}
		chosen := allowed[pick(i, allowed)]
		reserved.Reserve(u, chosen.action)
		c.Action.Add(u.ID, chosen.action)
		c.Priority += chosen.priority
	}
	return c
}

func byPriority(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	return candidates
}
