package game

import (
	"golang.org/x/exp/rand"
)

// biasedWeight favours the actions that change the material balance
const biasedWeight = 5.0

// RandomBiased picks a random legal action for every idle unit, with
// attack, harvest and return five times as likely as anything else.
type RandomBiased struct {
	rng *rand.Rand
}

func NewRandomBiased(seed uint64) *RandomBiased {
	return &RandomBiased{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomBiased) ActionFor(player int, state State) (PlayerAction, error) {
	var action PlayerAction
	reserved := NewReservations(state, player)

	for _, u := range IdleUnits(state, player) {
		candidates := []UnitAction{}
		weights := []float64{}
		for _, a := range state.UnitActions(u.ID) {
			if !reserved.Allows(u, a) {
				continue
			}
			w := 1.0
			switch a.Type {
			case AttackAction, HarvestAction, ReturnAction:
				w = biasedWeight
			}
			candidates = append(candidates, a)
			weights = append(weights, w)
		}
		if len(candidates) == 0 {
			continue
		}

		chosen := candidates[WeightedIndex(p.rng, weights)]
		reserved.Reserve(u, chosen)
		action.Add(u.ID, chosen)
	}
	return action, nil
}

// WeightedIndex draws an index with probability proportional to its weight.
// The last index absorbs rounding at the top of the range.
func WeightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

// Passive makes every idle unit wait.
type Passive struct{}

func (Passive) ActionFor(player int, state State) (PlayerAction, error) {
	var action PlayerAction
	for _, u := range IdleUnits(state, player) {
		action.Add(u.ID, Wait())
	}
	return action, nil
}
