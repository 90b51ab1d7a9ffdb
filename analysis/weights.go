package analysis

import "fmt"

// Weights biases which legal actions are expanded first. Only the relative
// magnitudes matter.
type Weights struct {
	Harvest       float64
	MoveToHarvest float64
	Attack        float64
	MoveToEnemy   float64
	Produce       float64
	// Visibility is the distance within which an enemy unit counts as seen
	Visibility int
}

func (w Weights) String() string {
	return fmt.Sprintf("{harvest=%g moveToHarvest=%g attack=%g moveToEnemy=%g produce=%g visibility=%d}",
		w.Harvest, w.MoveToHarvest, w.Attack, w.MoveToEnemy, w.Produce, w.Visibility)
}

// HalfMapDistance is the distance from a corner of the board to its centre,
// used as the radius of "local" resources.
func HalfMapDistance(width, height int) int {
	return (width+height)/2 + 1
}

// SetWeights maps the game time to the weighting of its bracket. Each
// bracket includes its lower bound.
func SetWeights(time, halfMapDistance int) Weights {
	switch {
	case time < 100:
		return Weights{Harvest: 100, MoveToHarvest: 20, Attack: 70, MoveToEnemy: 0, Produce: 0, Visibility: 6}
	case time < 500:
		return Weights{Harvest: 80, MoveToHarvest: 15, Attack: 80, MoveToEnemy: 5, Produce: 100, Visibility: 8}
	case time < 800:
		return Weights{Harvest: 60, MoveToHarvest: 10, Attack: 90, MoveToEnemy: 20, Produce: 70, Visibility: halfMapDistance}
	case time < 1200:
		return Weights{Harvest: 20, MoveToHarvest: 0, Attack: 100, MoveToEnemy: 15, Produce: 20, Visibility: 2 * halfMapDistance}
	case time < 2000:
		return Weights{Harvest: 5, MoveToHarvest: 0, Attack: 100, MoveToEnemy: 10, Produce: 0, Visibility: 2 * halfMapDistance}
	default:
		return Weights{Harvest: 0, MoveToHarvest: 0, Attack: 100, MoveToEnemy: 10, Produce: 0, Visibility: 2 * halfMapDistance}
	}
}
