package game

import "math"

const (
	resourceWeight  = 20.0
	unitBonusWeight = 40.0
)

// EvaluateSqrt tallies each player's material (stored and carried resources,
// and unit cost scaled by the square root of remaining health) to produce a
// score between -1 and 1 from self's perspective.
func EvaluateSqrt(self, opponent int, s State) float64 {
	return normalize(material(self, s), material(opponent, s))
}

// EvaluateUnits only counts unit value, ignoring the economy.
func EvaluateUnits(self, opponent int, s State) float64 {
	return normalize(unitValue(self, s), unitValue(opponent, s))
}

func material(player int, s State) float64 {
	score := float64(s.Resources(player)) * resourceWeight
	for _, u := range s.Units() {
		if u.Player == player {
			score += float64(u.Resources) * resourceWeight
		}
	}
	return score + unitValue(player, s)
}

func unitValue(player int, s State) float64 {
	score := 0.0
	for _, u := range s.Units() {
		if u.Player != player {
			continue
		}
		ut, ok := LookupUnitType(u.Type)
		if !ok || ut.HP == 0 {
			continue
		}
		score += float64(ut.Cost) * unitBonusWeight * math.Sqrt(float64(u.HP)/float64(ut.HP))
	}
	return score
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
