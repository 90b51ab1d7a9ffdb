package searcher

import (
	"math"
	"time"
)

// DecayRate discounts rewards found later in simulated time, applied once
// per DecayTicks elapsed ticks.
const (
	DecayRate  = 0.99
	DecayTicks = 10.0
)

// decay is the discount for an outcome reached elapsed ticks after the root.
func decay(elapsed int) float64 {
	return math.Pow(DecayRate, float64(elapsed)/DecayTicks)
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// Clock is the time source polled for the deadline.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }
