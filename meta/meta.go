// meta/meta.go
package meta

import "time"

// SimulationTime is the wall-clock budget of one decision. It also sets how
// many game ticks a rollout plays beyond the simulated node.
const SimulationTime = 100 * time.Millisecond

// MaxTreeDepth bounds how deep selection descends before forcing an evaluation.
const MaxTreeDepth = 10

// SimulationPlayouts is the number of rollouts averaged per evaluation when
// averaged playouts are enabled.
const SimulationPlayouts = 5

// Exploration is the UCB1 exploration constant.
const Exploration = 0.05

// MaxBranching caps the candidate player actions a node expands.
const MaxBranching = 8

// MaxAdvanceTicks bounds how far an expansion fast-forwards waiting for the
// searching player to become actionable again.
const MaxAdvanceTicks = 200

// MaxCycles ends a game that has not been decided.
const MaxCycles = 3000
