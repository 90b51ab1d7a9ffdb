package game

import "errors"

const (
	// Neutral owns resources
	Neutral = -1
	// NoWinner is reported while the game runs or when it ends in a draw
	NoWinner = -1
)

var (
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrNotOwner      = errors.New("unit is not owned by the issuing player")
	ErrUnitBusy      = errors.New("unit already has an assigned action")
	ErrInvalidAction = errors.New("action is not legal for the unit")
)

// State is what the searcher needs from a game simulation. Implementations
// must return deep copies from Clone: mutating a clone never affects the
// original or any sibling clone.
type State interface {
	Clone() State
	// IsActionable reports whether the player has at least one idle unit
	IsActionable(player int) bool
	// IsComplete reports whether every unit has an assigned action for this tick
	IsComplete() bool
	// Cycle advances one tick and reports whether the game is over
	Cycle() (gameOver bool)
	GameOver() bool
	Issue(action PlayerAction) error
	Time() int
	Width() int
	Height() int
	Winner() int
	Units() []Unit
	Resources(player int) int
	// UnitActions lists the legal actions of an idle unit, nil otherwise
	UnitActions(unitID int) []UnitAction
	UnitType(unitID int) (UnitType, bool)
}

// Policy is the baseline decision source used to play out rollouts and as
// the fallback decision when the search yields nothing.
type Policy interface {
	ActionFor(player int, state State) (PlayerAction, error)
}

// Evaluate scores a state from self's perspective; higher is better for self.
type Evaluate func(self, opponent int, state State) float64

// Opponent returns the other side of a two-player game.
func Opponent(player int) int {
	return 1 - player
}
