package game

import (
	"fmt"
	"strings"
)

// ActionType represents the kind of action a unit performs.
type ActionType int

const (
	WaitAction ActionType = iota
	MoveAction
	HarvestAction
	ReturnAction
	ProduceAction
	AttackAction
)

func (t ActionType) String() string {
	switch t {
	case WaitAction:
		return "wait"
	case MoveAction:
		return "move"
	case HarvestAction:
		return "harvest"
	case ReturnAction:
		return "return"
	case ProduceAction:
		return "produce"
	case AttackAction:
		return "attack"
	default:
		return fmt.Sprintf("action(%d)", int(t))
	}
}

// Direction of a move, harvest, return or produce action.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
	NoDirection
)

var directionOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Offset returns the (dx, dy) step of the direction.
func (d Direction) Offset() (int, int) {
	if d < Up || d > Left {
		return 0, 0
	}
	return directionOffsets[d][0], directionOffsets[d][1]
}

// UnitAction is a single action for one unit. Attack actions target a cell;
// produce actions name the unit type to build.
type UnitAction struct {
	Type      ActionType
	Direction Direction
	TargetX   int
	TargetY   int
	Produce   string
}

func (a UnitAction) String() string {
	switch a.Type {
	case AttackAction:
		return fmt.Sprintf("attack(%d,%d)", a.TargetX, a.TargetY)
	case ProduceAction:
		return fmt.Sprintf("produce(%s,%d)", a.Produce, a.Direction)
	case WaitAction:
		return "wait"
	default:
		return fmt.Sprintf("%s(%d)", a.Type, a.Direction)
	}
}

// Wait returns the idle action.
func Wait() UnitAction {
	return UnitAction{Type: WaitAction, Direction: NoDirection}
}

// UnitActionPair binds an action to the unit that performs it.
type UnitActionPair struct {
	UnitID int
	Action UnitAction
}

// PlayerAction is the set of unit actions a player issues in one tick. The
// zero value is the no-op.
type PlayerAction struct {
	Actions []UnitActionPair
}

// IsEmpty reports whether the action assigns nothing.
func (p PlayerAction) IsEmpty() bool {
	return len(p.Actions) == 0
}

// Add appends a unit action.
func (p *PlayerAction) Add(unitID int, action UnitAction) {
	p.Actions = append(p.Actions, UnitActionPair{UnitID: unitID, Action: action})
}

// Key is a canonical string used to tell player actions apart.
func (p PlayerAction) Key() string {
	var b strings.Builder
	for i, pair := range p.Actions {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d:%s", pair.UnitID, pair.Action)
	}
	return b.String()
}

func (p PlayerAction) String() string {
	if p.IsEmpty() {
		return "{}"
	}
	return "{" + p.Key() + "}"
}
