package game

type cell struct{ x, y int }

// Reservations tracks the cells and resources claimed while a player action
// is being assembled, so that the assembled action is accepted by Issue.
type Reservations struct {
	cells     map[cell]bool
	resources int
}

func NewReservations(state State, player int) *Reservations {
	return &Reservations{
		cells:     make(map[cell]bool),
		resources: state.Resources(player),
	}
}

// Allows reports whether the action can still be added.
func (r *Reservations) Allows(u Unit, action UnitAction) bool {
	switch action.Type {
	case MoveAction:
		return !r.cells[target(u, action)]
	case ProduceAction:
		produced, ok := LookupUnitType(action.Produce)
		return ok && produced.Cost <= r.resources && !r.cells[target(u, action)]
	default:
		return true
	}
}

// Reserve claims what the action needs.
func (r *Reservations) Reserve(u Unit, action UnitAction) {
	switch action.Type {
	case MoveAction:
		r.cells[target(u, action)] = true
	case ProduceAction:
		produced, _ := LookupUnitType(action.Produce)
		r.resources -= produced.Cost
		r.cells[target(u, action)] = true
	}
}

func target(u Unit, action UnitAction) cell {
	dx, dy := action.Direction.Offset()
	return cell{u.X + dx, u.Y + dy}
}

// IdleUnits returns the player's units that can take an action, in ID order.
func IdleUnits(state State, player int) []Unit {
	idle := []Unit{}
	for _, u := range state.Units() {
		if u.Player == player && len(state.UnitActions(u.ID)) > 0 {
			idle = append(idle, u)
		}
	}
	return idle
}
