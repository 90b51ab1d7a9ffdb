package game

import (
	"fmt"
	"sort"
	"strings"

	"skirmish/meta"
)

type assignment struct {
	action UnitAction
	start  int
}

// GameState is a small tick-based real-time strategy simulation: units on a
// grid, actions that take several ticks to complete, and two players that
// issue actions concurrently.
type GameState struct {
	width       int
	height      int
	time        int
	maxCycles   int
	nextID      int
	units       []Unit // ordered by ID
	resources   [2]int
	assignments map[int]assignment
}

// NewGameState returns an empty board.
func NewGameState(width, height int) *GameState {
	return &GameState{
		width:       width,
		height:      height,
		maxCycles:   meta.MaxCycles,
		assignments: make(map[int]assignment),
	}
}

// SetMaxCycles caps the game length.
func (gs *GameState) SetMaxCycles(cycles int) {
	if cycles > 0 {
		gs.maxCycles = cycles
	}
}

// SetTime moves the game clock, used when loading mid-game positions.
func (gs *GameState) SetTime(time int) {
	gs.time = time
}

// SetResources sets the stored resources of a player.
func (gs *GameState) SetResources(player, amount int) {
	gs.resources[player] = amount
}

// AddUnit places a new unit on the board.
func (gs *GameState) AddUnit(typeName string, player, x, y, resources int) (Unit, error) {
	ut, ok := LookupUnitType(typeName)
	if !ok {
		return Unit{}, fmt.Errorf("cannot add unit: unknown unit type %q", typeName)
	}
	if !gs.inBounds(x, y) {
		return Unit{}, fmt.Errorf("cannot add unit: (%d,%d) is outside the %dx%d board", x, y, gs.width, gs.height)
	}
	if gs.unitAt(x, y) != nil {
		return Unit{}, fmt.Errorf("cannot add unit: (%d,%d) is occupied", x, y)
	}
	if ut.IsResource {
		player = Neutral
	} else if player != 0 && player != 1 {
		return Unit{}, fmt.Errorf("cannot add unit: invalid player %d", player)
	}
	u := Unit{ID: gs.nextID, Type: typeName, Player: player, X: x, Y: y, HP: ut.HP, Resources: resources}
	gs.nextID++
	gs.units = append(gs.units, u)
	return u, nil
}

// Clone returns a deep copy.
func (gs *GameState) Clone() State {
	return gs.Copy()
}

// Copy returns a deep copy with the concrete type.
func (gs *GameState) Copy() *GameState {
	units := make([]Unit, len(gs.units))
	copy(units, gs.units)

	assignments := make(map[int]assignment, len(gs.assignments))
	for id, a := range gs.assignments {
		assignments[id] = a
	}

	return &GameState{
		width:       gs.width,
		height:      gs.height,
		time:        gs.time,
		maxCycles:   gs.maxCycles,
		nextID:      gs.nextID,
		units:       units,
		resources:   gs.resources,
		assignments: assignments,
	}
}

func (gs *GameState) Time() int   { return gs.time }
func (gs *GameState) Width() int  { return gs.width }
func (gs *GameState) Height() int { return gs.height }

func (gs *GameState) Resources(player int) int {
	if player != 0 && player != 1 {
		return 0
	}
	return gs.resources[player]
}

// Units returns a copy of all units, resources included.
func (gs *GameState) Units() []Unit {
	units := make([]Unit, len(gs.units))
	copy(units, gs.units)
	return units
}

func (gs *GameState) UnitType(unitID int) (UnitType, bool) {
	u := gs.unit(unitID)
	if u == nil {
		return UnitType{}, false
	}
	ut, ok := LookupUnitType(u.Type)
	if !ok {
		return UnitType{}, false
	}
	return *ut, true
}

// IsBusy reports whether the unit has an assigned action.
func (gs *GameState) IsBusy(unitID int) bool {
	_, ok := gs.assignments[unitID]
	return ok
}

func (gs *GameState) IsActionable(player int) bool {
	for _, u := range gs.units {
		if u.Player == player && !gs.IsBusy(u.ID) {
			return true
		}
	}
	return false
}

func (gs *GameState) IsComplete() bool {
	for _, u := range gs.units {
		if u.Player != Neutral && !gs.IsBusy(u.ID) {
			return false
		}
	}
	return true
}

func (gs *GameState) GameOver() bool {
	if gs.time >= gs.maxCycles {
		return true
	}
	return gs.unitCount(0) == 0 || gs.unitCount(1) == 0
}

// Winner returns the only player with units left, or NoWinner.
func (gs *GameState) Winner() int {
	p0, p1 := gs.unitCount(0), gs.unitCount(1)
	switch {
	case p0 > 0 && p1 == 0:
		return 0
	case p1 > 0 && p0 == 0:
		return 1
	default:
		return NoWinner
	}
}

func (gs *GameState) unitCount(player int) int {
	count := 0
	for _, u := range gs.units {
		if u.Player == player {
			count++
		}
	}
	return count
}

// Issue assigns the unit actions of one player. Either all of them are
// assigned or, on error, none are.
func (gs *GameState) Issue(action PlayerAction) error {
	if action.IsEmpty() {
		return nil
	}

	owner := Neutral
	issued := make([]int, 0, len(action.Actions))
	spent := gs.resources
	rollback := func() {
		for _, id := range issued {
			delete(gs.assignments, id)
		}
		gs.resources = spent
	}

	for _, pair := range action.Actions {
		u := gs.unit(pair.UnitID)
		if u == nil {
			rollback()
			return fmt.Errorf("cannot issue %s: %w: %d", pair.Action, ErrUnknownUnit, pair.UnitID)
		}
		if owner == Neutral {
			owner = u.Player
		}
		if u.Player == Neutral || u.Player != owner {
			rollback()
			return fmt.Errorf("cannot issue %s for unit %d: %w", pair.Action, u.ID, ErrNotOwner)
		}
		if gs.IsBusy(u.ID) {
			rollback()
			return fmt.Errorf("cannot issue %s for unit %d: %w", pair.Action, u.ID, ErrUnitBusy)
		}
		if !containsAction(gs.UnitActions(u.ID), pair.Action) {
			rollback()
			return fmt.Errorf("cannot issue %s for unit %d: %w", pair.Action, u.ID, ErrInvalidAction)
		}
		if pair.Action.Type == ProduceAction {
			produced, _ := LookupUnitType(pair.Action.Produce)
			gs.resources[owner] -= produced.Cost
		}
		gs.assignments[u.ID] = assignment{action: pair.Action, start: gs.time}
		issued = append(issued, u.ID)
	}
	return nil
}

func containsAction(actions []UnitAction, action UnitAction) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// UnitActions lists the legal actions of an idle unit in a fixed order:
// wait, moves, harvest/return, produce, attack.
func (gs *GameState) UnitActions(unitID int) []UnitAction {
	u := gs.unit(unitID)
	if u == nil || u.Player == Neutral || gs.IsBusy(unitID) {
		return nil
	}
	ut, ok := LookupUnitType(u.Type)
	if !ok {
		return nil
	}

	actions := []UnitAction{Wait()}
	if ut.CanMove {
		for d := Up; d <= Left; d++ {
			dx, dy := d.Offset()
			if gs.isFree(u.X+dx, u.Y+dy) {
				actions = append(actions, UnitAction{Type: MoveAction, Direction: d})
			}
		}
	}
	if ut.CanHarvest {
		for d := Up; d <= Left; d++ {
			dx, dy := d.Offset()
			target := gs.unitAt(u.X+dx, u.Y+dy)
			if target == nil {
				continue
			}
			tt, _ := LookupUnitType(target.Type)
			if u.Resources == 0 && tt.IsResource && target.Resources > 0 {
				actions = append(actions, UnitAction{Type: HarvestAction, Direction: d})
			}
			if u.Resources > 0 && tt.IsStockpile && target.Player == u.Player {
				actions = append(actions, UnitAction{Type: ReturnAction, Direction: d})
			}
		}
	}
	for _, name := range ut.Produces {
		produced, _ := LookupUnitType(name)
		if gs.resources[u.Player] < produced.Cost {
			continue
		}
		for d := Up; d <= Left; d++ {
			dx, dy := d.Offset()
			if gs.isFree(u.X+dx, u.Y+dy) {
				actions = append(actions, UnitAction{Type: ProduceAction, Direction: d, Produce: name})
			}
		}
	}
	if ut.Damage > 0 {
		for _, target := range gs.units {
			if target.Player == Neutral || target.Player == u.Player {
				continue
			}
			if distance(u.X, u.Y, target.X, target.Y) <= ut.AttackRange {
				actions = append(actions, UnitAction{Type: AttackAction, Direction: NoDirection, TargetX: target.X, TargetY: target.Y})
			}
		}
	}
	return actions
}

// Cycle advances the clock by one tick and resolves every action whose
// duration has elapsed, in unit ID order.
func (gs *GameState) Cycle() bool {
	gs.time++

	ids := make([]int, 0, len(gs.assignments))
	for id := range gs.assignments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		a, ok := gs.assignments[id]
		if !ok { // unit died earlier this tick
			continue
		}
		u := gs.unit(id)
		if u == nil {
			delete(gs.assignments, id)
			continue
		}
		if a.start+gs.duration(u, a.action) > gs.time {
			continue
		}
		delete(gs.assignments, id)
		gs.execute(u.ID, a.action)
	}

	return gs.GameOver()
}

func (gs *GameState) duration(u *Unit, action UnitAction) int {
	ut, _ := LookupUnitType(u.Type)
	switch action.Type {
	case MoveAction:
		return ut.MoveTime
	case HarvestAction:
		return ut.HarvestTime
	case ReturnAction:
		return ut.ReturnTime
	case AttackAction:
		return ut.AttackTime
	case ProduceAction:
		produced, _ := LookupUnitType(action.Produce)
		return produced.ProduceTime
	default:
		return WaitTime
	}
}

// execute applies the effect of a finished action. Effects whose
// preconditions no longer hold fizzle.
func (gs *GameState) execute(unitID int, action UnitAction) {
	u := gs.unit(unitID)
	dx, dy := action.Direction.Offset()
	x, y := u.X+dx, u.Y+dy

	switch action.Type {
	case MoveAction:
		if gs.inBounds(x, y) && gs.unitAt(x, y) == nil {
			u.X, u.Y = x, y
		}
	case HarvestAction:
		target := gs.unitAt(x, y)
		if target != nil && target.Type == ResourceType && target.Resources > 0 && u.Resources == 0 {
			target.Resources--
			u.Resources = 1
			if target.Resources == 0 {
				gs.removeUnit(target.ID)
			}
		}
	case ReturnAction:
		target := gs.unitAt(x, y)
		if target != nil && target.Player == u.Player && u.Resources > 0 {
			if tt, _ := LookupUnitType(target.Type); tt.IsStockpile {
				gs.resources[u.Player] += u.Resources
				u.Resources = 0
			}
		}
	case ProduceAction:
		produced, _ := LookupUnitType(action.Produce)
		if _, err := gs.AddUnit(action.Produce, u.Player, x, y, 0); err != nil {
			gs.resources[u.Player] += produced.Cost
		}
	case AttackAction:
		ut, _ := LookupUnitType(u.Type)
		target := gs.unitAt(action.TargetX, action.TargetY)
		if target != nil && target.Player != Neutral && target.Player != u.Player &&
			distance(u.X, u.Y, target.X, target.Y) <= ut.AttackRange {
			target.HP -= ut.Damage
			if target.HP <= 0 {
				gs.removeUnit(target.ID)
			}
		}
	}
}

func (gs *GameState) removeUnit(unitID int) {
	for i := range gs.units {
		if gs.units[i].ID == unitID {
			gs.units = append(gs.units[:i], gs.units[i+1:]...)
			break
		}
	}
	delete(gs.assignments, unitID)
}

func (gs *GameState) unit(unitID int) *Unit {
	for i := range gs.units {
		if gs.units[i].ID == unitID {
			return &gs.units[i]
		}
	}
	return nil
}

func (gs *GameState) unitAt(x, y int) *Unit {
	for i := range gs.units {
		if gs.units[i].X == x && gs.units[i].Y == y {
			return &gs.units[i]
		}
	}
	return nil
}

func (gs *GameState) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < gs.width && y < gs.height
}

// isFree reports whether a cell is empty and not the target of a pending
// move or produce.
func (gs *GameState) isFree(x, y int) bool {
	if !gs.inBounds(x, y) || gs.unitAt(x, y) != nil {
		return false
	}
	for id, a := range gs.assignments {
		if a.action.Type != MoveAction && a.action.Type != ProduceAction {
			continue
		}
		u := gs.unit(id)
		if u == nil {
			continue
		}
		dx, dy := a.action.Direction.Offset()
		if u.X+dx == x && u.Y+dy == y {
			return false
		}
	}
	return true
}

func distance(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// String renders the board, one character per cell: B/W/L for player 0,
// b/w/l for player 1, R for resources and '.' for empty cells.
func (gs *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%d resources=%v\n", gs.time, gs.resources)
	for y := 0; y < gs.height; y++ {
		for x := 0; x < gs.width; x++ {
			b.WriteRune(Glyph(gs.unitAt(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Glyph returns the board character of a unit, '.' for nil.
func Glyph(u *Unit) rune {
	if u == nil {
		return '.'
	}
	var r rune
	switch u.Type {
	case BaseType:
		r = 'B'
	case WorkerType:
		r = 'W'
	case LightType:
		r = 'L'
	default:
		return 'R'
	}
	if u.Player == 1 {
		r += 'a' - 'A'
	}
	return r
}
