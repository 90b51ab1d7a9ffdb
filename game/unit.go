package game

import "fmt"

// UnitType describes the static properties of a kind of unit.
type UnitType struct {
	ID          int
	Name        string
	Cost        int
	HP          int
	Damage      int
	AttackRange int
	MoveTime    int
	AttackTime  int
	HarvestTime int
	ReturnTime  int
	ProduceTime int
	CanHarvest  bool
	CanMove     bool
	IsResource  bool
	IsStockpile bool     // accepts returned resources
	Produces    []string // names of unit types this type can produce
}

// Unit is a unit on the board. Resource units belong to Neutral and carry
// their remaining amount in Resources.
type Unit struct {
	ID        int
	Type      string
	Player    int
	X, Y      int
	HP        int
	Resources int
}

func (u Unit) String() string {
	return fmt.Sprintf("%s#%d(p%d @%d,%d hp=%d r=%d)", u.Type, u.ID, u.Player, u.X, u.Y, u.HP, u.Resources)
}

const (
	BaseType     = "Base"
	WorkerType   = "Worker"
	LightType    = "Light"
	ResourceType = "Resource"
)

// WaitTime is how long an explicit wait keeps a unit busy
const WaitTime = 10

var unitTypes = map[string]*UnitType{
	BaseType: {
		ID: 0, Name: BaseType, Cost: 10, HP: 10, IsStockpile: true,
		ProduceTime: 50, Produces: []string{WorkerType, LightType},
	},
	WorkerType: {
		ID: 1, Name: WorkerType, Cost: 1, HP: 1, Damage: 1, AttackRange: 1,
		MoveTime: 10, AttackTime: 5, HarvestTime: 20, ReturnTime: 10, ProduceTime: 50,
		CanHarvest: true, CanMove: true,
	},
	LightType: {
		ID: 2, Name: LightType, Cost: 2, HP: 4, Damage: 2, AttackRange: 1,
		MoveTime: 8, AttackTime: 5, ProduceTime: 80, CanMove: true,
	},
	ResourceType: {
		ID: 3, Name: ResourceType, IsResource: true,
	},
}

// LookupUnitType returns the static description of the named unit type.
func LookupUnitType(name string) (*UnitType, bool) {
	t, ok := unitTypes[name]
	return t, ok
}
