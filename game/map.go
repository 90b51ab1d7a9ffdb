package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapUnit is a unit placement in a map file.
type MapUnit struct {
	Type      string `yaml:"type"`
	Player    int    `yaml:"player"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Resources int    `yaml:"resources"`
}

// Map describes a starting position.
type Map struct {
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Time      int       `yaml:"time"`
	MaxCycles int       `yaml:"max_cycles"`
	Resources [2]int    `yaml:"resources"`
	Units     []MapUnit `yaml:"units"`
}

// LoadMap reads a YAML map file.
func LoadMap(path string) (*Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	return ParseMap(b)
}

// ParseMap decodes a YAML map.
func ParseMap(b []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", m.Width, m.Height)
	}
	return &m, nil
}

// NewState builds the starting state described by the map.
func (m *Map) NewState() (*GameState, error) {
	gs := NewGameState(m.Width, m.Height)
	gs.SetMaxCycles(m.MaxCycles)
	gs.SetTime(m.Time)
	gs.SetResources(0, m.Resources[0])
	gs.SetResources(1, m.Resources[1])
	for i, u := range m.Units {
		if _, err := gs.AddUnit(u.Type, u.Player, u.X, u.Y, u.Resources); err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
	}
	return gs, nil
}

// DefaultMap is an 8x8 opening: a base and a worker per side with resource
// fields in the corners.
func DefaultMap() *Map {
	return &Map{
		Width:     8,
		Height:    8,
		Resources: [2]int{5, 5},
		Units: []MapUnit{
			{Type: ResourceType, Player: Neutral, X: 0, Y: 0, Resources: 20},
			{Type: ResourceType, Player: Neutral, X: 7, Y: 7, Resources: 20},
			{Type: BaseType, Player: 0, X: 2, Y: 1},
			{Type: WorkerType, Player: 0, X: 1, Y: 1},
			{Type: BaseType, Player: 1, X: 5, Y: 6},
			{Type: WorkerType, Player: 1, X: 6, Y: 6},
		},
	}
}
