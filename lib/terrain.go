package lib

import (
	"fmt"
	"strings"
)

type Terrain int

const (
	OpenGround Terrain = iota
	Shellhole
	Wheatfield
	Road
	Woods
	Building
	Wall
	Hedge
	numTerrainTypes
)

var terrainNames = [numTerrainTypes]string{
	"open_ground", "shellhole", "wheatfield", "road", "woods", "building", "wall", "hedge"}

func (t Terrain) String() string {
	if t >= 0 && t < numTerrainTypes {
		return terrainNames[t]
	}
	return fmt.Sprintf("Terrain(%d)", int(t))
}

func ParseTerrain(name string) (Terrain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, terrainName := range terrainNames {
		if terrainName == name {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("unknown terrain type %q", name)
}

// Set of terrain tags present in a hex. Duplicates collapse, order is irrelevant.
type TerrainSet uint16

func NewTerrainSet(tags ...Terrain) TerrainSet {
	var s TerrainSet
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

func (s TerrainSet) With(t Terrain) TerrainSet { return s | 1<<uint(t) }
func (s TerrainSet) Has(t Terrain) bool      { return s&(1<<uint(t)) != 0 }
func (s TerrainSet) IsEmpty() bool           { return s == 0 }

func (s TerrainSet) Tags() []Terrain {
	var tags []Terrain
	for t := Terrain(0); t < numTerrainTypes; t++ {
		if s.Has(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

func (s TerrainSet) String() string {
	names := make([]string, 0, numTerrainTypes)
	for _, t := range s.Tags() {
		names = append(names, t.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Entering a hex with a wall or a hedge means crossing it.
func (s TerrainSet) HasBarrier() bool {
	return s.Has(Wall) || s.Has(Hedge)
}

// Woods and buildings. A sight line can enter one but not pass through two in a row.
func (s TerrainSet) IsCover() bool {
	return s.Has(Woods) || s.Has(Building)
}

type TerrainEffect struct {
	MovementCost int
	// Added to the fire effect roll, positive values protect the occupants.
	CombatEffect int
	Hindrance    int
	Obstacle     bool
}

type TerrainChart [numTerrainTypes]TerrainEffect

func DefaultTerrainChart() TerrainChart {
	var chart TerrainChart
	chart[OpenGround] = TerrainEffect{MovementCost: 1}
	chart[Shellhole] = TerrainEffect{MovementCost: 1, CombatEffect: 1}
	chart[Wheatfield] = TerrainEffect{MovementCost: 1, Hindrance: 1}
	chart[Road] = TerrainEffect{MovementCost: 1}
	chart[Woods] = TerrainEffect{MovementCost: 2, CombatEffect: 1, Obstacle: true}
	chart[Building] = TerrainEffect{MovementCost: 2, CombatEffect: 2, Obstacle: true}
	// Walls and hedges only cost the crossing penalty, see MovementResolver.
	chart[Wall] = TerrainEffect{CombatEffect: 1}
	chart[Hedge] = TerrainEffect{CombatEffect: 1}
	return chart
}

func (c *TerrainChart) Set(t Terrain, effect TerrainEffect) {
	c[t] = effect
}

// Sum of the movement costs of all tags, at least 1.
func (c *TerrainChart) MovementCost(terrain TerrainSet) int {
	cost := 0
	for t := Terrain(0); t < numTerrainTypes; t++ {
		if terrain.Has(t) {
			cost += c[t].MovementCost
		}
	}
	return Max(cost, 1)
}

func (c *TerrainChart) CombatEffect(terrain TerrainSet) int {
	effect := 0
	for t := Terrain(0); t < numTerrainTypes; t++ {
		if terrain.Has(t) {
			effect += c[t].CombatEffect
		}
	}
	return effect
}

func (c *TerrainChart) Hindrance(terrain TerrainSet) int {
	hindrance := 0
	for t := Terrain(0); t < numTerrainTypes; t++ {
		if terrain.Has(t) {
			hindrance += c[t].Hindrance
		}
	}
	return hindrance
}

func (c *TerrainChart) IsObstacle(terrain TerrainSet) bool {
	for t := Terrain(0); t < numTerrainTypes; t++ {
		if terrain.Has(t) && c[t].Obstacle {
			return true
		}
	}
	return false
}
