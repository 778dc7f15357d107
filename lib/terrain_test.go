package lib

import "reflect"
import "testing"

func TestMovementCostIsCumulative(t *testing.T) {
	chart := DefaultTerrainChart()
	for _, tc := range []struct {
		terrain TerrainSet
		cost    int
	}{
		{NewTerrainSet(OpenGround), 1},
		{NewTerrainSet(Woods), 2},
		{NewTerrainSet(Woods, Road), 3},
		{NewTerrainSet(Building, Woods), 4},
		{NewTerrainSet(Wall), 1},
		{NewTerrainSet(), 1},
	} {
		if cost := chart.MovementCost(tc.terrain); cost != tc.cost {
			t.Errorf("Movement cost of %v: expected %d, got %d", tc.terrain, tc.cost, cost)
		}
	}
	if effect := chart.CombatEffect(NewTerrainSet(Building, Wall)); effect != 3 {
		t.Errorf("Expected combat effect 3, got %d", effect)
	}
	if effect := chart.CombatEffect(NewTerrainSet(OpenGround, Road)); effect != 0 {
		t.Errorf("Expected combat effect 0, got %d", effect)
	}
}

func TestTerrainSetCollapsesDuplicates(t *testing.T) {
	if NewTerrainSet(Woods, Woods, Road) != NewTerrainSet(Road, Woods) {
		t.Error("Terrain sets should ignore order and duplicates")
	}
	if tags := NewTerrainSet(Road, Woods).Tags(); !reflect.DeepEqual(tags, []Terrain{Road, Woods}) {
		t.Errorf("Unexpected tags %v", tags)
	}
	if !NewTerrainSet(Hedge).HasBarrier() || NewTerrainSet(Woods).HasBarrier() {
		t.Error("Only walls and hedges are barriers")
	}
}

func TestParseTerrain(t *testing.T) {
	for i, name := range terrainNames {
		terrain, err := ParseTerrain(" " + name + " ")
		if err != nil {
			t.Fatal("Error parsing terrain,", err)
		}
		if terrain != Terrain(i) {
			t.Errorf("Parsed %s as %v", name, terrain)
		}
	}
	if _, err := ParseTerrain("swamp"); err == nil {
		t.Error("Expected an error for an unknown terrain")
	}
}

func TestCustomChartOverridesDefaults(t *testing.T) {
	chart := DefaultTerrainChart()
	chart.Set(Wheatfield, TerrainEffect{MovementCost: 2, Hindrance: 3})
	if cost := chart.MovementCost(NewTerrainSet(Wheatfield)); cost != 2 {
		t.Errorf("Expected cost 2, got %d", cost)
	}
	if hindrance := chart.Hindrance(NewTerrainSet(Wheatfield, Road)); hindrance != 3 {
		t.Errorf("Expected hindrance 3, got %d", hindrance)
	}
	if chart.IsObstacle(NewTerrainSet(Wheatfield)) {
		t.Error("Wheatfield should not be an obstacle")
	}
}
