package lib

import (
	"reflect"
	"testing"
)

func testCloseCombatTable() *CloseCombatTable {
	return &CloseCombatTable{Odds: []CloseCombatOdds{
		{Attack: 1, Defense: 2, KillNumber: 3},
		{Attack: 1, Defense: 1, KillNumber: 5},
		{Attack: 2, Defense: 1, KillNumber: 7},
	}}
}

func TestCollectEngagements(t *testing.T) {
	m := newTestMap(t, hexRow(4))
	occupancy := NewOccupancy()
	for _, e := range []Entity{
		squad("b2", SideB, "h1"),
		squad("a1", SideA, "h1"),
		leader("b1", SideB, "h1", -1),
		machineGun("mg", SideB, "h1", "b2"),
		squad("a2", SideA, "h2"),
		machineGun("mg2", SideB, "h2", ""),
		squad("a3", SideA, "h3"),
	} {
		occupancy.ShowUnit(e)
	}
	engagements := CollectEngagements(m, occupancy)
	expected := []Engagement{{Hex: "h1", Entities: []EntityID{"a1", "b1", "b2"}}}
	if !reflect.DeepEqual(engagements, expected) {
		t.Errorf("Expected %v, got %v", expected, engagements)
	}
}

func TestCloseCombatKillNumber(t *testing.T) {
	table := testCloseCombatTable()
	if err := table.Validate(); err != nil {
		t.Fatal("Invalid table,", err)
	}
	for _, tc := range []struct{ attack, defense, kill int }{
		{4, 2, 7},
		{3, 2, 5},
		{2, 4, 3},
		{1, 3, 0},
		{5, 0, 7},
	} {
		if kill := table.KillNumber(tc.attack, tc.defense); kill != tc.kill {
			t.Errorf("Odds %d:%d, expected kill number %d, got %d", tc.attack, tc.defense, tc.kill, kill)
		}
	}
	unordered := &CloseCombatTable{Odds: []CloseCombatOdds{{1, 1, 5}, {1, 2, 3}}}
	if err := unordered.Validate(); err == nil {
		t.Error("Expected an error for odds out of order")
	}
}

func TestCloseCombatIsSimultaneous(t *testing.T) {
	table := testCloseCombatTable()
	result := ResolveEngagement("h1", [2]CloseCombatSide{
		{Firepower: 4, Roll: 6},
		{Firepower: 2, Roll: 8},
	}, table)
	if result.Eliminated != [2]bool{false, true} {
		t.Errorf("Expected only side B eliminated, got %v", result.Eliminated)
	}
	if result.KillNumber != [2]int{7, 3} {
		t.Errorf("Unexpected kill numbers %v", result.KillNumber)
	}

	result = ResolveEngagement("h1", [2]CloseCombatSide{
		{Firepower: 2, Roll: 5},
		{Firepower: 2, Roll: 6, Modifier: -1},
	}, table)
	if result.Eliminated != [2]bool{true, true} {
		t.Errorf("Expected both sides eliminated, got %v", result.Eliminated)
	}
	if result.FinalRoll != [2]int{5, 5} {
		t.Errorf("Unexpected final rolls %v", result.FinalRoll)
	}

	swapped := ResolveEngagement("h1", [2]CloseCombatSide{
		{Firepower: 2, Roll: 6, Modifier: -1},
		{Firepower: 2, Roll: 5},
	}, table)
	if swapped.Eliminated != result.Eliminated {
		t.Error("The outcome should not depend on the order of the sides")
	}
}
