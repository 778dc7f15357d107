package lib

import "golang.org/x/exp/slices"

// Hex shared by entities of both sides after the Advance phase.
type Engagement struct {
	Hex      HexID
	Entities []EntityID
}

// Every hex holding combatants of both sides, in map order, with the
// entities of each engagement sorted by id.
func CollectEngagements(hexes *HexMap, occupancy *Occupancy) []Engagement {
	var engagements []Engagement
	for _, hex := range hexes.hexes {
		if !occupancy.ContainsSide(hex.ID, SideA) || !occupancy.ContainsSide(hex.ID, SideB) {
			continue
		}
		entities := occupancy.CombatantsAt(hex.ID)
		slices.Sort(entities)
		engagements = append(engagements, Engagement{Hex: hex.ID, Entities: entities})
	}
	return engagements
}

// Inputs of one side in an engagement.
type CloseCombatSide struct {
	Firepower int
	// Leadership modifier of the best leader present.
	Modifier int
	// Unmodified dice roll.
	Roll int
}

// Result of both sides attacking each other at the same time.
type CloseCombatResult struct {
	Hex HexID
	// Kill number and final roll of each side's attack.
	KillNumber [2]int
	FinalRoll  [2]int
	// Whether the entities of the side were eliminated.
	Eliminated [2]bool
}

// Both attacks are computed before anything is applied, so the order of
// the sides does not matter.
func ResolveEngagement(hex HexID, sides [2]CloseCombatSide, table *CloseCombatTable) CloseCombatResult {
	result := CloseCombatResult{Hex: hex}
	for attacker := 0; attacker < 2; attacker++ {
		defender := 1 - attacker
		kill := table.KillNumber(sides[attacker].Firepower, sides[defender].Firepower)
		roll := sides[attacker].Roll + sides[attacker].Modifier
		result.KillNumber[attacker] = kill
		result.FinalRoll[attacker] = roll
		result.Eliminated[defender] = sides[attacker].Firepower > 0 && roll <= kill
	}
	return result
}
