package lib

// In-memory snapshot a session starts from. How it is stored on disk is up
// to the loader, see package data.
type Scenario struct {
	Name          string
	TurnLimit     int
	FirstAttacker Side
	// Maximum number of entities, support weapons excluded, in one hex. Zero means no limit.
	StackingLimit int
	Hexes         []Hex
	Entities      []Entity
}

func (s *Scenario) validate(hexes *HexMap) *ScenarioError {
	problems := &ScenarioError{Scenario: s.Name}
	if s.TurnLimit < 1 {
		problems.add("turn limit must be positive, got %d", s.TurnLimit)
	}
	if !s.FirstAttacker.IsValid() {
		problems.add("invalid first attacker %v", s.FirstAttacker)
	}
	if s.StackingLimit < 0 {
		problems.add("negative stacking limit %d", s.StackingLimit)
	}
	byID := make(map[EntityID]Entity, len(s.Entities))
	for _, e := range s.Entities {
		if e.ID == "" {
			problems.add("entity without id in hex %s", e.Hex)
			continue
		}
		if _, ok := byID[e.ID]; ok {
			problems.add("duplicate entity id %s", e.ID)
			continue
		}
		byID[e.ID] = e
		if e.Attributes == nil {
			problems.add("entity %s has no attributes", e.ID)
		}
		if !e.Side.IsValid() {
			problems.add("entity %s has invalid side %v", e.ID, e.Side)
		}
		if !hexes.Contains(e.Hex) {
			problems.add("entity %s references non-existent hex %q", e.ID, e.Hex)
		}
		if e.Condition == Eliminated {
			problems.add("entity %s starts eliminated", e.ID)
		}
		if v, ok := e.Attributes.(Vehicle); ok && v.Health < 1 {
			problems.add("vehicle %s must have positive health, got %d", e.ID, v.Health)
		}
	}
	for _, e := range s.Entities {
		weapon, ok := e.Attributes.(SupportWeapon)
		if !ok || weapon.CarriedBy == "" {
			continue
		}
		carrier, ok := byID[weapon.CarriedBy]
		switch {
		case !ok:
			problems.add("weapon %s carried by unknown entity %s", e.ID, weapon.CarriedBy)
		case carrier.Attributes == nil || (carrier.Kind() != SquadKind && carrier.Kind() != LeaderKind):
			problems.add("weapon %s carried by %s which cannot carry weapons", e.ID, carrier.ID)
		case carrier.Hex != e.Hex:
			problems.add("weapon %s is not in the hex of its carrier %s", e.ID, carrier.ID)
		case carrier.Side != e.Side:
			problems.add("weapon %s carried by an entity of the other side", e.ID)
		}
	}
	if len(problems.Problems) > 0 {
		return problems
	}
	return nil
}
