package lib

// Which entities are present in each hex. The only mutable part of the map.
type Occupancy struct {
	units map[HexID][]occupant
}

type occupant struct {
	id   EntityID
	side Side
	// Support weapons do not count against the stacking limit.
	stacks bool
}

func NewOccupancy() *Occupancy {
	return &Occupancy{units: make(map[HexID][]occupant)}
}

func (o *Occupancy) ShowUnit(e Entity) {
	o.HideUnit(e.ID, e.Hex)
	o.units[e.Hex] = append(o.units[e.Hex], occupant{e.ID, e.Side, e.Kind() != SupportWeaponKind})
}

func (o *Occupancy) HideUnit(id EntityID, hex HexID) {
	units := o.units[hex]
	for i, u := range units {
		if u.id == id {
			units = append(units[:i:i], units[i+1:]...)
			break
		}
	}
	if len(units) == 0 {
		delete(o.units, hex)
	} else {
		o.units[hex] = units
	}
}

func (o *Occupancy) MoveUnit(e Entity, to HexID) {
	o.HideUnit(e.ID, e.Hex)
	e.Hex = to
	o.ShowUnit(e)
}

func (o *Occupancy) UnitsAt(hex HexID) []EntityID {
	units := o.units[hex]
	ids := make([]EntityID, len(units))
	for i, u := range units {
		ids[i] = u.id
	}
	return ids
}

// Entities other than support weapons.
func (o *Occupancy) CombatantsAt(hex HexID) []EntityID {
	var ids []EntityID
	for _, u := range o.units[hex] {
		if u.stacks {
			ids = append(ids, u.id)
		}
	}
	return ids
}

func (o *Occupancy) StackCount(hex HexID) int {
	count := 0
	for _, u := range o.units[hex] {
		if u.stacks {
			count++
		}
	}
	return count
}

// Support weapons alone do not make a hex occupied by their side.
func (o *Occupancy) ContainsSide(hex HexID, side Side) bool {
	for _, u := range o.units[hex] {
		if u.side == side && u.stacks {
			return true
		}
	}
	return false
}

func (o *Occupancy) ContainsEnemyOf(hex HexID, side Side) bool {
	return o.ContainsSide(hex, side.Other())
}
