package lib

import "golang.org/x/exp/slices"

type LineOfSight interface {
	LineOfSight(a, b HexID) (bool, error)
}

type FireOutcome struct {
	Firer  EntityID
	Weapon EntityID
	Target EntityID
	// Firepower after the movement penalty.
	Firepower   int
	Halved      bool
	Penetration int
	// Target hex first, then the penetration hexes nearest first.
	Affected []HexID
	// Combat effect of the terrain of the target hex.
	TerrainEffect int
	// Leadership modifier of the leader directing the fire, if any.
	LeadershipModifier int
	// Set when the target was only seen while moving through another hex.
	EnPassant bool
}

type FireResolver struct {
	hexes *HexMap
	los   LineOfSight
}

// los may be nil, the map computes line of sight on demand then.
func NewFireResolver(hexes *HexMap, los LineOfSight) *FireResolver {
	if los == nil {
		los = hexes
	}
	return &FireResolver{hexes: hexes, los: los}
}

// Resolves fire of the firer, using the weapon if not nil, at the target.
// Selected lists penetration hexes chosen by the firer, when empty the
// nearest unobstructed hexes beyond the target are used.
func (r *FireResolver) ResolveFire(firer Entity, weapon *SupportWeapon, target Entity, phase Phase, selected []HexID) (FireOutcome, error) {
	fail := func(reason Reason) (FireOutcome, error) {
		return FireOutcome{}, &FireError{Reason: reason, Firer: firer.ID, Target: target.ID}
	}
	if firer.IsBroken() {
		return fail(ReasonFirerBroken)
	}
	firepower, fireRange, penetration, indirect := firer.Firepower(), firer.Range(), 1, false
	if weapon != nil {
		if weapon.Malfunctioned {
			return fail(ReasonWeaponMalfunctioned)
		}
		firepower, fireRange, penetration = weapon.Firepower, weapon.Range, weapon.Penetration
		indirect = weapon.Type.Category() == MortarCategory
	}
	if firepower <= 0 {
		return fail(ReasonNoFirepower)
	}
	if target.Side == firer.Side {
		return fail(ReasonFriendlyTarget)
	}
	firerHex, err := r.hexes.Hex(firer.Hex)
	if err != nil {
		return fail(ReasonOutOfBounds)
	}
	targetHex, err := r.hexes.Hex(target.Hex)
	if err != nil {
		return fail(ReasonOutOfBounds)
	}
	distance := firerHex.Coords.Distance(targetHex.Coords)
	if distance > fireRange {
		return fail(ReasonOutOfRange)
	}
	enPassant := false
	if !indirect {
		visible, err := r.los.LineOfSight(firer.Hex, target.Hex)
		if err != nil {
			return fail(ReasonOutOfBounds)
		}
		if !visible && phase == DefensiveFire {
			enPassant = r.sawMoving(firer.Hex, target.Record.Path)
			visible = enPassant
		}
		if !visible {
			return fail(ReasonNoLineOfSight)
		}
	}
	if phase == AdvancingFire && firer.Record.PrepFired {
		return fail(ReasonAlreadyPrepFired)
	}

	outcome := FireOutcome{
		Firer:         firer.ID,
		Target:        target.ID,
		Firepower:     firepower,
		TerrainEffect: r.hexes.Chart().CombatEffect(targetHex.Terrain),
		EnPassant:     enPassant,
	}
	if phase == AdvancingFire && firer.Record.Moved {
		outcome.Firepower = firepower / 2
		outcome.Halved = true
	}
	if firerHex.Elevation != targetHex.Elevation {
		penetration = 1
	}
	outcome.Penetration = Max(penetration, 1)
	extra, err := r.penetrationHexes(firerHex, targetHex, outcome.Penetration-1, selected)
	if err != nil {
		if fireErr, ok := err.(*FireError); ok {
			fireErr.Firer, fireErr.Target = firer.ID, target.ID
		}
		return FireOutcome{}, err
	}
	outcome.Affected = append([]HexID{target.Hex}, extra...)
	return outcome, nil
}

func (r *FireResolver) sawMoving(from HexID, path []HexID) bool {
	for _, hex := range path {
		if visible, err := r.los.LineOfSight(from, hex); err == nil && visible {
			return true
		}
	}
	return false
}

// Picks up to count hexes on the line beyond the target, at most count hexes
// further away from the firer than the target. The weapon range does not
// limit them.
func (r *FireResolver) penetrationHexes(firer, target Hex, count int, selected []HexID) ([]HexID, error) {
	if count <= 0 && len(selected) == 0 {
		return nil, nil
	}
	if len(selected) > count {
		return nil, &FireError{Reason: ReasonPenetrationExceeded}
	}
	candidates, err := r.hexes.LineBeyond(firer.ID, target.ID, count)
	if err != nil {
		return nil, &FireError{Reason: ReasonOutOfBounds}
	}
	chart := r.hexes.Chart()
	// blockedFrom is the index of the first candidate lying behind an obstacle.
	blockedFrom := len(candidates)
	for i, c := range candidates {
		if chart.IsObstacle(c.Terrain) {
			blockedFrom = i + 1
			break
		}
	}
	if len(selected) == 0 {
		var picked []HexID
		for _, c := range candidates[:blockedFrom] {
			if len(picked) == count {
				break
			}
			picked = append(picked, c.ID)
		}
		return picked, nil
	}
	picked := make([]HexID, 0, len(selected))
	for _, id := range selected {
		ix := slices.IndexFunc(candidates, func(c Hex) bool { return c.ID == id })
		if ix < 0 || slices.Contains(picked, id) {
			return nil, &FireError{Reason: ReasonPenetrationOffLine}
		}
		if ix >= blockedFrom {
			return nil, &FireError{Reason: ReasonPenetrationBlocked}
		}
		picked = append(picked, id)
	}
	slices.SortFunc(picked, func(a, b HexID) int {
		return slices.IndexFunc(candidates, func(c Hex) bool { return c.ID == a }) -
			slices.IndexFunc(candidates, func(c Hex) bool { return c.ID == b })
	})
	return picked, nil
}
