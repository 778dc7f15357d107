package lib

type MovementResolver struct {
	hexes     *HexMap
	occupancy *Occupancy
	options   *Options
	// Zero means unlimited.
	stackingLimit int
}

func NewMovementResolver(hexes *HexMap, occupancy *Occupancy, options *Options, stackingLimit int) *MovementResolver {
	return &MovementResolver{
		hexes:         hexes,
		occupancy:     occupancy,
		options:       options,
		stackingLimit: stackingLimit,
	}
}

// Cost of entering the hexes of path one by one, starting from the current
// hex of the entity. Bonus is added to the movement factors of the entity.
func (r *MovementResolver) PlanMove(entity Entity, path []HexID, phase Phase, bonus int) (int, error) {
	budget := entity.MovementFactors(r.options) + bonus
	fail := func(reason Reason, hex HexID, cost int) (int, error) {
		return 0, &MovementError{Reason: reason, Entity: entity.ID, Hex: hex, Cost: cost, Budget: budget}
	}
	if len(path) == 0 {
		return fail(ReasonEmptyPath, "", 0)
	}
	if phase == Advance && len(path) > 1 {
		return fail(ReasonAdvanceTooFar, path[len(path)-1], 0)
	}
	previous, err := r.hexes.Hex(entity.Hex)
	if err != nil {
		return fail(ReasonOutOfBounds, entity.Hex, 0)
	}
	chart := r.hexes.Chart()
	total := 0
	roadRun := 0
	for _, id := range path {
		hex, err := r.hexes.Hex(id)
		if err != nil {
			return fail(ReasonOutOfBounds, id, total)
		}
		if previous.Coords.Distance(hex.Coords) != 1 {
			return fail(ReasonPathNotContiguous, id, total)
		}
		cost := chart.MovementCost(hex.Terrain)
		if hex.Terrain.Has(Road) {
			roadRun++
			if roadRun%2 == 0 {
				cost = Max(cost-chart[Road].MovementCost, 0)
			}
		} else {
			roadRun = 0
		}
		if hex.Elevation > previous.Elevation {
			cost *= 2
		}
		if hex.Terrain.HasBarrier() {
			cost++
		}
		total += cost
		if total > budget {
			return fail(ReasonInsufficientMovementFactors, id, total)
		}
		previous = hex
	}
	destination := previous
	if phase != Advance && r.occupancy.ContainsEnemyOf(destination.ID, entity.Side) {
		return fail(ReasonEnemyOccupiedDestination, destination.ID, total)
	}
	if phase == Rout && !destination.Terrain.IsCover() {
		return fail(ReasonRoutNotToCover, destination.ID, total)
	}
	return total, nil
}

// Fails if arriving more stacking entities would exceed the stacking limit of the hex.
func (r *MovementResolver) CheckStacking(entity EntityID, hex HexID, arriving int) error {
	if r.stackingLimit <= 0 {
		return nil
	}
	if r.occupancy.StackCount(hex)+arriving > r.stackingLimit {
		return &MovementError{Reason: ReasonOverStacked, Entity: entity, Hex: hex}
	}
	return nil
}
