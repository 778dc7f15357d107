package lib

import (
	"fmt"
	"strings"
)

type OrderKind int

func (k OrderKind) String() string {
	switch k {
	case MoveOrder:
		return "MOVE"
	case PrepFireOrder:
		return "PREP_FIRE"
	case DefensiveFireOrder:
		return "DEFENSIVE_FIRE"
	case AdvancedFireOrder:
		return "ADVANCED_FIRE"
	case AdvanceOrder:
		return "ADVANCE"
	case RallyOrder:
		return "RALLY"
	case RoutOrder:
		return "ROUT"
	case RepairOrder:
		return "REPAIR"
	default:
		return fmt.Sprintf("OrderKind(%d)", int(k))
	}
}

const (
	MoveOrder OrderKind = iota
	PrepFireOrder
	DefensiveFireOrder
	AdvancedFireOrder
	AdvanceOrder
	RallyOrder
	RoutOrder
	RepairOrder
	numOrderKinds
)

// Accepts the names returned by String in any case, e.g. "prep_fire".
func ParseOrderKind(name string) (OrderKind, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k := OrderKind(0); k < numOrderKinds; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown order kind %q", name)
}

func (k OrderKind) IsFire() bool {
	return k == PrepFireOrder || k == DefensiveFireOrder || k == AdvancedFireOrder
}

func (k OrderKind) IsMovement() bool {
	return k == MoveOrder || k == AdvanceOrder || k == RoutOrder
}

// The only phase in which an order of the kind may be issued.
func (k OrderKind) Phase() Phase {
	switch k {
	case RallyOrder, RepairOrder:
		return Rally
	case PrepFireOrder:
		return PrepFire
	case MoveOrder:
		return Movement
	case DefensiveFireOrder:
		return DefensiveFire
	case AdvancedFireOrder:
		return AdvancingFire
	case RoutOrder:
		return Rout
	case AdvanceOrder:
		return Advance
	}
	return -1
}

// Whether the side that is not active may issue the order too.
func (k OrderKind) EitherSide() bool {
	switch k {
	case RallyOrder, RepairOrder, DefensiveFireOrder, RoutOrder:
		return true
	}
	return false
}

type Order struct {
	Kind   OrderKind
	Entity EntityID
	// Hexes to enter, not including the current hex of the entity.
	Path []HexID
	// Leader moving together with a squad along the whole path.
	Leader EntityID
	Target EntityID
	// Support weapon to fire or repair instead of the inherent firepower.
	Weapon EntityID
	// Hexes beyond the target selected to be affected by penetration.
	Penetration []HexID
}

// Proof that an order passed validation. Action records are only updated
// through it, so an order cannot be executed without being recorded.
type grant struct {
	order    Order
	phase    Phase
	group    int
	category WeaponCategory
}

func (g grant) record(r ActionRecord, carried int, path []HexID) ActionRecord {
	r = r.clone()
	switch g.order.Kind {
	case MoveOrder:
		r.Moved = true
		r.Portage = carried
		r.Path = append(r.Path, path...)
	case AdvanceOrder:
		r.Advanced = true
		r.Path = append(r.Path, path...)
	case RoutOrder:
		r.Routed = true
		r.Path = append(r.Path, path...)
	case RallyOrder, RepairOrder:
		r.Attempted = true
	case PrepFireOrder, DefensiveFireOrder, AdvancedFireOrder:
		if g.order.Kind == PrepFireOrder {
			r.PrepFired = true
		}
		if g.category == NoWeaponCategory {
			r.Fired[g.group] = true
		} else {
			r.WeaponsFired[g.group] = append(r.WeaponsFired[g.group], g.category)
		}
	}
	return r
}

type Validator struct {
	options *Options
}

func NewValidator(options *Options) Validator {
	return Validator{options: options}
}

// Checks whether the entity may carry out the order in the current phase.
// Weapon is the support weapon named by the order, if any, and carried the
// portage load of the entity. Returns a *Rejection when it may not.
func (v Validator) Validate(order Order, entity Entity, state *PhaseState, weapon *SupportWeapon, carried int) error {
	_, err := v.validate(order, entity, state, weapon, carried)
	return err
}

func (v Validator) validate(order Order, entity Entity, state *PhaseState, weapon *SupportWeapon, carried int) (grant, error) {
	reject := func(reason Reason) (grant, error) {
		return grant{}, &Rejection{Reason: reason, Entity: entity.ID, Kind: order.Kind}
	}
	if state.IsComplete() {
		return reject(ReasonScenarioComplete)
	}
	if order.Kind < MoveOrder || order.Kind > RepairOrder {
		return reject(ReasonUnknownOrder)
	}
	if entity.Kind() == SupportWeaponKind || entity.IsEliminated() {
		return reject(ReasonNotOrderable)
	}
	switch order.Kind {
	case RallyOrder, RoutOrder:
		if !entity.IsBroken() {
			return reject(ReasonNotBroken)
		}
	default:
		if entity.IsBroken() {
			return reject(ReasonEntityBroken)
		}
	}
	phase := state.CurrentPhase()
	if order.Kind.Phase() != phase {
		return reject(ReasonWrongPhase)
	}
	if !order.Kind.EitherSide() && entity.Side != state.ActiveSide() {
		return reject(ReasonNotActiveSide)
	}

	g := grant{order: order, phase: phase, group: -1}
	record := entity.Record
	switch order.Kind {
	case MoveOrder:
		if record.PrepFired {
			return reject(ReasonAlreadyPrepFired)
		}
		if record.Moved {
			return reject(ReasonAlreadyMoved)
		}
	case AdvanceOrder:
		if record.Advanced {
			return reject(ReasonAlreadyMoved)
		}
	case RoutOrder:
		if record.Routed {
			return reject(ReasonAlreadyMoved)
		}
	case PrepFireOrder:
		if record.Moved {
			return reject(ReasonAlreadyMoved)
		}
	case AdvancedFireOrder:
		if record.PrepFired {
			return reject(ReasonAlreadyPrepFired)
		}
	case RallyOrder, RepairOrder:
		if record.Attempted {
			return reject(ReasonAlreadyAttempted)
		}
	}

	if order.Kind.IsFire() {
		g.group, _ = fireGroup(phase)
		if weapon == nil {
			if record.Fired[g.group] {
				return reject(ReasonAlreadyFired)
			}
		} else {
			g.category = weapon.Type.Category()
			if record.FiredCategory(g.group, g.category) {
				return reject(ReasonSameWeaponTypeAlreadyFired)
			}
		}
	}

	capacity, forfeit, limited := entity.PortageLimits(v.options)
	if limited {
		if order.Kind.IsMovement() && carried > capacity {
			return reject(ReasonOverPortage)
		}
		if order.Kind == AdvancedFireOrder && weapon != nil && record.Moved && record.Portage >= forfeit {
			return reject(ReasonOverPortage)
		}
	}
	return g, nil
}
