package lib

import (
	"fmt"
	"strings"
)

type EntityID string

type Side int

const (
	SideA Side = 0
	SideB Side = 1
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}
func (s Side) Other() Side { return 1 - s }
func (s Side) IsValid() bool {
	return s == SideA || s == SideB
}

type Condition int

func (c Condition) String() string {
	switch c {
	case Composed:
		return "COMPOSED"
	case Broken:
		return "BROKEN"
	case Eliminated:
		return "ELIMINATED"
	default:
		return fmt.Sprintf("Condition(%d)", int(c))
	}
}

const (
	Composed   Condition = 0
	Broken     Condition = 1
	Eliminated Condition = 2
)

type WeaponType int

const (
	Rifle WeaponType = iota
	LMG
	MMG
	HMG
	Mortar
	Demolition
	Flamethrower
	APMine
	ATMine
	ATRifle
	ATGun
	TankGun
	Artillery
	numWeaponTypes
)

var weaponTypeNames = [numWeaponTypes]string{
	"rifle", "lmg", "mmg", "hmg", "mortar", "demolition", "flamethrower",
	"ap_mine", "at_mine", "at_rifle", "at_gun", "tank_gun", "artillery"}

func (w WeaponType) String() string {
	if w >= 0 && w < numWeaponTypes {
		return weaponTypeNames[w]
	}
	return fmt.Sprintf("WeaponType(%d)", int(w))
}

func ParseWeaponType(name string) (WeaponType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, weaponName := range weaponTypeNames {
		if weaponName == name {
			return WeaponType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weapon type %q", name)
}

// Weapons of one category may be fired only once per fire phase by the same entity.
type WeaponCategory int

const (
	NoWeaponCategory WeaponCategory = iota
	RifleCategory
	MachineGunCategory
	MortarCategory
	DemolitionCategory
	FlamethrowerCategory
	MineCategory
	AntiTankCategory
	ArtilleryCategory
)

func (w WeaponType) Category() WeaponCategory {
	switch w {
	case Rifle:
		return RifleCategory
	case LMG, MMG, HMG:
		return MachineGunCategory
	case Mortar:
		return MortarCategory
	case Demolition:
		return DemolitionCategory
	case Flamethrower:
		return FlamethrowerCategory
	case APMine, ATMine:
		return MineCategory
	case ATRifle, ATGun, TankGun:
		return AntiTankCategory
	case Artillery:
		return ArtilleryCategory
	default:
		return NoWeaponCategory
	}
}

type Kind int

func (k Kind) String() string {
	switch k {
	case SquadKind:
		return "SQUAD"
	case LeaderKind:
		return "LEADER"
	case SupportWeaponKind:
		return "SUPPORT_WEAPON"
	case VehicleKind:
		return "VEHICLE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const (
	SquadKind         Kind = 0
	LeaderKind        Kind = 1
	SupportWeaponKind Kind = 2
	VehicleKind       Kind = 3
)

// Attributes specific to one kind of combat entity.
// Implemented by Squad, Leader, SupportWeapon and Vehicle only.
type Attributes interface {
	Kind() Kind
}

type Squad struct {
	Firepower       int
	Range           int
	Morale          int
	MovementFactors int
}

type Leader struct {
	Name string
	// Dice modifier applied to rolls of the units it leads. Negative is better.
	Leadership      int
	Firepower       int
	Range           int
	Morale          int
	MovementFactors int
}

type SupportWeapon struct {
	Type        WeaponType
	Firepower   int
	Penetration int
	Range       int
	// A fire roll at or above this number breaks the weapon down. Zero never breaks.
	Breakdown     int
	Portage       int
	CarriedBy     EntityID
	Malfunctioned bool
}

type Vehicle struct {
	MovementFactors int
	Armor           int
	Health          int
}

func (Squad) Kind() Kind         { return SquadKind }
func (Leader) Kind() Kind        { return LeaderKind }
func (SupportWeapon) Kind() Kind { return SupportWeaponKind }
func (Vehicle) Kind() Kind       { return VehicleKind }

// Indices of the fire phase groups in the action record.
const (
	prepFireGroup = iota
	defensiveFireGroup
	advancingFireGroup
	numFireGroups
)

func fireGroup(phase Phase) (int, bool) {
	switch phase {
	case PrepFire:
		return prepFireGroup, true
	case DefensiveFire:
		return defensiveFireGroup, true
	case AdvancingFire:
		return advancingFireGroup, true
	}
	return -1, false
}

// Phase-relative tag of an entity derived from its action record.
type Stage int

const (
	Unphased Stage = iota
	PrepFiredStage
	MovedStage
)

func (s Stage) String() string {
	switch s {
	case Unphased:
		return "UNPHASED"
	case PrepFiredStage:
		return "PREP_FIRED"
	case MovedStage:
		return "MOVED"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// What an entity did during the current turn. Reset once per turn.
type ActionRecord struct {
	Moved     bool
	PrepFired bool
	Advanced  bool
	Routed    bool
	// Rally or repair attempted.
	Attempted bool
	// Inherent firepower used, per fire phase group.
	Fired [numFireGroups]bool
	// Support weapon categories fired, per fire phase group.
	WeaponsFired [numFireGroups][]WeaponCategory
	// Portage load carried when the entity moved.
	Portage int
	// Hexes entered this turn, in order.
	Path []HexID
}

func (r ActionRecord) Stage() Stage {
	switch {
	case r.PrepFired:
		return PrepFiredStage
	case r.Moved:
		return MovedStage
	default:
		return Unphased
	}
}

func (r ActionRecord) FiredCategory(group int, category WeaponCategory) bool {
	for _, c := range r.WeaponsFired[group] {
		if c == category {
			return true
		}
	}
	return false
}

func (r ActionRecord) clone() ActionRecord {
	c := r
	for i := range c.WeaponsFired {
		c.WeaponsFired[i] = append([]WeaponCategory(nil), r.WeaponsFired[i]...)
	}
	c.Path = append([]HexID(nil), r.Path...)
	return c
}

type Entity struct {
	ID         EntityID
	Side       Side
	Hex        HexID
	Condition  Condition
	Record     ActionRecord
	Attributes Attributes
}

func (e Entity) Kind() Kind { return e.Attributes.Kind() }

func (e Entity) IsBroken() bool     { return e.Condition == Broken }
func (e Entity) IsEliminated() bool { return e.Condition == Eliminated }

// Deep copy safe to hand out of the session.
func (e Entity) Snapshot() Entity {
	e.Record = e.Record.clone()
	return e
}

// Inherent firepower, zero for entities that only fire weapons.
func (e Entity) Firepower() int {
	switch a := e.Attributes.(type) {
	case Squad:
		return a.Firepower
	case Leader:
		return a.Firepower
	case SupportWeapon:
		return a.Firepower
	}
	return 0
}

func (e Entity) Range() int {
	switch a := e.Attributes.(type) {
	case Squad:
		return a.Range
	case Leader:
		return a.Range
	case SupportWeapon:
		return a.Range
	}
	return 0
}

func (e Entity) Morale() int {
	switch a := e.Attributes.(type) {
	case Squad:
		return a.Morale
	case Leader:
		return a.Morale
	}
	return 0
}

// Movement factors the entity gets each turn, with options supplying the defaults.
func (e Entity) MovementFactors(options *Options) int {
	switch a := e.Attributes.(type) {
	case Squad:
		if a.MovementFactors > 0 {
			return a.MovementFactors
		}
		return options.SquadMovementFactors
	case Leader:
		if a.MovementFactors > 0 {
			return a.MovementFactors
		}
		return options.LeaderMovementFactors
	case Vehicle:
		return a.MovementFactors
	}
	return 0
}

// Maximum portage the entity may carry and the load from which a moving
// entity loses support weapon fire in the following Advancing Fire phase.
func (e Entity) PortageLimits(options *Options) (capacity, forfeit int, ok bool) {
	switch e.Kind() {
	case SquadKind:
		return options.SquadPortage, options.SquadPortageForfeit, true
	case LeaderKind:
		return options.LeaderPortage, options.LeaderPortageForfeit, true
	}
	return 0, 0, false
}

// Projection of the entity used as the object of fire.
type Target struct {
	Entity    EntityID
	Hex       HexID
	Elevation int
	Armor     int
	Health    int
}

func (t Target) IsDestroyed() bool { return t.Health <= 0 }

// Damage left after armor is subtracted from the firepower.
func (t Target) Hit(firepower int) Target {
	if firepower > t.Armor {
		t.Health -= firepower - t.Armor
	}
	return t
}

func (e Entity) Target(hex Hex) Target {
	t := Target{Entity: e.ID, Hex: e.Hex, Elevation: hex.Elevation, Health: 1}
	if v, ok := e.Attributes.(Vehicle); ok {
		t.Armor = v.Armor
		t.Health = v.Health
	}
	return t
}
