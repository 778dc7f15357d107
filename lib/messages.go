package lib

import (
	"errors"

	"github.com/pwiecz/squad_leader/i18n"
	"golang.org/x/text/message"
)

// Feedback produced while executing orders and advancing phases.
type Message interface {
	Entity() EntityID
	// Catalog key and the arguments of its format string.
	Key() string
	Args() []interface{}
	String() string
}

var english = i18n.Printer(i18n.BaseLocale)

func Localize(m Message, p *message.Printer) string {
	return p.Sprintf(m.Key(), m.Args()...)
}

// Explanation of why an order was refused. Errors other than order errors
// are returned as they are.
func Explain(err error, p *message.Printer) string {
	if reason := ReasonOf(err); reason != "" {
		return p.Sprintf(string(reason))
	}
	var scenarioErr *ScenarioError
	if errors.As(err, &scenarioErr) {
		return scenarioErr.Error()
	}
	return err.Error()
}

type OrderAccepted struct {
	entity EntityID
	kind   OrderKind
}

func (m OrderAccepted) Entity() EntityID    { return m.entity }
func (m OrderAccepted) Kind() OrderKind     { return m.kind }
func (m OrderAccepted) Key() string         { return "order.accepted" }
func (m OrderAccepted) Args() []interface{} { return nil }
func (m OrderAccepted) String() string      { return Localize(m, english) }

type UnitMoved struct {
	entity EntityID
	to     HexID
	cost   int
}

func (m UnitMoved) Entity() EntityID    { return m.entity }
func (m UnitMoved) To() HexID           { return m.to }
func (m UnitMoved) Cost() int           { return m.cost }
func (m UnitMoved) Key() string         { return "unit.moved" }
func (m UnitMoved) Args() []interface{} { return []interface{}{m.entity, m.to, m.cost} }
func (m UnitMoved) String() string      { return Localize(m, english) }

type UnitFired struct {
	outcome FireOutcome
}

func (m UnitFired) Entity() EntityID     { return m.outcome.Firer }
func (m UnitFired) Outcome() FireOutcome { return m.outcome }
func (m UnitFired) Key() string          { return "unit.fired" }
func (m UnitFired) Args() []interface{} {
	return []interface{}{m.outcome.Firer, m.outcome.Target, m.outcome.Firepower, len(m.outcome.Affected)}
}
func (m UnitFired) String() string { return Localize(m, english) }

type UnitBroken struct {
	entity EntityID
}

func (m UnitBroken) Entity() EntityID    { return m.entity }
func (m UnitBroken) Key() string         { return "unit.broken" }
func (m UnitBroken) Args() []interface{} { return []interface{}{m.entity} }
func (m UnitBroken) String() string      { return Localize(m, english) }

type UnitEliminated struct {
	entity EntityID
}

func (m UnitEliminated) Entity() EntityID    { return m.entity }
func (m UnitEliminated) Key() string         { return "unit.eliminated" }
func (m UnitEliminated) Args() []interface{} { return []interface{}{m.entity} }
func (m UnitEliminated) String() string      { return Localize(m, english) }

type UnitDamaged struct {
	entity EntityID
	health int
}

func (m UnitDamaged) Entity() EntityID    { return m.entity }
func (m UnitDamaged) Health() int         { return m.health }
func (m UnitDamaged) Key() string         { return "unit.damaged" }
func (m UnitDamaged) Args() []interface{} { return []interface{}{m.entity, m.health} }
func (m UnitDamaged) String() string      { return Localize(m, english) }

type UnitRallied struct {
	entity EntityID
	roll   int
}

func (m UnitRallied) Entity() EntityID    { return m.entity }
func (m UnitRallied) Roll() int           { return m.roll }
func (m UnitRallied) Key() string         { return "unit.rallied" }
func (m UnitRallied) Args() []interface{} { return []interface{}{m.entity} }
func (m UnitRallied) String() string      { return Localize(m, english) }

type RallyFailed struct {
	entity EntityID
	roll   int
}

func (m RallyFailed) Entity() EntityID    { return m.entity }
func (m RallyFailed) Roll() int           { return m.roll }
func (m RallyFailed) Key() string         { return "unit.rally_failed" }
func (m RallyFailed) Args() []interface{} { return []interface{}{m.entity} }
func (m RallyFailed) String() string      { return Localize(m, english) }

type WeaponMalfunctioned struct {
	weapon EntityID
}

func (m WeaponMalfunctioned) Entity() EntityID    { return m.weapon }
func (m WeaponMalfunctioned) Key() string         { return "weapon.malfunctioned" }
func (m WeaponMalfunctioned) Args() []interface{} { return []interface{}{m.weapon} }
func (m WeaponMalfunctioned) String() string      { return Localize(m, english) }

type WeaponRepaired struct {
	weapon   EntityID
	repaired bool
}

func (m WeaponRepaired) Entity() EntityID { return m.weapon }
func (m WeaponRepaired) Repaired() bool   { return m.repaired }
func (m WeaponRepaired) Key() string {
	if m.repaired {
		return "weapon.repaired"
	}
	return "weapon.repair_failed"
}
func (m WeaponRepaired) Args() []interface{} { return []interface{}{m.weapon} }
func (m WeaponRepaired) String() string      { return Localize(m, english) }

type CloseCombatFought struct {
	result CloseCombatResult
}

func (m CloseCombatFought) Entity() EntityID          { return "" }
func (m CloseCombatFought) Result() CloseCombatResult { return m.result }
func (m CloseCombatFought) Key() string               { return "close_combat.fought" }
func (m CloseCombatFought) Args() []interface{}       { return []interface{}{m.result.Hex} }
func (m CloseCombatFought) String() string            { return Localize(m, english) }

type PhaseChanged struct {
	turn   int
	phase  Phase
	active Side
}

func (m PhaseChanged) Entity() EntityID    { return "" }
func (m PhaseChanged) Phase() Phase        { return m.phase }
func (m PhaseChanged) Key() string         { return "phase.changed" }
func (m PhaseChanged) Args() []interface{} { return []interface{}{m.turn, m.phase, m.active} }
func (m PhaseChanged) String() string      { return Localize(m, english) }

type ScenarioComplete struct{}

func (m ScenarioComplete) Entity() EntityID    { return "" }
func (m ScenarioComplete) Key() string         { return "scenario.complete" }
func (m ScenarioComplete) Args() []interface{} { return nil }
func (m ScenarioComplete) String() string      { return Localize(m, english) }
