package lib

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const tracerName = "github.com/pwiecz/squad_leader/lib"

// A running scenario. Orders are validated and executed one at a time;
// GameState is not safe for concurrent use.
type GameState struct {
	id   string
	rand *rand.Rand

	scenarioName string
	hexes        *HexMap
	occupancy    *Occupancy
	phases       *PhaseState
	entities     map[EntityID]*Entity
	// Entity ids in scenario order.
	entityOrder []EntityID

	options   *Options
	validator Validator
	movement  *MovementResolver
	fire      *FireResolver

	engagements         []Engagement
	closeCombatResolved bool
	score               Score

	logger *zap.Logger
	tracer trace.Tracer
}

// Result of an executed order.
type Accepted struct {
	Order Order
	// Movement factors spent by movement orders.
	Cost     int
	Fire     *FireOutcome
	Messages []Message
}

type HexSnapshot struct {
	Hex
	Occupants []EntityID
}

func NewGameState(rand *rand.Rand, scenario *Scenario, options Options) (*GameState, error) {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Terrain == (TerrainChart{}) {
		options.Terrain = DefaultTerrainChart()
	}
	hexes, err := NewHexMap(scenario.Hexes, options.Terrain, options.HindranceThreshold)
	if err != nil {
		return nil, &ScenarioError{Scenario: scenario.Name, Problems: []string{err.Error()}}
	}
	if problems := scenario.validate(hexes); problems != nil {
		return nil, problems
	}
	var los LineOfSight = hexes
	if options.LOS != nil {
		if options.LOS.Fingerprint() != hexes.Fingerprint() {
			return nil, &ScenarioError{Scenario: scenario.Name, Problems: []string{"line of sight table was computed for a different map"}}
		}
		los = options.LOS
	}

	s := &GameState{
		id:           uuid.New().String(),
		rand:         rand,
		scenarioName: scenario.Name,
		hexes:        hexes,
		occupancy:    NewOccupancy(),
		phases:       NewPhaseState(scenario.TurnLimit, scenario.FirstAttacker),
		entities:     make(map[EntityID]*Entity, len(scenario.Entities)),
		options:      &options,
		tracer:       otel.Tracer(tracerName),
	}
	s.logger = options.Logger.With(zap.String("session", s.id), zap.String("scenario", scenario.Name))
	s.validator = NewValidator(s.options)
	s.movement = NewMovementResolver(hexes, s.occupancy, s.options, scenario.StackingLimit)
	s.fire = NewFireResolver(hexes, los)
	for _, e := range scenario.Entities {
		entity := e.Snapshot()
		entity.Record = ActionRecord{}
		s.entities[entity.ID] = &entity
		s.entityOrder = append(s.entityOrder, entity.ID)
		s.occupancy.ShowUnit(entity)
	}
	s.logger.Info("scenario loaded",
		zap.Int("hexes", hexes.Len()),
		zap.Int("entities", len(s.entities)),
		zap.Int("turn_limit", scenario.TurnLimit))
	return s, nil
}

func (s *GameState) ID() string          { return s.id }
func (s *GameState) CurrentPhase() Phase { return s.phases.CurrentPhase() }
func (s *GameState) ActiveSide() Side    { return s.phases.ActiveSide() }
func (s *GameState) Attacker() Side      { return s.phases.Attacker() }
func (s *GameState) Turn() int           { return s.phases.Turn() }
func (s *GameState) Map() *HexMap        { return s.hexes }
func (s *GameState) Score() Score        { return s.score }
func (s *GameState) IsScenarioComplete() bool {
	return s.phases.IsComplete()
}

// Scenario time passed since the first turn started.
func (s *GameState) ElapsedTime() time.Duration {
	turns := Min(s.phases.Turn(), s.phases.TurnLimit()+1) - 1
	return time.Duration(turns) * s.options.TurnDuration
}

// Distance between two hexes in metres.
func (s *GameState) DistanceMeters(a, b HexID) (int, error) {
	d, err := s.hexes.Distance(a, b)
	if err != nil {
		return 0, err
	}
	return d * s.options.HexDistanceMeters, nil
}

func (s *GameState) Entity(id EntityID) (Entity, bool) {
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.Snapshot(), true
}

// All entities, eliminated ones included, in scenario order.
func (s *GameState) Entities() []Entity {
	entities := make([]Entity, 0, len(s.entityOrder))
	for _, id := range s.entityOrder {
		entities = append(entities, s.entities[id].Snapshot())
	}
	return entities
}

func (s *GameState) Hex(id HexID) (HexSnapshot, bool) {
	hex, err := s.hexes.Hex(id)
	if err != nil {
		return HexSnapshot{}, false
	}
	return HexSnapshot{Hex: hex, Occupants: s.occupancy.UnitsAt(id)}, true
}

func (s *GameState) Engagements() []Engagement {
	engagements := make([]Engagement, len(s.engagements))
	for i, e := range s.engagements {
		engagements[i] = Engagement{Hex: e.Hex, Entities: slices.Clone(e.Entities)}
	}
	return engagements
}

// Commanding leader of the entity: the composed leader of its side in its
// hex with the best leadership. Leaders are not led.
func (s *GameState) LeaderOf(id EntityID) (EntityID, bool) {
	e, ok := s.entities[id]
	if !ok || e.IsEliminated() || e.Kind() == LeaderKind {
		return "", false
	}
	var best *Entity
	for _, otherID := range s.occupancy.CombatantsAt(e.Hex) {
		other := s.entities[otherID]
		leader, ok := other.Attributes.(Leader)
		if !ok || other.Side != e.Side || other.IsBroken() {
			continue
		}
		if best == nil {
			best = other
			continue
		}
		bestLeadership := best.Attributes.(Leader).Leadership
		if leader.Leadership < bestLeadership || (leader.Leadership == bestLeadership && other.ID < best.ID) {
			best = other
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

func (s *GameState) leadershipModifier(id EntityID) int {
	leaderID, ok := s.LeaderOf(id)
	if !ok {
		return 0
	}
	return s.entities[leaderID].Attributes.(Leader).Leadership
}

// Total portage of the support weapons carried by the entity.
func (s *GameState) Portage(id EntityID) int {
	portage := 0
	for _, weapon := range s.carriedWeapons(id) {
		portage += weapon.Attributes.(SupportWeapon).Portage
	}
	return portage
}

func (s *GameState) carriedWeapons(id EntityID) []*Entity {
	carrier, ok := s.entities[id]
	if !ok {
		return nil
	}
	var weapons []*Entity
	for _, weaponID := range s.occupancy.UnitsAt(carrier.Hex) {
		weapon := s.entities[weaponID]
		if sw, ok := weapon.Attributes.(SupportWeapon); ok && sw.CarriedBy == id {
			weapons = append(weapons, weapon)
		}
	}
	return weapons
}

// Broken entities that have to rout: those outside woods and buildings and
// those next to or in the hex of a composed enemy.
func (s *GameState) RoutRequired() []EntityID {
	var ids []EntityID
	for _, id := range s.entityOrder {
		e := s.entities[id]
		if !e.IsBroken() || e.Kind() == SupportWeaponKind {
			continue
		}
		hex, err := s.hexes.Hex(e.Hex)
		if err != nil {
			continue
		}
		if !hex.Terrain.IsCover() || s.composedEnemyNear(e) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *GameState) composedEnemyNear(e *Entity) bool {
	neighbours, _ := s.hexes.Neighbours(e.Hex)
	for _, hex := range append(neighbours, e.Hex) {
		for _, id := range s.occupancy.CombatantsAt(hex) {
			other := s.entities[id]
			if other.Side != e.Side && other.Condition == Composed {
				return true
			}
		}
	}
	return false
}

// Moves play to the next phase. Pending close combats are resolved when
// leaving the Close Combat phase and action records are reset when a new
// turn begins.
func (s *GameState) AdvancePhase(ctx context.Context) (Phase, []Message, error) {
	_, span := s.tracer.Start(ctx, "GameState.AdvancePhase", trace.WithAttributes(
		attribute.String("session", s.id),
		attribute.String("phase.from", s.phases.CurrentPhase().String()),
		attribute.Int("turn", s.phases.Turn())))
	defer span.End()

	if s.phases.IsComplete() {
		span.SetStatus(codes.Error, ErrAlreadyComplete.Error())
		return s.phases.CurrentPhase(), nil, ErrAlreadyComplete
	}
	var messages []Message
	if s.phases.CurrentPhase() == CloseCombat && !s.closeCombatResolved {
		messages = append(messages, s.resolveCloseCombat()...)
	}
	turn := s.phases.Turn()
	phase, err := s.phases.Advance()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return phase, nil, err
	}
	if s.phases.Turn() != turn {
		s.resetActionRecords()
	}
	switch phase {
	case CloseCombat:
		s.engagements = CollectEngagements(s.hexes, s.occupancy)
		s.closeCombatResolved = false
	case Rally:
		s.engagements = nil
	}
	span.SetAttributes(attribute.String("phase.to", phase.String()))
	if s.phases.IsComplete() {
		s.logger.Info("scenario complete", zap.Int("turns", s.phases.TurnLimit()))
		return phase, append(messages, ScenarioComplete{}), nil
	}
	s.logger.Debug("phase advanced",
		zap.Stringer("phase", phase),
		zap.Int("turn", s.phases.Turn()),
		zap.Stringer("active", s.phases.ActiveSide()),
		zap.Int("engagements", len(s.engagements)))
	return phase, append(messages, PhaseChanged{turn: s.phases.Turn(), phase: phase, active: s.phases.ActiveSide()}), nil
}

func (s *GameState) resetActionRecords() {
	for _, e := range s.entities {
		e.Record = ActionRecord{}
	}
}

// Resolves the engagements collected at the end of the Advance phase. Only
// possible once, during the Close Combat phase, and only with a close combat
// table configured.
func (s *GameState) ResolveCloseCombat(ctx context.Context) ([]Message, error) {
	_, span := s.tracer.Start(ctx, "GameState.ResolveCloseCombat", trace.WithAttributes(
		attribute.String("session", s.id),
		attribute.Int("engagements", len(s.engagements))))
	defer span.End()
	if s.phases.CurrentPhase() != CloseCombat {
		err := fmt.Errorf("close combat resolved in %v phase", s.phases.CurrentPhase())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if s.closeCombatResolved {
		return nil, nil
	}
	return s.resolveCloseCombat(), nil
}

func (s *GameState) resolveCloseCombat() []Message {
	s.closeCombatResolved = true
	if s.options.Tables == nil || s.options.Tables.CloseCombat == nil {
		return nil
	}
	var messages []Message
	for _, engagement := range s.engagements {
		var sides [2]CloseCombatSide
		for _, id := range engagement.Entities {
			e := s.entities[id]
			if e.IsEliminated() || e.Hex != engagement.Hex || e.IsBroken() {
				continue
			}
			sides[e.Side].Firepower += e.Firepower()
			for _, weapon := range s.carriedWeapons(id) {
				if sw := weapon.Attributes.(SupportWeapon); !sw.Malfunctioned {
					sides[e.Side].Firepower += sw.Firepower
				}
			}
			if leader, ok := e.Attributes.(Leader); ok && leader.Leadership < sides[e.Side].Modifier {
				sides[e.Side].Modifier = leader.Leadership
			}
		}
		sides[SideA].Roll = Roll2d6(s.rand)
		sides[SideB].Roll = Roll2d6(s.rand)
		result := ResolveEngagement(engagement.Hex, sides, s.options.Tables.CloseCombat)
		messages = append(messages, CloseCombatFought{result})
		s.logger.Info("close combat",
			zap.String("hex", string(engagement.Hex)),
			zap.Ints("firepower", []int{sides[SideA].Firepower, sides[SideB].Firepower}),
			zap.Ints("rolls", result.FinalRoll[:]),
			zap.Bools("eliminated", result.Eliminated[:]))
		for _, id := range engagement.Entities {
			e := s.entities[id]
			if result.Eliminated[e.Side] && !e.IsEliminated() {
				messages = append(messages, s.eliminate(id)...)
			}
		}
	}
	return messages
}

// Validates the order and, if it is legal, executes it. Refused orders
// return a *Rejection, *MovementError or *FireError and change nothing.
func (s *GameState) SubmitOrder(ctx context.Context, order Order) (Accepted, error) {
	_, span := s.tracer.Start(ctx, "GameState.SubmitOrder", trace.WithAttributes(
		attribute.String("session", s.id),
		attribute.String("order.kind", order.Kind.String()),
		attribute.String("order.entity", string(order.Entity)),
		attribute.String("phase", s.phases.CurrentPhase().String())))
	defer span.End()

	accepted, err := s.submitOrder(order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(ReasonOf(err)))
		s.logger.Info("order refused",
			zap.Stringer("kind", order.Kind),
			zap.String("entity", string(order.Entity)),
			zap.String("reason", string(ReasonOf(err))),
			zap.Error(err))
		return Accepted{}, err
	}
	s.logger.Info("order executed",
		zap.Stringer("kind", order.Kind),
		zap.String("entity", string(order.Entity)),
		zap.Int("cost", accepted.Cost),
		zap.Int("messages", len(accepted.Messages)))
	return accepted, nil
}

func (s *GameState) submitOrder(order Order) (Accepted, error) {
	entity, ok := s.entities[order.Entity]
	if !ok {
		return Accepted{}, &Rejection{Reason: ReasonUnknownEntity, Entity: order.Entity, Kind: order.Kind}
	}
	var weapon *Entity
	var weaponAttributes *SupportWeapon
	if order.Weapon != "" {
		var err error
		weapon, err = s.carriedWeapon(*entity, order)
		if err != nil {
			return Accepted{}, err
		}
		sw := weapon.Attributes.(SupportWeapon)
		weaponAttributes = &sw
	}
	carried := s.Portage(entity.ID)
	g, err := s.validator.validate(order, *entity, s.phases, weaponAttributes, carried)
	if err != nil {
		return Accepted{}, err
	}
	switch {
	case order.Kind.IsMovement():
		return s.executeMove(g, entity, carried)
	case order.Kind.IsFire():
		return s.executeFire(g, entity, weapon)
	case order.Kind == RallyOrder:
		return s.executeRally(g, entity)
	case order.Kind == RepairOrder:
		return s.executeRepair(g, entity, weapon)
	}
	return Accepted{}, &Rejection{Reason: ReasonUnknownOrder, Entity: entity.ID, Kind: order.Kind}
}

func (s *GameState) carriedWeapon(carrier Entity, order Order) (*Entity, error) {
	weapon, ok := s.entities[order.Weapon]
	if !ok || weapon.IsEliminated() {
		return nil, &Rejection{Reason: ReasonWeaponNotCarried, Entity: carrier.ID, Kind: order.Kind}
	}
	sw, ok := weapon.Attributes.(SupportWeapon)
	if !ok || sw.CarriedBy != carrier.ID || weapon.Hex != carrier.Hex {
		return nil, &Rejection{Reason: ReasonWeaponNotCarried, Entity: carrier.ID, Kind: order.Kind}
	}
	return weapon, nil
}

func (s *GameState) executeMove(g grant, entity *Entity, carried int) (Accepted, error) {
	order := g.order
	bonus := 0
	var leader *Entity
	var leaderGrant grant
	leaderCarried := 0
	if order.Leader != "" {
		var err error
		leader, leaderGrant, leaderCarried, err = s.accompanyingLeader(g, entity)
		if err != nil {
			return Accepted{}, err
		}
		bonus = s.options.LeaderMovementBonus
	}
	cost, err := s.movement.PlanMove(*entity, order.Path, g.phase, bonus)
	if err != nil {
		return Accepted{}, err
	}
	if leader != nil {
		if _, err := s.movement.PlanMove(*leader, order.Path, g.phase, 0); err != nil {
			return Accepted{}, &MovementError{Reason: ReasonLeaderCannotAccompany, Entity: entity.ID, Hex: leader.Hex}
		}
	}
	destination := order.Path[len(order.Path)-1]
	if destination != entity.Hex && entity.Kind() != SupportWeaponKind {
		arriving := 1
		if leader != nil {
			arriving++
		}
		if err := s.movement.CheckStacking(entity.ID, destination, arriving); err != nil {
			return Accepted{}, err
		}
	}

	// Everything is checked, from here on the order only mutates state.
	accepted := Accepted{Order: order, Cost: cost}
	s.moveWithWeapons(entity, destination)
	entity.Record = g.record(entity.Record, carried, order.Path)
	accepted.Messages = append(accepted.Messages,
		OrderAccepted{entity.ID, order.Kind},
		UnitMoved{entity: entity.ID, to: destination, cost: cost})
	if leader != nil {
		s.moveWithWeapons(leader, destination)
		leader.Record = leaderGrant.record(leader.Record, leaderCarried, order.Path)
		accepted.Messages = append(accepted.Messages, UnitMoved{entity: leader.ID, to: destination, cost: cost})
	}
	return accepted, nil
}

func (s *GameState) accompanyingLeader(g grant, squad *Entity) (*Entity, grant, int, error) {
	fail := func() (*Entity, grant, int, error) {
		return nil, grant{}, 0, &MovementError{Reason: ReasonLeaderCannotAccompany, Entity: squad.ID}
	}
	if g.order.Kind != MoveOrder || squad.Kind() != SquadKind {
		return fail()
	}
	leader, ok := s.entities[g.order.Leader]
	if !ok || leader.Kind() != LeaderKind || leader.Side != squad.Side || leader.Hex != squad.Hex {
		return fail()
	}
	carried := s.Portage(leader.ID)
	leaderOrder := Order{Kind: MoveOrder, Entity: leader.ID, Path: g.order.Path}
	leaderGrant, err := s.validator.validate(leaderOrder, *leader, s.phases, nil, carried)
	if err != nil {
		return fail()
	}
	return leader, leaderGrant, carried, nil
}

func (s *GameState) moveWithWeapons(e *Entity, to HexID) {
	for _, weapon := range s.carriedWeapons(e.ID) {
		s.occupancy.MoveUnit(*weapon, to)
		weapon.Hex = to
	}
	s.occupancy.MoveUnit(*e, to)
	e.Hex = to
}

func (s *GameState) executeFire(g grant, firer *Entity, weapon *Entity) (Accepted, error) {
	order := g.order
	target, ok := s.entities[order.Target]
	if !ok || target.IsEliminated() || target.Kind() == SupportWeaponKind {
		return Accepted{}, &Rejection{Reason: ReasonUnknownEntity, Entity: firer.ID, Kind: order.Kind}
	}
	var sw *SupportWeapon
	if weapon != nil {
		attributes := weapon.Attributes.(SupportWeapon)
		sw = &attributes
	}
	outcome, err := s.fire.ResolveFire(*firer, sw, *target, g.phase, order.Penetration)
	if err != nil {
		return Accepted{}, err
	}
	if weapon != nil {
		outcome.Weapon = weapon.ID
	}
	if firer.Kind() != LeaderKind {
		outcome.LeadershipModifier = s.leadershipModifier(firer.ID)
	}

	firer.Record = g.record(firer.Record, 0, nil)
	accepted := Accepted{Order: order, Fire: &outcome}
	accepted.Messages = append(accepted.Messages, OrderAccepted{firer.ID, order.Kind}, UnitFired{outcome})
	if weapon != nil && sw.Breakdown > 0 {
		if roll := Roll2d6(s.rand); roll >= sw.Breakdown {
			attributes := weapon.Attributes.(SupportWeapon)
			attributes.Malfunctioned = true
			weapon.Attributes = attributes
			accepted.Messages = append(accepted.Messages, WeaponMalfunctioned{weapon.ID})
		}
	}
	accepted.Messages = append(accepted.Messages, s.applyFire(outcome, firer.Side)...)
	return accepted, nil
}

// Applies the fire outcome to the enemies of side in the affected hexes.
func (s *GameState) applyFire(outcome FireOutcome, side Side) []Message {
	var messages []Message
	var table *FireTable
	if s.options.Tables != nil {
		table = s.options.Tables.Fire
	}
	for _, hexID := range outcome.Affected {
		hex, err := s.hexes.Hex(hexID)
		if err != nil {
			continue
		}
		targets := s.occupancy.CombatantsAt(hexID)
		slices.Sort(targets)
		var result FireResult
		if table != nil {
			roll := Roll2d6(s.rand) + s.hexes.Chart().CombatEffect(hex.Terrain) + outcome.LeadershipModifier
			result = table.Lookup(outcome.Firepower, roll)
			s.logger.Debug("fire effect",
				zap.String("hex", string(hexID)),
				zap.Int("firepower", outcome.Firepower),
				zap.Int("roll", roll),
				zap.Stringer("result", result))
		}
		for _, id := range targets {
			e := s.entities[id]
			if e.Side == side || e.IsEliminated() {
				continue
			}
			if vehicle, ok := e.Attributes.(Vehicle); ok {
				hit := e.Target(hex).Hit(outcome.Firepower)
				if hit.Health == vehicle.Health {
					continue
				}
				if hit.IsDestroyed() {
					messages = append(messages, s.eliminate(id)...)
				} else {
					vehicle.Health = hit.Health
					e.Attributes = vehicle
					messages = append(messages, UnitDamaged{entity: id, health: hit.Health})
				}
				continue
			}
			switch {
			case result.Kill:
				messages = append(messages, s.eliminate(id)...)
			case result.MoraleCheck:
				messages = append(messages, s.moraleCheck(id, result.Modifier)...)
			}
		}
	}
	return messages
}

// Breaks the entity when 2d6 plus modifier exceeds its morale, eliminates
// it when it was already broken.
func (s *GameState) moraleCheck(id EntityID, modifier int) []Message {
	e := s.entities[id]
	roll := Roll2d6(s.rand) + modifier + s.leadershipModifier(id)
	if roll <= e.Morale() {
		return nil
	}
	if e.IsBroken() {
		return s.eliminate(id)
	}
	return s.breakEntity(id)
}

func (s *GameState) breakEntity(id EntityID) []Message {
	e := s.entities[id]
	if e.Condition != Composed {
		return nil
	}
	e.Condition = Broken
	s.logger.Info("entity broken", zap.String("entity", string(id)))
	return []Message{UnitBroken{id}}
}

// Removes the entity from the map. Weapons it carried stay in its hex.
func (s *GameState) eliminate(id EntityID) []Message {
	e := s.entities[id]
	if e.IsEliminated() {
		return nil
	}
	for _, weapon := range s.carriedWeapons(id) {
		attributes := weapon.Attributes.(SupportWeapon)
		attributes.CarriedBy = ""
		weapon.Attributes = attributes
		s.score.recordDrop(*weapon)
	}
	s.occupancy.HideUnit(id, e.Hex)
	e.Condition = Eliminated
	s.score.recordElimination(*e)
	s.logger.Info("entity eliminated", zap.String("entity", string(id)), zap.Stringer("kind", e.Kind()))
	return []Message{UnitEliminated{id}}
}

func (s *GameState) executeRally(g grant, e *Entity) (Accepted, error) {
	roll := Roll2d6(s.rand)
	if e.Kind() != LeaderKind {
		roll += s.leadershipModifier(e.ID)
	}
	e.Record = g.record(e.Record, 0, nil)
	accepted := Accepted{Order: g.order, Messages: []Message{OrderAccepted{e.ID, g.order.Kind}}}
	if roll <= e.Morale() {
		e.Condition = Composed
		accepted.Messages = append(accepted.Messages, UnitRallied{entity: e.ID, roll: roll})
	} else {
		accepted.Messages = append(accepted.Messages, RallyFailed{entity: e.ID, roll: roll})
	}
	return accepted, nil
}

func (s *GameState) executeRepair(g grant, carrier *Entity, weapon *Entity) (Accepted, error) {
	if weapon == nil {
		return Accepted{}, &Rejection{Reason: ReasonWeaponNotCarried, Entity: carrier.ID, Kind: g.order.Kind}
	}
	attributes := weapon.Attributes.(SupportWeapon)
	if !attributes.Malfunctioned {
		return Accepted{}, &Rejection{Reason: ReasonNotMalfunctioned, Entity: carrier.ID, Kind: g.order.Kind}
	}
	carrier.Record = g.record(carrier.Record, 0, nil)
	repaired := RollDie(s.rand) <= s.options.RepairNumber
	if repaired {
		attributes.Malfunctioned = false
		weapon.Attributes = attributes
	}
	return Accepted{Order: g.order, Messages: []Message{
		OrderAccepted{carrier.ID, g.order.Kind},
		WeaponRepaired{weapon: weapon.ID, repaired: repaired}}}, nil
}
