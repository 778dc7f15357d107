package lib

import (
	"context"
	"math/rand"
	"testing"
)

var ctx = context.Background()

func testHex(id string, q, r, elevation int, terrain ...Terrain) Hex {
	return Hex{
		ID:        HexID(id),
		Coords:    HexCoords{q, r},
		Elevation: elevation,
		Terrain:   NewTerrainSet(terrain...)}
}

// Hexes h0..h<n-1> along the Q axis, all open ground at elevation 0.
func hexRow(n int) []Hex {
	hexes := make([]Hex, n)
	for i := range hexes {
		hexes[i] = testHex(rowID(i), i, 0, 0, OpenGround)
	}
	return hexes
}

func rowID(i int) string {
	return "h" + string(rune('0'+i))
}

func newTestMap(t *testing.T, hexes []Hex) *HexMap {
	t.Helper()
	m, err := NewHexMap(hexes, DefaultTerrainChart(), 5)
	if err != nil {
		t.Fatal("Error creating map,", err)
	}
	return m
}

func squad(id string, side Side, hex string) Entity {
	return Entity{
		ID:         EntityID(id),
		Side:       side,
		Hex:        HexID(hex),
		Attributes: Squad{Firepower: 6, Range: 6, Morale: 7, MovementFactors: 4}}
}

func leader(id string, side Side, hex string, leadership int) Entity {
	return Entity{
		ID:         EntityID(id),
		Side:       side,
		Hex:        HexID(hex),
		Attributes: Leader{Name: id, Leadership: leadership, Morale: 8, MovementFactors: 6}}
}

func machineGun(id string, side Side, hex string, carrier string) Entity {
	return Entity{
		ID:   EntityID(id),
		Side: side,
		Hex:  HexID(hex),
		Attributes: SupportWeapon{
			Type: MMG, Firepower: 4, Penetration: 3, Range: 6, Portage: 3,
			CarriedBy: EntityID(carrier)}}
}

// Phase state with the given phase current during the given pass.
func phaseStateAt(t *testing.T, phase Phase, pass int) *PhaseState {
	t.Helper()
	s := NewPhaseState(3, SideA)
	for s.CurrentPhase() != phase || s.pass != pass {
		if _, err := s.Advance(); err != nil {
			t.Fatal("Error advancing phase,", err)
		}
	}
	return s
}

func newTestGame(t *testing.T, scenario *Scenario, options Options) *GameState {
	t.Helper()
	g, err := NewGameState(rand.New(rand.NewSource(1)), scenario, options)
	if err != nil {
		t.Fatal("Error creating game state,", err)
	}
	return g
}

func rowScenario(n int, entities ...Entity) *Scenario {
	return &Scenario{
		Name:          "test",
		TurnLimit:     2,
		FirstAttacker: SideA,
		Hexes:         hexRow(n),
		Entities:      entities,
	}
}

func advanceTo(t *testing.T, g *GameState, phase Phase, active Side) {
	t.Helper()
	for i := 0; g.CurrentPhase() != phase || g.ActiveSide() != active; i++ {
		if i > 2*int(numPhases) {
			t.Fatalf("Phase %v with side %v active not reached", phase, active)
		}
		if _, _, err := g.AdvancePhase(ctx); err != nil {
			t.Fatal("Error advancing phase,", err)
		}
	}
}

func mustSubmit(t *testing.T, g *GameState, order Order) Accepted {
	t.Helper()
	accepted, err := g.SubmitOrder(ctx, order)
	if err != nil {
		t.Fatalf("Order %v of %s rejected, %v", order.Kind, order.Entity, err)
	}
	return accepted
}

func hasMessage[T Message](messages []Message) bool {
	for _, m := range messages {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}
