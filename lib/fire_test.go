package lib

import (
	"errors"
	"reflect"
	"testing"
)

func newFireResolver(t *testing.T, hexes []Hex) *FireResolver {
	t.Helper()
	return NewFireResolver(newTestMap(t, hexes), nil)
}

func TestMovedFirerFiresAtHalfFirepower(t *testing.T) {
	r := newFireResolver(t, hexRow(4))
	firer := squad("s1", SideA, "h0")
	target := squad("e1", SideB, "h3")

	outcome, err := r.ResolveFire(firer, nil, target, PrepFire, nil)
	if err != nil {
		t.Fatal("Fire rejected,", err)
	}
	if outcome.Firepower != 6 || outcome.Halved {
		t.Errorf("Expected full firepower 6, got %d (halved %v)", outcome.Firepower, outcome.Halved)
	}

	firer.Record.Moved = true
	firer.Attributes = Squad{Firepower: 7, Range: 6, Morale: 7}
	outcome, err = r.ResolveFire(firer, nil, target, AdvancingFire, nil)
	if err != nil {
		t.Fatal("Fire rejected,", err)
	}
	if outcome.Firepower != 3 || !outcome.Halved {
		t.Errorf("Expected halved firepower 3, got %d (halved %v)", outcome.Firepower, outcome.Halved)
	}
}

func TestFireRejections(t *testing.T) {
	hexes := hexRow(6)
	hexes[1].Terrain = NewTerrainSet(Woods)
	hexes[2].Terrain = NewTerrainSet(Woods)
	r := newFireResolver(t, hexes)
	broken := squad("s1", SideA, "h0")
	broken.Condition = Broken
	prepFired := squad("s1", SideA, "h3")
	prepFired.Record.PrepFired = true

	for _, tc := range []struct {
		name   string
		firer  Entity
		weapon *SupportWeapon
		target Entity
		phase  Phase
		err    error
	}{
		{"broken firer", broken, nil, squad("e1", SideB, "h1"), PrepFire, ErrFirerBroken},
		{"out of range", squad("s1", SideA, "h3"), &SupportWeapon{Type: LMG, Firepower: 2, Range: 1}, squad("e1", SideB, "h5"), PrepFire, ErrOutOfRange},
		{"behind two woods", squad("s1", SideA, "h0"), nil, squad("e1", SideB, "h3"), PrepFire, ErrNoLineOfSight},
		{"friendly target", squad("s1", SideA, "h3"), nil, squad("s2", SideA, "h4"), PrepFire, &FireError{Reason: ReasonFriendlyTarget}},
		{"malfunctioned weapon", squad("s1", SideA, "h3"), &SupportWeapon{Type: MMG, Firepower: 4, Range: 8, Malfunctioned: true}, squad("e1", SideB, "h4"), PrepFire, &FireError{Reason: ReasonWeaponMalfunctioned}},
		{"no firepower", Entity{ID: "v1", Side: SideA, Hex: "h3", Attributes: Vehicle{MovementFactors: 10, Armor: 2, Health: 3}}, nil, squad("e1", SideB, "h4"), PrepFire, &FireError{Reason: ReasonNoFirepower}},
		{"advancing fire after prep fire", prepFired, nil, squad("e1", SideB, "h4"), AdvancingFire, &FireError{Reason: ReasonAlreadyPrepFired}},
	} {
		if _, err := r.ResolveFire(tc.firer, tc.weapon, tc.target, tc.phase, nil); !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}

func TestMortarIgnoresLineOfSight(t *testing.T) {
	hexes := hexRow(4)
	hexes[1].Terrain = NewTerrainSet(Woods)
	hexes[2].Terrain = NewTerrainSet(Building)
	r := newFireResolver(t, hexes)
	mortar := &SupportWeapon{Type: Mortar, Firepower: 4, Range: 10}
	if _, err := r.ResolveFire(squad("s1", SideA, "h0"), mortar, squad("e1", SideB, "h3"), PrepFire, nil); err != nil {
		t.Errorf("Mortar fire rejected, %v", err)
	}
}

func TestEnPassantDefensiveFire(t *testing.T) {
	hexes := hexRow(4)
	hexes[1].Terrain = NewTerrainSet(Woods)
	hexes[2].Terrain = NewTerrainSet(Woods)
	hexes = append(hexes, testHex("open", 1, -1, 0))
	r := newFireResolver(t, hexes)
	firer := squad("s1", SideA, "h0")
	target := squad("e1", SideB, "h3")
	target.Record.Path = []HexID{"open", "h3"}

	if _, err := r.ResolveFire(firer, nil, target, PrepFire, nil); !errors.Is(err, ErrNoLineOfSight) {
		t.Errorf("Expected ErrNoLineOfSight outside defensive fire, got %v", err)
	}
	outcome, err := r.ResolveFire(firer, nil, target, DefensiveFire, nil)
	if err != nil {
		t.Fatal("Defensive fire at a moving target rejected,", err)
	}
	if !outcome.EnPassant {
		t.Error("Fire should be marked as en passant")
	}
}

func TestPenetration(t *testing.T) {
	mg := &SupportWeapon{Type: HMG, Firepower: 8, Penetration: 3, Range: 6}
	firer := squad("s1", SideA, "h0")
	target := squad("e1", SideB, "h2")

	r := newFireResolver(t, hexRow(7))
	outcome, err := r.ResolveFire(firer, mg, target, PrepFire, nil)
	if err != nil {
		t.Fatal("Fire rejected,", err)
	}
	if outcome.Penetration != 3 || !reflect.DeepEqual(outcome.Affected, []HexID{"h2", "h3", "h4"}) {
		t.Errorf("Expected penetration 3 through h2-h4, got %d %v", outcome.Penetration, outcome.Affected)
	}

	outcome, err = r.ResolveFire(firer, mg, target, PrepFire, []HexID{"h5"})
	if err != nil {
		t.Fatal("Fire rejected,", err)
	}
	if !reflect.DeepEqual(outcome.Affected, []HexID{"h2", "h5"}) {
		t.Errorf("Expected the selected hex to be affected, got %v", outcome.Affected)
	}

	hill := hexRow(7)
	hill[2].Elevation = 1
	r = newFireResolver(t, hill)
	outcome, err = r.ResolveFire(firer, mg, target, PrepFire, nil)
	if err != nil {
		t.Fatal("Fire rejected,", err)
	}
	if outcome.Penetration != 1 || !reflect.DeepEqual(outcome.Affected, []HexID{"h2"}) {
		t.Errorf("Expected no penetration across elevations, got %d %v", outcome.Penetration, outcome.Affected)
	}
}

func TestPenetrationSelection(t *testing.T) {
	mg := &SupportWeapon{Type: HMG, Firepower: 8, Penetration: 3, Range: 6}
	firer := squad("s1", SideA, "h0")
	target := squad("e1", SideB, "h2")
	hexes := hexRow(7)
	hexes[3].Terrain = NewTerrainSet(Woods)
	hexes = append(hexes, testHex("aside", 3, -1, 0))
	r := newFireResolver(t, hexes)

	for _, tc := range []struct {
		selected []HexID
		reason   Reason
	}{
		{[]HexID{"h3", "h4", "h5"}, ReasonPenetrationExceeded},
		{[]HexID{"aside"}, ReasonPenetrationOffLine},
		{[]HexID{"h3", "h3"}, ReasonPenetrationOffLine},
		{[]HexID{"h4"}, ReasonPenetrationBlocked},
	} {
		_, err := r.ResolveFire(firer, mg, target, PrepFire, tc.selected)
		if ReasonOf(err) != tc.reason {
			t.Errorf("Selection %v: expected %s, got %v", tc.selected, tc.reason, err)
		}
		var fireErr *FireError
		if errors.As(err, &fireErr) && (fireErr.Firer != "s1" || fireErr.Target != "e1") {
			t.Errorf("Fire error should name firer and target, got %+v", fireErr)
		}
	}

	outcome, err := r.ResolveFire(firer, mg, target, PrepFire, nil)
	if err != nil {
		t.Fatal("Fire rejected,", err)
	}
	if !reflect.DeepEqual(outcome.Affected, []HexID{"h2", "h3"}) {
		t.Errorf("Penetration should stop at the woods, got %v", outcome.Affected)
	}
}

func TestPenetrationReachesPastRange(t *testing.T) {
	mg := &SupportWeapon{Type: HMG, Firepower: 8, Penetration: 3, Range: 2}
	firer := squad("s1", SideA, "h0")
	target := squad("e1", SideB, "h2")
	r := newFireResolver(t, hexRow(6))

	outcome, err := r.ResolveFire(firer, mg, target, PrepFire, nil)
	if err != nil {
		t.Fatal("Fire at maximum range rejected,", err)
	}
	if !reflect.DeepEqual(outcome.Affected, []HexID{"h2", "h3", "h4"}) {
		t.Errorf("Expected penetration through h2-h4, got %v", outcome.Affected)
	}
	outcome, err = r.ResolveFire(firer, mg, target, PrepFire, []HexID{"h3"})
	if err != nil {
		t.Fatal("Selecting the hex behind the target rejected,", err)
	}
	if !reflect.DeepEqual(outcome.Affected, []HexID{"h2", "h3"}) {
		t.Errorf("Expected h2 and h3 to be affected, got %v", outcome.Affected)
	}
}
