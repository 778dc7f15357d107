package lib

import (
	"errors"
	"testing"

	"github.com/pwiecz/squad_leader/i18n"
)

func TestLocalizedFeedback(t *testing.T) {
	german := i18n.Printer("de-DE")
	moved := UnitMoved{entity: "a1", to: "h2", cost: 3}
	if s := moved.String(); s != "a1 moved to h2 spending 3 movement factors." {
		t.Errorf("Unexpected english text %q", s)
	}
	if s := Localize(moved, german); s != "a1 ist nach h2 vorgerückt und hat 3 Bewegungspunkte verbraucht." {
		t.Errorf("Unexpected german text %q", s)
	}
	if s := Localize(OrderAccepted{entity: "a1", kind: MoveOrder}, german); s != "Jawohl! Befehl wird ausgeführt." {
		t.Errorf("Unexpected german text %q", s)
	}
	if s := (PhaseChanged{turn: 2, phase: DefensiveFire, active: SideB}).String(); s != "Turn 2, DEFENSIVE_FIRE phase, side B active." {
		t.Errorf("Unexpected english text %q", s)
	}
}

func TestExplainRejections(t *testing.T) {
	err := &Rejection{Reason: ReasonEntityBroken, Entity: "a1", Kind: MoveOrder}
	if s := Explain(err, english); s != "The unit is broken and unable to execute the order." {
		t.Errorf("Unexpected explanation %q", s)
	}
	other := errors.New("disk on fire")
	if s := Explain(other, english); s != "disk on fire" {
		t.Errorf("Unexpected explanation %q", s)
	}
	for _, reason := range []Reason{ReasonOverStacked, ReasonPenetrationBlocked, ReasonNotMalfunctioned} {
		if s := Explain(&MovementError{Reason: reason}, english); s == string(reason) {
			t.Errorf("Reason %s has no english text", reason)
		}
	}
}
