package lib

import (
	"errors"
	"testing"
)

func TestPhaseOrderAndRoleSwap(t *testing.T) {
	s := NewPhaseState(2, SideA)
	if s.CurrentPhase() != Rally || s.Turn() != 1 || s.ActiveSide() != SideA {
		t.Fatalf("Unexpected initial state %v turn %d side %v", s.CurrentPhase(), s.Turn(), s.ActiveSide())
	}
	expected := []Phase{PrepFire, Movement, DefensiveFire, AdvancingFire, Rout, Advance, CloseCombat}
	for _, phase := range expected {
		next, err := s.Advance()
		if err != nil {
			t.Fatal("Error advancing,", err)
		}
		if next != phase {
			t.Errorf("Expected phase %v, got %v", phase, next)
		}
		if s.ActiveSide() != SideA {
			t.Errorf("Attacker should be active during the first pass, phase %v", next)
		}
	}
	if next, _ := s.Advance(); next != Rally || s.ActiveSide() != SideB || s.Turn() != 1 {
		t.Errorf("Expected the defender's pass of turn 1, got %v side %v turn %d", next, s.ActiveSide(), s.Turn())
	}
	if s.RoleOf(SideB) != Defender {
		t.Error("Roles should not change within a turn")
	}
	for i := 0; i < 8; i++ {
		s.Advance()
	}
	if s.Turn() != 2 {
		t.Errorf("Expected turn 2, got %d", s.Turn())
	}
	if s.Attacker() != SideB || s.ActiveSide() != SideB || s.RoleOf(SideA) != Defender {
		t.Error("Attacker and defender should swap after a turn")
	}
}

func TestScenarioCompletesAfterTurnLimit(t *testing.T) {
	s := NewPhaseState(1, SideB)
	for i := 0; i < 2*int(numPhases); i++ {
		if s.IsComplete() {
			t.Fatalf("Completed early after %d advances", i)
		}
		if _, err := s.Advance(); err != nil {
			t.Fatal("Error advancing,", err)
		}
	}
	if !s.IsComplete() {
		t.Fatal("Scenario should be complete")
	}
	if _, err := s.Advance(); !errors.Is(err, ErrAlreadyComplete) {
		t.Errorf("Expected ErrAlreadyComplete, got %v", err)
	}
	if s.Turn() != 2 {
		t.Errorf("Turn should not advance past completion, got %d", s.Turn())
	}
}

func TestZeroTurnLimitStartsComplete(t *testing.T) {
	if !NewPhaseState(0, SideA).IsComplete() {
		t.Error("A scenario without turns should be complete")
	}
}
