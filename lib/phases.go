package lib

import (
	"errors"
	"fmt"
)

type Phase int

const (
	Rally Phase = iota
	PrepFire
	Movement
	DefensiveFire
	AdvancingFire
	Rout
	Advance
	CloseCombat
	numPhases
)

func (p Phase) String() string {
	switch p {
	case Rally:
		return "RALLY"
	case PrepFire:
		return "PREP_FIRE"
	case Movement:
		return "MOVEMENT"
	case DefensiveFire:
		return "DEFENSIVE_FIRE"
	case AdvancingFire:
		return "ADVANCING_FIRE"
	case Rout:
		return "ROUT"
	case Advance:
		return "ADVANCE"
	case CloseCombat:
		return "CLOSE_COMBAT"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Player int

const (
	Attacker Player = 0
	Defender Player = 1
)

func (p Player) String() string {
	switch p {
	case Attacker:
		return "ATTACKER"
	case Defender:
		return "DEFENDER"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

var ErrAlreadyComplete = errors.New("scenario already complete")

// Turn and phase bookkeeping. A turn consists of two passes through all the
// phases, the first with the attacker active and the second with the
// defender active. After both passes the roles swap.
type PhaseState struct {
	turn      int
	turnLimit int
	phase     Phase
	// 0 during the attacker's pass, 1 during the defender's.
	pass     int
	attacker Side
	complete bool
}

func NewPhaseState(turnLimit int, firstAttacker Side) *PhaseState {
	return &PhaseState{
		turn:      1,
		turnLimit: turnLimit,
		phase:     Rally,
		attacker:  firstAttacker,
		complete:  turnLimit < 1,
	}
}

func (s *PhaseState) CurrentPhase() Phase { return s.phase }
func (s *PhaseState) Turn() int           { return s.turn }
func (s *PhaseState) TurnLimit() int      { return s.turnLimit }
func (s *PhaseState) Attacker() Side      { return s.attacker }
func (s *PhaseState) IsComplete() bool    { return s.complete }

func (s *PhaseState) ActiveSide() Side {
	if s.pass == 0 {
		return s.attacker
	}
	return s.attacker.Other()
}

func (s *PhaseState) RoleOf(side Side) Player {
	if side == s.attacker {
		return Attacker
	}
	return Defender
}

// Moves to the next phase. The returned phase is the new current phase.
func (s *PhaseState) Advance() (Phase, error) {
	if s.complete {
		return s.phase, ErrAlreadyComplete
	}
	if s.phase < CloseCombat {
		s.phase++
		return s.phase, nil
	}
	s.phase = Rally
	if s.pass == 0 {
		s.pass = 1
		return s.phase, nil
	}
	s.pass = 0
	s.attacker = s.attacker.Other()
	s.turn++
	if s.turn > s.turnLimit {
		s.complete = true
	}
	return s.phase, nil
}
