package lib

import (
	"errors"
	"fmt"
)

// Machine readable reason of a refused order. The values double as message
// keys of the feedback catalogs.
type Reason string

const (
	ReasonEntityBroken               Reason = "ENTITY_BROKEN"
	ReasonAlreadyPrepFired           Reason = "ALREADY_PREP_FIRED"
	ReasonAlreadyMoved               Reason = "ALREADY_MOVED"
	ReasonAlreadyFired               Reason = "ALREADY_FIRED"
	ReasonAlreadyAttempted           Reason = "ALREADY_ATTEMPTED"
	ReasonWrongPhase                 Reason = "WRONG_PHASE"
	ReasonNotActiveSide              Reason = "NOT_ACTIVE_SIDE"
	ReasonSameWeaponTypeAlreadyFired Reason = "SAME_WEAPON_TYPE_ALREADY_FIRED"
	ReasonOverPortage                Reason = "OVER_PORTAGE"
	ReasonNotOrderable               Reason = "NOT_ORDERABLE"
	ReasonNotBroken                  Reason = "NOT_BROKEN"
	ReasonUnknownEntity              Reason = "UNKNOWN_ENTITY"
	ReasonUnknownOrder               Reason = "UNKNOWN_ORDER"
	ReasonScenarioComplete           Reason = "SCENARIO_COMPLETE"

	ReasonInsufficientMovementFactors Reason = "INSUFFICIENT_MOVEMENT_FACTORS"
	ReasonEnemyOccupiedDestination    Reason = "ENEMY_OCCUPIED_DESTINATION"
	ReasonOutOfBounds                 Reason = "OUT_OF_BOUNDS"
	ReasonEmptyPath                   Reason = "EMPTY_PATH"
	ReasonPathNotContiguous           Reason = "PATH_NOT_CONTIGUOUS"
	ReasonOverStacked                 Reason = "OVER_STACKED"
	ReasonAdvanceTooFar               Reason = "ADVANCE_TOO_FAR"
	ReasonRoutNotToCover              Reason = "ROUT_NOT_TO_COVER"
	ReasonLeaderCannotAccompany       Reason = "LEADER_CANNOT_ACCOMPANY"

	ReasonOutOfRange          Reason = "OUT_OF_RANGE"
	ReasonNoLineOfSight       Reason = "NO_LINE_OF_SIGHT"
	ReasonFirerBroken         Reason = "FIRER_BROKEN"
	ReasonNoFirepower         Reason = "NO_FIREPOWER"
	ReasonWeaponMalfunctioned Reason = "WEAPON_MALFUNCTIONED"
	ReasonWeaponNotCarried    Reason = "WEAPON_NOT_CARRIED"
	ReasonFriendlyTarget      Reason = "FRIENDLY_TARGET"
	ReasonPenetrationExceeded Reason = "PENETRATION_EXCEEDED"
	ReasonPenetrationOffLine  Reason = "PENETRATION_OFF_LINE"
	ReasonPenetrationBlocked  Reason = "PENETRATION_BLOCKED"
	ReasonNotMalfunctioned    Reason = "NOT_MALFUNCTIONED"
)

// Order refused by the validator. The order had no effect.
type Rejection struct {
	Reason Reason
	Entity EntityID
	Kind   OrderKind
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s order of %s rejected: %s", r.Kind, r.Entity, r.Reason)
}

func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

type MovementError struct {
	Reason Reason
	Entity EntityID
	// Hex at which the path failed, if any.
	Hex HexID
	// Accumulated cost up to the failure and the budget the entity had.
	Cost, Budget int
}

func (e *MovementError) Error() string {
	if e.Hex != "" {
		return fmt.Sprintf("cannot move %s to %s: %s (cost %d, budget %d)", e.Entity, e.Hex, e.Reason, e.Cost, e.Budget)
	}
	return fmt.Sprintf("cannot move %s: %s", e.Entity, e.Reason)
}

func (e *MovementError) Is(target error) bool {
	t, ok := target.(*MovementError)
	return ok && t.Reason == e.Reason
}

type FireError struct {
	Reason Reason
	Firer  EntityID
	Target EntityID
}

func (e *FireError) Error() string {
	return fmt.Sprintf("%s cannot fire at %s: %s", e.Firer, e.Target, e.Reason)
}

func (e *FireError) Is(target error) bool {
	t, ok := target.(*FireError)
	return ok && t.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrEntityBroken               = &Rejection{Reason: ReasonEntityBroken}
	ErrAlreadyPrepFired           = &Rejection{Reason: ReasonAlreadyPrepFired}
	ErrAlreadyMoved               = &Rejection{Reason: ReasonAlreadyMoved}
	ErrWrongPhase                 = &Rejection{Reason: ReasonWrongPhase}
	ErrNotActiveSide              = &Rejection{Reason: ReasonNotActiveSide}
	ErrSameWeaponTypeAlreadyFired = &Rejection{Reason: ReasonSameWeaponTypeAlreadyFired}
	ErrOverPortage                = &Rejection{Reason: ReasonOverPortage}

	ErrInsufficientMovementFactors = &MovementError{Reason: ReasonInsufficientMovementFactors}
	ErrEnemyOccupiedDestination    = &MovementError{Reason: ReasonEnemyOccupiedDestination}

	ErrOutOfRange    = &FireError{Reason: ReasonOutOfRange}
	ErrNoLineOfSight = &FireError{Reason: ReasonNoLineOfSight}
	ErrFirerBroken   = &FireError{Reason: ReasonFirerBroken}
)

// Reason carried by any of the order errors, empty for other errors.
func ReasonOf(err error) Reason {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection.Reason
	}
	var movementErr *MovementError
	if errors.As(err, &movementErr) {
		return movementErr.Reason
	}
	var fireErr *FireError
	if errors.As(err, &fireErr) {
		return fireErr.Reason
	}
	if errors.Is(err, ErrOutOfBounds) {
		return ReasonOutOfBounds
	}
	if errors.Is(err, ErrAlreadyComplete) {
		return ReasonScenarioComplete
	}
	return ""
}

// Structural problem in a scenario. The session cannot start.
type ScenarioError struct {
	Scenario string
	Problems []string
}

func (e *ScenarioError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid scenario %q: %s", e.Scenario, e.Problems[0])
	}
	return fmt.Sprintf("invalid scenario %q: %d problems, first: %s", e.Scenario, len(e.Problems), e.Problems[0])
}

func (e *ScenarioError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
