package lib

import (
	"time"

	"go.uber.org/zap"
)

// Session configuration. Everything that would otherwise be a process wide
// setting is passed to NewGameState through this value.
type Options struct {
	SquadMovementFactors  int
	LeaderMovementFactors int
	// Added once to the budget of a squad moving together with a leader.
	LeaderMovementBonus int

	SquadPortage         int
	SquadPortageForfeit  int
	LeaderPortage        int
	LeaderPortageForfeit int

	HindranceThreshold int
	// A malfunctioned weapon is repaired on a die roll not above this number.
	RepairNumber int

	HexDistanceMeters int
	TurnDuration      time.Duration

	Terrain TerrainChart
	// Optional. When nil, fire and close combat only report their inputs.
	Tables *EffectTables
	// Optional precomputed line of sight for the scenario map.
	LOS *LOSTable

	Logger *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		SquadMovementFactors:  4,
		LeaderMovementFactors: 6,
		LeaderMovementBonus:   2,
		SquadPortage:          5,
		SquadPortageForfeit:   4,
		LeaderPortage:         3,
		LeaderPortageForfeit:  2,
		HindranceThreshold:    5,
		RepairNumber:          1,
		HexDistanceMeters:     40,
		TurnDuration:          2 * time.Minute,
		Terrain:               DefaultTerrainChart(),
		Logger:                zap.NewNop(),
	}
}
