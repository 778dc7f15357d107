package lib

// Casualty tally of a session, indexed by side.
type Score struct {
	MenLost      [2]int
	LeadersLost  [2]int
	VehiclesLost [2]int
	// Support weapons left behind by eliminated carriers.
	WeaponsDropped [2]int
}

func (s *Score) recordElimination(e Entity) {
	switch e.Kind() {
	case SquadKind:
		s.MenLost[e.Side]++
	case LeaderKind:
		s.LeadersLost[e.Side]++
	case VehicleKind:
		s.VehiclesLost[e.Side]++
	}
}

func (s *Score) recordDrop(weapon Entity) {
	s.WeaponsDropped[weapon.Side]++
}

// Leaders count double and vehicles triple.
func (s Score) losses(side Side) int {
	return s.MenLost[side] + 2*s.LeadersLost[side] + 3*s.VehiclesLost[side]
}

// Side that inflicted more losses than it took and by how much, on a 0..4
// scale. Advantage 0 means a draw.
func (s Score) WinningSideAndAdvantage() (winningSide Side, advantage int) {
	side0Score := 1 + s.losses(SideB)
	side1Score := 1 + s.losses(SideA)
	var score int
	if side0Score < side1Score {
		score = side1Score * 3 / side0Score
		winningSide = SideB
	} else {
		score = side0Score * 3 / side1Score
		winningSide = SideA
	}
	advantage = Clamp(score-3, 0, 4)
	return
}
