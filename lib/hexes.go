package lib

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

type HexID string

var ErrOutOfBounds = errors.New("hex out of bounds")

type Hex struct {
	ID        HexID
	Coords    HexCoords
	Elevation int
	Terrain   TerrainSet
}

// Immutable part of the map: hex geometry, elevation and terrain.
// Occupancy is tracked separately, see Occupancy.
type HexMap struct {
	hexes    []Hex
	byID     map[HexID]int
	byCoords map[HexCoords]int
	chart    TerrainChart

	hindranceThreshold int
}

func NewHexMap(hexes []Hex, chart TerrainChart, hindranceThreshold int) (*HexMap, error) {
	m := &HexMap{
		hexes:              make([]Hex, 0, len(hexes)),
		byID:               make(map[HexID]int, len(hexes)),
		byCoords:           make(map[HexCoords]int, len(hexes)),
		chart:              chart,
		hindranceThreshold: hindranceThreshold,
	}
	for _, h := range hexes {
		if h.ID == "" {
			return nil, fmt.Errorf("hex at %v has no id", h.Coords)
		}
		if h.Elevation < 0 {
			return nil, fmt.Errorf("hex %s has negative elevation %d", h.ID, h.Elevation)
		}
		if _, ok := m.byID[h.ID]; ok {
			return nil, fmt.Errorf("duplicate hex id %s", h.ID)
		}
		if other, ok := m.byCoords[h.Coords]; ok {
			return nil, fmt.Errorf("hexes %s and %s share coordinates %v", m.hexes[other].ID, h.ID, h.Coords)
		}
		m.byID[h.ID] = len(m.hexes)
		m.byCoords[h.Coords] = len(m.hexes)
		m.hexes = append(m.hexes, h)
	}
	return m, nil
}

func (m *HexMap) Len() int { return len(m.hexes) }

func (m *HexMap) Chart() *TerrainChart { return &m.chart }

// All hexes in load order.
func (m *HexMap) Hexes() []Hex {
	return slices.Clone(m.hexes)
}

func (m *HexMap) Contains(id HexID) bool {
	_, ok := m.byID[id]
	return ok
}

func (m *HexMap) Hex(id HexID) (Hex, error) {
	ix, ok := m.byID[id]
	if !ok {
		return Hex{}, fmt.Errorf("%w: %s", ErrOutOfBounds, id)
	}
	return m.hexes[ix], nil
}

func (m *HexMap) HexAt(c HexCoords) (Hex, bool) {
	ix, ok := m.byCoords[c]
	if !ok {
		return Hex{}, false
	}
	return m.hexes[ix], true
}

func (m *HexMap) index(id HexID) (int, error) {
	ix, ok := m.byID[id]
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrOutOfBounds, id)
	}
	return ix, nil
}

func (m *HexMap) Distance(a, b HexID) (int, error) {
	ha, err := m.Hex(a)
	if err != nil {
		return 0, err
	}
	hb, err := m.Hex(b)
	if err != nil {
		return 0, err
	}
	return ha.Coords.Distance(hb.Coords), nil
}

func (m *HexMap) AreAdjacent(a, b HexID) (bool, error) {
	d, err := m.Distance(a, b)
	if err != nil {
		return false, err
	}
	return d == 1, nil
}

func (m *HexMap) Neighbours(id HexID) ([]HexID, error) {
	h, err := m.Hex(id)
	if err != nil {
		return nil, err
	}
	var neighbours []HexID
	for i := 0; i < 6; i++ {
		if n, ok := m.HexAt(h.Coords.IthNeighbour(i)); ok {
			neighbours = append(neighbours, n.ID)
		}
	}
	return neighbours, nil
}

func (m *HexMap) MovementCost(id HexID) (int, error) {
	h, err := m.Hex(id)
	if err != nil {
		return 0, err
	}
	return m.chart.MovementCost(h.Terrain), nil
}

func (m *HexMap) CombatEffect(id HexID) (int, error) {
	h, err := m.Hex(id)
	if err != nil {
		return 0, err
	}
	return m.chart.CombatEffect(h.Terrain), nil
}

// Hexes on the straight line between a and b, both ends included.
// Points of the line falling off the map are skipped.
func (m *HexMap) Line(a, b HexID) ([]Hex, error) {
	ha, err := m.Hex(a)
	if err != nil {
		return nil, err
	}
	hb, err := m.Hex(b)
	if err != nil {
		return nil, err
	}
	return m.lineBetween(ha.Coords, hb.Coords), nil
}

func (m *HexMap) lineBetween(a, b HexCoords) []Hex {
	var line []Hex
	for _, c := range hexLine(a, b) {
		if h, ok := m.HexAt(c); ok {
			line = append(line, h)
		}
	}
	return line
}

// Up to extra map hexes lying on the line from a through b, beyond b, nearest first.
func (m *HexMap) LineBeyond(a, b HexID, extra int) ([]Hex, error) {
	ha, err := m.Hex(a)
	if err != nil {
		return nil, err
	}
	hb, err := m.Hex(b)
	if err != nil {
		return nil, err
	}
	d := ha.Coords.Distance(hb.Coords)
	if d == 0 || extra <= 0 {
		return nil, nil
	}
	k := 1 + DivRoundUp(extra, d)
	far := ha.Coords.Add(hb.Coords.Sub(ha.Coords).Scale(k))
	var beyond []Hex
	for _, c := range hexLine(ha.Coords, far) {
		dist := ha.Coords.Distance(c)
		if dist <= d || dist > d+extra {
			continue
		}
		if h, ok := m.HexAt(c); ok {
			beyond = append(beyond, h)
		}
	}
	return beyond, nil
}

func (m *HexMap) LineOfSight(a, b HexID) (bool, error) {
	line, err := m.Line(a, b)
	if err != nil {
		return false, err
	}
	if a == b {
		return true, nil
	}
	return m.lineIsClear(line), nil
}

// The line includes both ends. Only the hexes between them can block.
func (m *HexMap) lineIsClear(line []Hex) bool {
	if len(line) < 3 {
		return true
	}
	origin, target := line[0], line[len(line)-1]
	ceiling := Max(origin.Elevation, target.Elevation)
	hindrance := 0
	previousObstacle := false
	for _, h := range line[1 : len(line)-1] {
		if h.Elevation > ceiling {
			return false
		}
		obstacle := m.chart.IsObstacle(h.Terrain)
		if obstacle && previousObstacle {
			return false
		}
		previousObstacle = obstacle
		hindrance += m.chart.Hindrance(h.Terrain)
		if hindrance > m.hindranceThreshold {
			return false
		}
	}
	return true
}

// Identifies the immutable part of the map, used to key persisted LOS tables.
func (m *HexMap) Fingerprint() string {
	hash := sha256.New()
	for _, h := range m.hexes {
		fmt.Fprintf(hash, "%s:%d:%d:%d:%d;", h.ID, h.Coords.Q, h.Coords.R, h.Elevation, h.Terrain)
	}
	fmt.Fprintf(hash, "%v:%d", m.chart, m.hindranceThreshold)
	return hex.EncodeToString(hash.Sum(nil))
}
