package lib

import (
	"fmt"
)

// Precomputed line of sight between every pair of hexes of a map.
// It is filled in completely before it is handed to a session and never
// modified afterwards.
type LOSTable struct {
	fingerprint string
	ids         []HexID
	index       map[HexID]int
	visible     []bool
}

func PrecomputeLOS(m *HexMap) *LOSTable {
	n := m.Len()
	t := &LOSTable{
		fingerprint: m.Fingerprint(),
		ids:         make([]HexID, n),
		index:       make(map[HexID]int, n),
		visible:     make([]bool, n*n),
	}
	for i, h := range m.hexes {
		t.ids[i] = h.ID
		t.index[h.ID] = i
	}
	for i, from := range m.hexes {
		for j, to := range m.hexes {
			if i == j {
				t.visible[i*n+j] = true
				continue
			}
			t.visible[i*n+j] = m.lineIsClear(m.lineBetween(from.Coords, to.Coords))
		}
	}
	return t
}

// Rebuilds a table from persisted rows. Pairs missing from rows are not visible.
func NewLOSTable(fingerprint string, ids []HexID, rows []LOSRow) (*LOSTable, error) {
	n := len(ids)
	t := &LOSTable{
		fingerprint: fingerprint,
		ids:         append([]HexID(nil), ids...),
		index:       make(map[HexID]int, n),
		visible:     make([]bool, n*n),
	}
	for i, id := range ids {
		if _, ok := t.index[id]; ok {
			return nil, fmt.Errorf("duplicate hex id %s in LOS table", id)
		}
		t.index[id] = i
		t.visible[i*n+i] = true
	}
	for _, row := range rows {
		i, ok := t.index[row.From]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, row.From)
		}
		j, ok := t.index[row.To]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, row.To)
		}
		t.visible[i*n+j] = row.Visible
	}
	return t, nil
}

type LOSRow struct {
	From, To HexID
	Visible  bool
}

func (t *LOSTable) Fingerprint() string { return t.fingerprint }

func (t *LOSTable) HexIDs() []HexID {
	return append([]HexID(nil), t.ids...)
}

func (t *LOSTable) Rows() []LOSRow {
	n := len(t.ids)
	rows := make([]LOSRow, 0, n*n)
	for i, from := range t.ids {
		for j, to := range t.ids {
			rows = append(rows, LOSRow{From: from, To: to, Visible: t.visible[i*n+j]})
		}
	}
	return rows
}

func (t *LOSTable) LineOfSight(a, b HexID) (bool, error) {
	i, ok := t.index[a]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrOutOfBounds, a)
	}
	j, ok := t.index[b]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrOutOfBounds, b)
	}
	return t.visible[i*len(t.ids)+j], nil
}
