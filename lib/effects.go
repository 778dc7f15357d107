package lib

import (
	"fmt"
	"strconv"
	"strings"
)

// Outcome of one fire table lookup against a hex.
type FireResult struct {
	Kill        bool
	MoraleCheck bool
	// Added to the morale check roll.
	Modifier int
}

func (r FireResult) String() string {
	switch {
	case r.Kill:
		return "K"
	case r.MoraleCheck && r.Modifier == 0:
		return "NMC"
	case r.MoraleCheck:
		return fmt.Sprintf("%dMC", r.Modifier)
	default:
		return "-"
	}
}

// Parses the notation used in fire tables: K, NMC, 1MC, 2MC... and - or an
// empty string for no effect.
func ParseFireResult(s string) (FireResult, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "", "-":
		return FireResult{}, nil
	case "K", "KIA":
		return FireResult{Kill: true}, nil
	case "NMC":
		return FireResult{MoraleCheck: true}, nil
	}
	if strings.HasSuffix(s, "MC") {
		modifier, err := strconv.Atoi(strings.TrimSuffix(s, "MC"))
		if err == nil && modifier > 0 {
			return FireResult{MoraleCheck: true, Modifier: modifier}, nil
		}
	}
	return FireResult{}, fmt.Errorf("invalid fire result %q", s)
}

// Infantry fire table. Columns are firepower thresholds in ascending order,
// rows are indexed by the modified dice roll.
type FireTable struct {
	Columns []int
	MinRoll int
	// Rows[i] holds the results for roll MinRoll+i, one per column.
	Rows [][]FireResult
}

func (t *FireTable) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("fire table has no columns")
	}
	for i := 1; i < len(t.Columns); i++ {
		if t.Columns[i] <= t.Columns[i-1] {
			return fmt.Errorf("fire table columns not ascending at %d", t.Columns[i])
		}
	}
	if len(t.Rows) == 0 {
		return fmt.Errorf("fire table has no rows")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("fire table row for roll %d has %d results, want %d", t.MinRoll+i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Index of the column used for the firepower, -1 when it is below the first column.
func (t *FireTable) Column(firepower int) int {
	column := -1
	for i, threshold := range t.Columns {
		if firepower >= threshold {
			column = i
		}
	}
	return column
}

func (t *FireTable) Lookup(firepower, roll int) FireResult {
	column := t.Column(firepower)
	if column < 0 {
		return FireResult{}
	}
	row := Clamp(roll-t.MinRoll, 0, len(t.Rows)-1)
	return t.Rows[row][column]
}

type CloseCombatOdds struct {
	Attack, Defense int
	// The defenders are eliminated on a roll at or below this number.
	KillNumber int
}

func (o CloseCombatOdds) String() string {
	return fmt.Sprintf("%d:%d", o.Attack, o.Defense)
}

// Rows ordered from the worst odds to the best.
type CloseCombatTable struct {
	Odds []CloseCombatOdds
}

func (t *CloseCombatTable) Validate() error {
	if len(t.Odds) == 0 {
		return fmt.Errorf("close combat table is empty")
	}
	for i, o := range t.Odds {
		if o.Attack <= 0 || o.Defense <= 0 {
			return fmt.Errorf("invalid close combat odds %v", o)
		}
		if i > 0 {
			previous := t.Odds[i-1]
			if o.Attack*previous.Defense <= previous.Attack*o.Defense {
				return fmt.Errorf("close combat odds %v not above %v", o, previous)
			}
		}
	}
	return nil
}

// Kill number for the best odds row not better than attack:defense. Zero
// when the odds are worse than every row.
func (t *CloseCombatTable) KillNumber(attack, defense int) int {
	if defense <= 0 {
		defense = 1
	}
	kill := 0
	for _, o := range t.Odds {
		if attack*o.Defense >= o.Attack*defense {
			kill = o.KillNumber
		}
	}
	return kill
}

type EffectTables struct {
	Fire        *FireTable
	CloseCombat *CloseCombatTable
}
