package data

import (
	_ "embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pwiecz/squad_leader/lib"
)

//go:embed tables/default.yaml
var defaultTables []byte

type TablesFile struct {
	Fire        *FireTableFile         `yaml:"fire"`
	CloseCombat []OddsFile             `yaml:"close_combat"`
	Terrain     map[string]TerrainFile `yaml:"terrain"`
}

type FireTableFile struct {
	Columns []int      `yaml:"columns"`
	MinRoll int        `yaml:"min_roll"`
	Rows    [][]string `yaml:"rows"`
}

type OddsFile struct {
	Odds string `yaml:"odds"`
	Kill int    `yaml:"kill"`
}

// Replaces the whole chart entry of one terrain type.
type TerrainFile struct {
	MovementCost int  `yaml:"movement_cost"`
	CombatEffect int  `yaml:"combat_effect"`
	Hindrance    int  `yaml:"hindrance"`
	Obstacle     bool `yaml:"obstacle"`
}

type Tables struct {
	Effects *lib.EffectTables
	Terrain lib.TerrainChart
}

func DefaultTables() (Tables, error) {
	tables, err := ParseTables(defaultTables)
	if err != nil {
		return Tables{}, fmt.Errorf("invalid default tables: %w", err)
	}
	return tables, nil
}

func LoadTables(fsys fs.FS, name string) (Tables, error) {
	contents, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Tables{}, fmt.Errorf("cannot read tables file %s: %w", name, err)
	}
	tables, err := ParseTables(contents)
	if err != nil {
		return Tables{}, fmt.Errorf("invalid tables file %s: %w", name, err)
	}
	return tables, nil
}

func ParseTables(contents []byte) (Tables, error) {
	var file TablesFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return Tables{}, err
	}
	return file.Tables()
}

func (f *TablesFile) Tables() (Tables, error) {
	tables := Tables{
		Effects: &lib.EffectTables{},
		Terrain: lib.DefaultTerrainChart(),
	}
	if f.Fire != nil {
		fire, err := f.Fire.table()
		if err != nil {
			return Tables{}, err
		}
		tables.Effects.Fire = fire
	}
	if len(f.CloseCombat) > 0 {
		closeCombat := &lib.CloseCombatTable{}
		for _, o := range f.CloseCombat {
			odds, err := parseOdds(o.Odds)
			if err != nil {
				return Tables{}, err
			}
			odds.KillNumber = o.Kill
			closeCombat.Odds = append(closeCombat.Odds, odds)
		}
		if err := closeCombat.Validate(); err != nil {
			return Tables{}, err
		}
		tables.Effects.CloseCombat = closeCombat
	}
	for name, effect := range f.Terrain {
		terrain, err := lib.ParseTerrain(name)
		if err != nil {
			return Tables{}, err
		}
		tables.Terrain.Set(terrain, lib.TerrainEffect{
			MovementCost: effect.MovementCost,
			CombatEffect: effect.CombatEffect,
			Hindrance:    effect.Hindrance,
			Obstacle:     effect.Obstacle})
	}
	return tables, nil
}

func (f *FireTableFile) table() (*lib.FireTable, error) {
	table := &lib.FireTable{Columns: f.Columns, MinRoll: f.MinRoll}
	for i, row := range f.Rows {
		results := make([]lib.FireResult, len(row))
		for j, s := range row {
			result, err := lib.ParseFireResult(s)
			if err != nil {
				return nil, fmt.Errorf("fire table row %d: %w", i, err)
			}
			results[j] = result
		}
		table.Rows = append(table.Rows, results)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func parseOdds(s string) (lib.CloseCombatOdds, error) {
	attack, defense, ok := strings.Cut(s, ":")
	if !ok {
		return lib.CloseCombatOdds{}, fmt.Errorf("invalid odds %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(attack))
	if err != nil {
		return lib.CloseCombatOdds{}, fmt.Errorf("invalid odds %q", s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(defense))
	if err != nil {
		return lib.CloseCombatOdds{}, fmt.Errorf("invalid odds %q", s)
	}
	return lib.CloseCombatOdds{Attack: a, Defense: d}, nil
}
