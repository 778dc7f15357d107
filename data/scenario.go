package data

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pwiecz/squad_leader/lib"
)

// On-disk representation of a scenario, shared by the YAML and the Lua loaders.
type ScenarioFile struct {
	Name          string       `yaml:"name"`
	TurnLimit     int          `yaml:"turn_limit"`
	FirstAttacker string       `yaml:"first_attacker"`
	StackingLimit int          `yaml:"stacking_limit,omitempty"`
	Hexes         []HexFile    `yaml:"hexes"`
	Entities      []EntityFile `yaml:"entities"`
}

type HexFile struct {
	ID        string   `yaml:"id"`
	Q         int      `yaml:"q"`
	R         int      `yaml:"r"`
	Elevation int      `yaml:"elevation,omitempty"`
	Terrain   []string `yaml:"terrain"`
}

// Fields that do not apply to the kind of the entity are ignored.
type EntityFile struct {
	ID        string `yaml:"id"`
	Side      string `yaml:"side"`
	Hex       string `yaml:"hex"`
	Kind      string `yaml:"kind"`
	Condition string `yaml:"condition,omitempty"`

	Firepower       int `yaml:"firepower,omitempty"`
	Range           int `yaml:"range,omitempty"`
	Morale          int `yaml:"morale,omitempty"`
	MovementFactors int `yaml:"movement_factors,omitempty"`

	Name       string `yaml:"name,omitempty"`
	Leadership int    `yaml:"leadership,omitempty"`

	Weapon        string `yaml:"weapon,omitempty"`
	Penetration   int    `yaml:"penetration,omitempty"`
	Breakdown     int    `yaml:"breakdown,omitempty"`
	Portage       int    `yaml:"portage,omitempty"`
	CarriedBy     string `yaml:"carried_by,omitempty"`
	Malfunctioned bool   `yaml:"malfunctioned,omitempty"`

	Armor  int `yaml:"armor,omitempty"`
	Health int `yaml:"health,omitempty"`
}

// Reads a scenario from fsys. Files with .lua extension are run as Lua
// scripts, .yaml and .yml files are parsed directly.
func LoadScenario(fsys fs.FS, name string) (*lib.Scenario, error) {
	file, err := ReadScenarioFile(fsys, name)
	if err != nil {
		return nil, err
	}
	scenario, err := file.Scenario()
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", name, err)
	}
	return scenario, nil
}

// Like LoadScenario, but without converting the file. Scenarios without a
// name are named after the file.
func ReadScenarioFile(fsys fs.FS, name string) (*ScenarioFile, error) {
	contents, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario file %s: %w", name, err)
	}
	var file *ScenarioFile
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		file, err = ParseScenario(contents)
	case ".lua":
		file, err = RunScenarioScript(name, contents)
	default:
		return nil, fmt.Errorf("unsupported scenario format %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load scenario %s: %w", name, err)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	return file, nil
}

func ParseScenario(contents []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *ScenarioFile) Scenario() (*lib.Scenario, error) {
	firstAttacker, err := parseSide(f.FirstAttacker)
	if err != nil {
		return nil, fmt.Errorf("first attacker: %w", err)
	}
	scenario := &lib.Scenario{
		Name:          f.Name,
		TurnLimit:     f.TurnLimit,
		FirstAttacker: firstAttacker,
		StackingLimit: f.StackingLimit,
		Hexes:         make([]lib.Hex, 0, len(f.Hexes)),
		Entities:      make([]lib.Entity, 0, len(f.Entities)),
	}
	for _, h := range f.Hexes {
		hex, err := h.hex()
		if err != nil {
			return nil, err
		}
		scenario.Hexes = append(scenario.Hexes, hex)
	}
	for _, e := range f.Entities {
		entity, err := e.entity()
		if err != nil {
			return nil, err
		}
		scenario.Entities = append(scenario.Entities, entity)
	}
	return scenario, nil
}

func (h HexFile) hex() (lib.Hex, error) {
	var terrain lib.TerrainSet
	for _, name := range h.Terrain {
		t, err := lib.ParseTerrain(name)
		if err != nil {
			return lib.Hex{}, fmt.Errorf("hex %s: %w", h.ID, err)
		}
		terrain = terrain.With(t)
	}
	if terrain.IsEmpty() {
		terrain = lib.NewTerrainSet(lib.OpenGround)
	}
	return lib.Hex{
		ID:        lib.HexID(h.ID),
		Coords:    lib.HexCoords{Q: h.Q, R: h.R},
		Elevation: h.Elevation,
		Terrain:   terrain}, nil
}

func (e EntityFile) entity() (lib.Entity, error) {
	side, err := parseSide(e.Side)
	if err != nil {
		return lib.Entity{}, fmt.Errorf("entity %s: %w", e.ID, err)
	}
	condition, err := parseCondition(e.Condition)
	if err != nil {
		return lib.Entity{}, fmt.Errorf("entity %s: %w", e.ID, err)
	}
	entity := lib.Entity{
		ID:        lib.EntityID(e.ID),
		Side:      side,
		Hex:       lib.HexID(e.Hex),
		Condition: condition,
	}
	switch strings.ToLower(e.Kind) {
	case "squad":
		entity.Attributes = lib.Squad{
			Firepower:       e.Firepower,
			Range:           e.Range,
			Morale:          e.Morale,
			MovementFactors: e.MovementFactors}
	case "leader":
		entity.Attributes = lib.Leader{
			Name:            e.Name,
			Leadership:      e.Leadership,
			Firepower:       e.Firepower,
			Range:           e.Range,
			Morale:          e.Morale,
			MovementFactors: e.MovementFactors}
	case "support_weapon", "weapon":
		weaponType, err := lib.ParseWeaponType(e.Weapon)
		if err != nil {
			return lib.Entity{}, fmt.Errorf("entity %s: %w", e.ID, err)
		}
		entity.Attributes = lib.SupportWeapon{
			Type:          weaponType,
			Firepower:     e.Firepower,
			Penetration:   e.Penetration,
			Range:         e.Range,
			Breakdown:     e.Breakdown,
			Portage:       e.Portage,
			CarriedBy:     lib.EntityID(e.CarriedBy),
			Malfunctioned: e.Malfunctioned}
	case "vehicle":
		entity.Attributes = lib.Vehicle{
			MovementFactors: e.MovementFactors,
			Armor:           e.Armor,
			Health:          e.Health}
	default:
		return lib.Entity{}, fmt.Errorf("entity %s: unknown kind %q", e.ID, e.Kind)
	}
	return entity, nil
}

func parseSide(s string) (lib.Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return lib.SideA, nil
	case "B":
		return lib.SideB, nil
	}
	return 0, fmt.Errorf("invalid side %q", s)
}

func parseCondition(s string) (lib.Condition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "composed":
		return lib.Composed, nil
	case "broken":
		return lib.Broken, nil
	case "eliminated":
		return lib.Eliminated, nil
	}
	return 0, fmt.Errorf("invalid condition %q", s)
}
