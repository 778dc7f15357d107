package data

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/pwiecz/squad_leader/lib"
)

// Sequence of steps driving a session, used to replay games from the command line.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Exactly one of Advance, CloseCombat and Kind is set.
type Step struct {
	Advance     bool `yaml:"advance"`
	CloseCombat bool `yaml:"close_combat"`

	Kind        string   `yaml:"order"`
	Entity      string   `yaml:"entity"`
	Path        []string `yaml:"path"`
	Leader      string   `yaml:"leader"`
	Target      string   `yaml:"target"`
	Weapon      string   `yaml:"weapon"`
	Penetration []string `yaml:"penetration"`
}

func LoadScript(fsys fs.FS, name string) (*Script, error) {
	contents, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("cannot read script file %s: %w", name, err)
	}
	var script Script
	if err := yaml.Unmarshal(contents, &script); err != nil {
		return nil, fmt.Errorf("cannot parse script file %s: %w", name, err)
	}
	for i, step := range script.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("script %s step %d: %w", name, i+1, err)
		}
	}
	return &script, nil
}

func (s Step) validate() error {
	set := 0
	if s.Advance {
		set++
	}
	if s.CloseCombat {
		set++
	}
	if s.Kind != "" {
		set++
		if _, err := s.Order(); err != nil {
			return err
		}
	}
	if set != 1 {
		return fmt.Errorf("step must be exactly one of advance, close_combat or order")
	}
	return nil
}

func (s Step) IsOrder() bool { return s.Kind != "" }

func (s Step) Order() (lib.Order, error) {
	kind, err := lib.ParseOrderKind(s.Kind)
	if err != nil {
		return lib.Order{}, err
	}
	if s.Entity == "" {
		return lib.Order{}, fmt.Errorf("%s order without entity", kind)
	}
	return lib.Order{
		Kind:        kind,
		Entity:      lib.EntityID(s.Entity),
		Path:        hexIDs(s.Path),
		Leader:      lib.EntityID(s.Leader),
		Target:      lib.EntityID(s.Target),
		Weapon:      lib.EntityID(s.Weapon),
		Penetration: hexIDs(s.Penetration)}, nil
}

func hexIDs(ids []string) []lib.HexID {
	if len(ids) == 0 {
		return nil
	}
	hexes := make([]lib.HexID, len(ids))
	for i, id := range ids {
		hexes[i] = lib.HexID(id)
	}
	return hexes
}

// Outcome of one script step. Err holds a rejection of the step by the session.
type StepResult struct {
	Step     int
	Messages []lib.Message
	Err      error
}

// Executes the steps in order, passing every outcome to report. Rejected
// steps do not stop the script, report returning false does.
func (s *Script) Run(ctx context.Context, game *lib.GameState, report func(StepResult) bool) error {
	for i, step := range s.Steps {
		result := StepResult{Step: i + 1}
		switch {
		case step.Advance:
			_, result.Messages, result.Err = game.AdvancePhase(ctx)
		case step.CloseCombat:
			result.Messages, result.Err = game.ResolveCloseCombat(ctx)
		default:
			order, err := step.Order()
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			accepted, err := game.SubmitOrder(ctx, order)
			result.Messages, result.Err = accepted.Messages, err
		}
		if !report(result) {
			return nil
		}
	}
	return nil
}
