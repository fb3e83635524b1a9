// Package catalog holds the fixed, ordered list of match scenarios that make
// up one assessment. The catalog is parsed from an embedded YAML file at
// process start and is read-only thereafter.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

// Mode is the input method for a scenario.
type Mode string

const (
	// ModeFreeText lets the player type (or dictate) a free-form answer.
	ModeFreeText Mode = "text"
	// ModeSingleChoice presents options and captures exactly one.
	ModeSingleChoice Mode = "choice"
	// ModeDragSelect asks the player to pick DragPickCount thoughts from a pool.
	ModeDragSelect Mode = "drag"
)

// DragPickCount is the number of options a drag-select scenario requires.
const DragPickCount = 2

// Option is one selectable answer for choice and drag-select scenarios.
type Option struct {
	Icon       string `yaml:"icon"`
	Label      string `yaml:"label"`
	Value      string `yaml:"value"`
	Commentary string `yaml:"commentary"`
}

// Scenario is one fixed prompt in the assessment sequence.
type Scenario struct {
	ID               int      `yaml:"id"`
	Minute           int      `yaml:"minute"`
	Prompt           string   `yaml:"prompt"`
	Description      string   `yaml:"description"`
	Mode             Mode     `yaml:"mode"`
	TimerSeconds     int      `yaml:"timer"`
	MandatoryConcede bool     `yaml:"mandatoryConcede"`
	Commentary       string   `yaml:"commentary"`
	Options          []Option `yaml:"options"`
}

// Key returns the answer-map key for this scenario ("scenario1", "scenario2", ...).
func (s Scenario) Key() string {
	return fmt.Sprintf("scenario%d", s.ID)
}

// Load parses and validates the embedded scenario catalog.
func Load() ([]Scenario, error) {
	return parse(scenariosYAML)
}

// MustLoad is Load for callers where a broken embedded catalog is a
// programming error, not a runtime condition.
func MustLoad() []Scenario {
	scenarios, err := Load()
	if err != nil {
		panic(err)
	}
	return scenarios
}

func parse(data []byte) ([]Scenario, error) {
	var doc struct {
		Scenarios []Scenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scenario catalog: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario catalog is empty")
	}
	if err := validate(doc.Scenarios); err != nil {
		return nil, err
	}
	return doc.Scenarios, nil
}

func validate(scenarios []Scenario) error {
	for i, s := range scenarios {
		if s.ID != i+1 {
			return fmt.Errorf("scenario at position %d has id %d, want %d (ids must be contiguous from 1)", i, s.ID, i+1)
		}
		if s.Prompt == "" {
			return fmt.Errorf("scenario %d has no prompt", s.ID)
		}
		if s.TimerSeconds < 0 {
			return fmt.Errorf("scenario %d has negative timer", s.ID)
		}
		switch s.Mode {
		case ModeFreeText:
			// No options needed.
		case ModeSingleChoice:
			if len(s.Options) < 2 {
				return fmt.Errorf("scenario %d is single-choice but has %d options", s.ID, len(s.Options))
			}
		case ModeDragSelect:
			if len(s.Options) < DragPickCount {
				return fmt.Errorf("scenario %d is drag-select but has %d options, need at least %d", s.ID, len(s.Options), DragPickCount)
			}
		default:
			return fmt.Errorf("scenario %d has unknown mode %q", s.ID, s.Mode)
		}
		for j, opt := range s.Options {
			if opt.Value == "" {
				return fmt.Errorf("scenario %d option %d has no value", s.ID, j)
			}
		}
	}
	return nil
}
