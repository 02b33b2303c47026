// Package monster provides target definitions, the reference monster table,
// and an ordered lookup database.
package monster

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMonster is returned when monster data violates its invariants.
var ErrInvalidMonster = errors.New("invalid monster data")

// Monster holds a target's defensive stats. Values are immutable reference data.
type Monster struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Level uint32 `json:"level" yaml:"level"`
	HP    uint32 `json:"hp" yaml:"hp"`
	// Defense is the status defense, subtracted first.
	Defense uint32 `json:"defense" yaml:"defense"`
	// FixedDefense is subtracted second.
	FixedDefense uint32 `json:"fixed_defense" yaml:"fixed_defense"`
	// FixedReduction is subtracted third.
	FixedReduction uint32 `json:"fixed_reduction" yaml:"fixed_reduction"`
	// CutRate is the final multiplicative damage cut in [0, 1).
	CutRate           float64 `json:"cut_rate" yaml:"cut_rate"`
	ElementResistance uint32  `json:"element_resistance" yaml:"element_resistance"`
	// ImageURL is display-only.
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// New builds a validated Monster.
//
// Postcondition: returns a Monster satisfying Validate, or an error wrapping ErrInvalidMonster.
func New(id, name string, level, hp, defense, fixedDefense, fixedReduction uint32, cutRate float64, elementResistance uint32) (Monster, error) {
	m := Monster{
		ID:                id,
		Name:              name,
		Level:             level,
		HP:                hp,
		Defense:           defense,
		FixedDefense:      fixedDefense,
		FixedReduction:    fixedReduction,
		CutRate:           cutRate,
		ElementResistance: elementResistance,
	}
	if err := m.Validate(); err != nil {
		return Monster{}, err
	}
	return m, nil
}

// WithImage returns a copy of m with the image reference set.
func (m Monster) WithImage(url string) Monster {
	m.ImageURL = url
	return m
}

// Validate checks that m satisfies the monster invariants.
//
// Postcondition: returns nil iff ID and Name are non-empty, HP >= 1, and
// CutRate is a finite value in [0, 1); otherwise returns an error wrapping ErrInvalidMonster.
func (m Monster) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidMonster)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: monster %q: name must not be empty", ErrInvalidMonster, m.ID)
	}
	if m.HP == 0 {
		return fmt.Errorf("%w: monster %q: hp must be >= 1", ErrInvalidMonster, m.ID)
	}
	if math.IsNaN(m.CutRate) || m.CutRate < 0 || m.CutRate >= 1 {
		return fmt.Errorf("%w: monster %q: cut_rate must be in [0, 1), got %v", ErrInvalidMonster, m.ID, m.CutRate)
	}
	return nil
}

// UnmarshalJSON decodes and validates a monster so malformed records never
// yield a partially populated value.
func (m *Monster) UnmarshalJSON(data []byte) error {
	type plain Monster
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	decoded := Monster(p)
	if err := decoded.Validate(); err != nil {
		return err
	}
	*m = decoded
	return nil
}
