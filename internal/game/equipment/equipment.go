// Package equipment models gear pieces and the five-slot loadout a character attacks with.
package equipment

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidEquipment is wrapped by every validation failure of a piece of
// gear or a loadout.
var ErrInvalidEquipment = errors.New("invalid equipment")

// Type identifies the category of a piece of gear.
type Type string

const (
	// TypeWeapon is a weapon.
	TypeWeapon Type = "Weapon"
	// TypeArmor is body armor.
	TypeArmor Type = "Armor"
	// TypeAccessory is a ring, necklace or similar trinket.
	TypeAccessory Type = "Accessory"
	// TypeSpecial is special gear such as a magic stone.
	TypeSpecial Type = "Special"
)

var validTypes = map[Type]bool{
	TypeWeapon:    true,
	TypeArmor:     true,
	TypeAccessory: true,
	TypeSpecial:   true,
}

// ParseType converts s into a Type.
//
// Postcondition: returns an error iff s is not one of Weapon, Armor, Accessory, Special.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !validTypes[t] {
		return "", fmt.Errorf("equipment: unknown type %q", s)
	}
	return t, nil
}

// UnmarshalJSON rejects unknown type names.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("equipment: type must be a string: %w", err)
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML rejects unknown type names.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("equipment: type must be a string: %w", err)
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Option is a named modifier printed on a piece of gear, e.g. "ATK +10%".
// Options are descriptive only and do not enter the damage calculation.
type Option struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Equipment is a single piece of gear. Values are immutable once built.
type Equipment struct {
	Name         string   `json:"name" yaml:"name"`
	Type         Type     `json:"equipment_type" yaml:"equipment_type"`
	Attack       uint32   `json:"attack" yaml:"attack"`
	Defense      uint32   `json:"defense" yaml:"defense"`
	ElementValue uint32   `json:"element_value" yaml:"element_value"`
	Options      []Option `json:"options" yaml:"options"`
}

// Clone returns a deep copy of e.
//
// Postcondition: mutating the returned Options does not affect e.
func (e Equipment) Clone() Equipment {
	out := e
	if e.Options != nil {
		out.Options = make([]Option, len(e.Options))
		copy(out.Options, e.Options)
	}
	return out
}

// Validate checks that e satisfies its invariants.
//
// Postcondition: returns nil iff Name is non-empty and Type is a known type.
func (e Equipment) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidEquipment)
	}
	if !validTypes[e.Type] {
		return fmt.Errorf("%w: %q: unknown type %q", ErrInvalidEquipment, e.Name, e.Type)
	}
	return nil
}
