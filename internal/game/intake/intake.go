// Package intake turns external input (a screenshot or a loadout file) into an
// equipment.Set for damage resolution.
package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
)

// ErrEmptyImage is returned when a provider is handed no image data.
var ErrEmptyImage = errors.New("intake: image data is empty")

// Provider recognizes a loadout from an equipment screenshot.
type Provider interface {
	// Detect returns the loadout shown in image.
	//
	// Precondition: image is non-empty.
	// Postcondition: returns a Set that passes Validate, or an error.
	Detect(ctx context.Context, image []byte) (equipment.Set, error)
}

// Fixed is a Provider that ignores the image contents and always reports the same loadout.
type Fixed struct {
	set equipment.Set
}

// NewFixed returns a Fixed provider reporting set.
func NewFixed(set equipment.Set) *Fixed {
	return &Fixed{set: set}
}

// Detect returns a copy of the configured loadout.
//
// Postcondition: returns ErrEmptyImage for an empty image.
func (f *Fixed) Detect(ctx context.Context, image []byte) (equipment.Set, error) {
	if err := ctx.Err(); err != nil {
		return equipment.Set{}, err
	}
	if len(image) == 0 {
		return equipment.Set{}, ErrEmptyImage
	}
	var out equipment.Set
	for _, slot := range equipment.Slots {
		out = out.With(slot, f.set.Get(slot))
	}
	return out, nil
}

// SampleLoadout is the demonstration loadout the Fixed provider ships with.
func SampleLoadout() equipment.Set {
	return equipment.Set{
		Weapon: &equipment.Equipment{
			Name: "Mithril Sword", Type: equipment.TypeWeapon,
			Attack: 120, Defense: 0, ElementValue: 15,
			Options: []equipment.Option{{Name: "ATK +10%", Value: 10}, {Name: "Critical +3%", Value: 3}},
		},
		Armor: &equipment.Equipment{
			Name: "Mithril Armor", Type: equipment.TypeArmor,
			Attack: 0, Defense: 80, ElementValue: 0,
			Options: []equipment.Option{{Name: "DEF +15%", Value: 15}, {Name: "HP +100", Value: 100}},
		},
		Accessory1: &equipment.Equipment{
			Name: "Ruby Ring", Type: equipment.TypeAccessory,
			Attack: 5, Defense: 5, ElementValue: 10,
			Options: []equipment.Option{{Name: "Fire ATK +5%", Value: 5}},
		},
		Accessory2: &equipment.Equipment{
			Name: "Emerald Necklace", Type: equipment.TypeAccessory,
			Attack: 0, Defense: 10, ElementValue: 10,
			Options: []equipment.Option{{Name: "Wind RES +10%", Value: 10}},
		},
		Special: &equipment.Equipment{
			Name: "Ancient Magic Stone", Type: equipment.TypeSpecial,
			Attack: 20, Defense: 20, ElementValue: 20,
			Options: []equipment.Option{{Name: "All ATK +3%", Value: 3}, {Name: "All RES +3%", Value: 3}},
		},
	}
}

// ParseLoadout decodes a loadout from YAML or JSON (JSON is a YAML subset).
// Unknown fields are rejected.
//
// Postcondition: returns a Set that passes Validate, or an error; never a partial Set.
func ParseLoadout(data []byte) (equipment.Set, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var set equipment.Set
	if err := dec.Decode(&set); err != nil {
		return equipment.Set{}, fmt.Errorf("parsing loadout: %w", err)
	}
	if err := set.Validate(); err != nil {
		return equipment.Set{}, fmt.Errorf("parsing loadout: %w", err)
	}
	return set, nil
}

// WarnMismatches logs one warning per slot holding gear of the wrong type.
// Mismatched loadouts are accepted; the warning is informational.
func WarnMismatches(logger *zap.Logger, set equipment.Set) {
	for _, mm := range set.Mismatches() {
		logger.Warn("equipment type does not match slot",
			zap.String("slot", string(mm.Slot)),
			zap.String("want", string(mm.Want)),
			zap.String("got", string(mm.Got)),
		)
	}
}
