package equipment

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Slot identifies one of the five loadout slots.
type Slot string

const (
	// SlotWeapon holds the weapon.
	SlotWeapon Slot = "weapon"
	// SlotArmor holds the armor.
	SlotArmor Slot = "armor"
	// SlotAccessory1 holds the first accessory.
	SlotAccessory1 Slot = "accessory1"
	// SlotAccessory2 holds the second accessory.
	SlotAccessory2 Slot = "accessory2"
	// SlotSpecial holds the special gear.
	SlotSpecial Slot = "special"
)

// Slots lists every slot in loadout order.
var Slots = []Slot{SlotWeapon, SlotArmor, SlotAccessory1, SlotAccessory2, SlotSpecial}

// slotRoles maps each slot to the equipment type it conventionally holds.
var slotRoles = map[Slot]Type{
	SlotWeapon:     TypeWeapon,
	SlotArmor:      TypeArmor,
	SlotAccessory1: TypeAccessory,
	SlotAccessory2: TypeAccessory,
	SlotSpecial:    TypeSpecial,
}

// Role returns the equipment type slot conventionally holds.
func (s Slot) Role() Type {
	return slotRoles[s]
}

// Set is a five-slot loadout. A nil slot is empty.
type Set struct {
	Weapon     *Equipment `json:"weapon" yaml:"weapon"`
	Armor      *Equipment `json:"armor" yaml:"armor"`
	Accessory1 *Equipment `json:"accessory1" yaml:"accessory1"`
	Accessory2 *Equipment `json:"accessory2" yaml:"accessory2"`
	Special    *Equipment `json:"special" yaml:"special"`
}

// Get returns the equipment in slot, or nil when the slot is empty or unknown.
func (s Set) Get(slot Slot) *Equipment {
	switch slot {
	case SlotWeapon:
		return s.Weapon
	case SlotArmor:
		return s.Armor
	case SlotAccessory1:
		return s.Accessory1
	case SlotAccessory2:
		return s.Accessory2
	case SlotSpecial:
		return s.Special
	}
	return nil
}

// With returns a copy of s with slot holding a copy of e. A nil e empties the slot.
//
// Postcondition: s is not modified.
func (s Set) With(slot Slot, e *Equipment) Set {
	var held *Equipment
	if e != nil {
		c := e.Clone()
		held = &c
	}
	switch slot {
	case SlotWeapon:
		s.Weapon = held
	case SlotArmor:
		s.Armor = held
	case SlotAccessory1:
		s.Accessory1 = held
	case SlotAccessory2:
		s.Accessory2 = held
	case SlotSpecial:
		s.Special = held
	}
	return s
}

// Equipped returns the populated slots in loadout order.
func (s Set) Equipped() []Slot {
	out := make([]Slot, 0, len(Slots))
	for _, slot := range Slots {
		if s.Get(slot) != nil {
			out = append(out, slot)
		}
	}
	return out
}

// TotalAttack sums attack across every populated slot.
//
// Postcondition: never overflows; five uint32 values always fit in uint64.
func (s Set) TotalAttack() uint64 {
	var total uint64
	for _, slot := range Slots {
		if e := s.Get(slot); e != nil {
			total += uint64(e.Attack)
		}
	}
	return total
}

// TotalDefense returns the weapon's defense, or 0 without a weapon.
// Only the weapon slot contributes.
func (s Set) TotalDefense() uint32 {
	if s.Weapon == nil {
		return 0
	}
	return s.Weapon.Defense
}

// ElementValue returns the weapon's element value, or 0 without a weapon.
func (s Set) ElementValue() uint32 {
	if s.Weapon == nil {
		return 0
	}
	return s.Weapon.ElementValue
}

// SlotMismatch records a slot holding gear of a type other than the slot's role.
type SlotMismatch struct {
	Slot Slot
	Want Type
	Got  Type
}

// Mismatches reports every populated slot whose equipment type differs from the slot role.
// Mismatched loadouts are still valid input for damage resolution.
//
// Postcondition: returns nil when every populated slot matches its role.
func (s Set) Mismatches() []SlotMismatch {
	var out []SlotMismatch
	for _, slot := range Slots {
		e := s.Get(slot)
		if e == nil || e.Type == slot.Role() {
			continue
		}
		out = append(out, SlotMismatch{Slot: slot, Want: slot.Role(), Got: e.Type})
	}
	return out
}

// Validate checks every populated slot.
//
// Postcondition: returns nil iff every populated slot holds valid equipment.
func (s Set) Validate() error {
	for _, slot := range Slots {
		e := s.Get(slot)
		if e == nil {
			continue
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("slot %s: %w", slot, err)
		}
	}
	return nil
}

// UnmarshalJSON decodes a loadout strictly: unknown fields and invalid
// equipment are rejected and s is left untouched on error.
func (s *Set) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	type plain Set
	var p plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEquipment, err)
	}
	decoded := Set(p)
	if err := decoded.Validate(); err != nil {
		return err
	}
	*s = decoded
	return nil
}
