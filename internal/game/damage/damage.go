// Package damage resolves a loadout's attack against a monster's layered
// defenses and simulates randomized hits on top of the resolved figures.
package damage

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
)

const (
	// MinimumDamage is the floor applied by the flat mitigation stages and the damage band.
	MinimumDamage = 1
	// CriticalMultiplier scales base damage on a critical hit.
	CriticalMultiplier = 1.5
	// SpreadLow and SpreadHigh bound a normal hit at ±10% of base damage.
	SpreadLow  = 0.9
	SpreadHigh = 1.1

	// PlaceholderCriticalRate is reported until critical chance is derived from gear.
	PlaceholderCriticalRate = 0.0
	// PlaceholderElementBonus is reported until element affinity is modelled.
	PlaceholderElementBonus = 0.0

	// HitsUnreachable is the HitsToKill sentinel for a target that can never be killed.
	HitsUnreachable uint32 = math.MaxUint32
)

// Result is the deterministic damage profile of one loadout against one monster.
type Result struct {
	BaseDamage     uint32  `json:"base_damage"`
	MinDamage      uint32  `json:"min_damage"`
	MaxDamage      uint32  `json:"max_damage"`
	AverageDamage  float64 `json:"average_damage"`
	CriticalRate   float64 `json:"critical_rate"`
	CriticalDamage uint32  `json:"critical_damage"`
	ElementBonus   float64 `json:"element_bonus"`
	HitsToKill     uint32  `json:"hits_to_kill"`
}

// Killable reports whether HitsToKill is a real hit count.
func (r Result) Killable() bool {
	return r.HitsToKill != HitsUnreachable
}

// Resolve computes the damage profile of set against mon.
//
// The loadout's total attack passes through status defense, fixed defense and
// fixed reduction, each floored at MinimumDamage, then the cut rate, which is
// not floored: a base damage of 0 is a valid outcome.
//
// Precondition: none; mon is re-validated.
// Postcondition: returns an error wrapping monster.ErrInvalidMonster for invalid
// monsters; otherwise 1 <= MinDamage <= MaxDamage and
// CriticalDamage == floor(BaseDamage * CriticalMultiplier).
func Resolve(set equipment.Set, mon monster.Monster) (Result, error) {
	if err := mon.Validate(); err != nil {
		return Result{}, fmt.Errorf("resolving damage: %w", err)
	}

	attack := set.TotalAttack()
	afterStatus := mitigate(attack, uint64(mon.Defense), MinimumDamage)
	afterFixedDefense := mitigate(afterStatus, uint64(mon.FixedDefense), MinimumDamage)
	afterFixedReduction := mitigate(afterFixedDefense, uint64(mon.FixedReduction), MinimumDamage)
	base := scale(afterFixedReduction, 1-mon.CutRate)

	critical := scale(base, CriticalMultiplier)
	lo := max(scale(base, SpreadLow), MinimumDamage)
	hi := max(scale(base, SpreadHigh), MinimumDamage)

	res := Result{
		BaseDamage:     saturate(base),
		MinDamage:      saturate(lo),
		MaxDamage:      saturate(hi),
		CriticalRate:   PlaceholderCriticalRate,
		CriticalDamage: saturate(critical),
		ElementBonus:   PlaceholderElementBonus,
	}
	res.AverageDamage = (float64(res.MinDamage) + float64(res.MaxDamage)) / 2
	res.HitsToKill = hitsToKill(mon.HP, res.AverageDamage)
	return res, nil
}

// mitigate subtracts subtrahend from value, never going below floor.
// The comparison precedes the subtraction so unsigned values never wrap.
//
// Postcondition: result >= floor.
func mitigate(value, subtrahend, floor uint64) uint64 {
	if value > subtrahend {
		return max(value-subtrahend, floor)
	}
	return floor
}

// scale returns floor(value * factor).
//
// Precondition: factor >= 0.
func scale(value uint64, factor float64) uint64 {
	return uint64(math.Floor(float64(value) * factor))
}

// saturate narrows v to uint32, clamping at math.MaxUint32.
func saturate(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// hitsToKill returns ceil(hp / average), or HitsUnreachable when average is not positive.
func hitsToKill(hp uint32, average float64) uint32 {
	if !(average > 0) {
		return HitsUnreachable
	}
	hits := math.Ceil(float64(hp) / average)
	if hits >= float64(HitsUnreachable) {
		return HitsUnreachable
	}
	return uint32(hits)
}
