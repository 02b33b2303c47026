// Package format renders numbers and calculation results for display using
// locale-aware printers from golang.org/x/text.
package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/cory-johannsen/damagecalc/internal/game/damage"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
)

// DefaultTag is used when no language is requested or the request cannot be parsed.
var DefaultTag = language.English

// Line is one labelled value of a rendered summary.
type Line struct {
	Label string
	Value string
}

// Formatter formats values for one language.
type Formatter struct {
	printer *message.Printer
}

// New returns a Formatter for tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// ForLanguage parses a BCP 47 tag such as "ja" or "en-US", falling back to
// DefaultTag when lang is empty or malformed.
func ForLanguage(lang string) *Formatter {
	if lang == "" {
		return New(DefaultTag)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return New(DefaultTag)
	}
	return New(tag)
}

// Number groups thousands: 1000000 becomes "1,000,000" in English.
func (f *Formatter) Number(n uint64) string {
	return f.printer.Sprintf("%d", n)
}

// Float renders v with exactly digits fraction digits.
//
// Precondition: digits >= 0.
func (f *Formatter) Float(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(digits)))
}

// Percent renders a rate in [0,1] as a percentage: 0.1234 with two digits
// becomes "12.34%".
//
// Precondition: digits >= 0.
func (f *Formatter) Percent(rate float64, digits int) string {
	return f.printer.Sprint(number.Percent(rate, number.Scale(digits)))
}

// Result renders a damage result in display order. Average damage is shown
// truncated to a whole number.
func (f *Formatter) Result(res damage.Result) []Line {
	hits := "unreachable"
	if res.Killable() {
		hits = f.Number(uint64(res.HitsToKill))
	}
	return []Line{
		{Label: "Normal damage", Value: f.Number(uint64(res.BaseDamage))},
		{Label: "Critical damage", Value: f.Number(uint64(res.CriticalDamage))},
		{Label: "Average damage", Value: f.Number(uint64(math.Floor(res.AverageDamage)))},
		{Label: "Damage range", Value: f.Number(uint64(res.MinDamage)) + " - " + f.Number(uint64(res.MaxDamage))},
		{Label: "Critical rate", Value: f.Percent(res.CriticalRate, 1)},
		{Label: "Hits to kill", Value: hits},
	}
}

// Monster renders a monster's defensive stats in display order.
func (f *Formatter) Monster(m monster.Monster) []Line {
	return []Line{
		{Label: "Name", Value: m.Name},
		{Label: "Level", Value: f.Number(uint64(m.Level))},
		{Label: "HP", Value: f.Number(uint64(m.HP))},
		{Label: "Defense", Value: f.Number(uint64(m.Defense))},
		{Label: "Fixed defense", Value: f.Number(uint64(m.FixedDefense))},
		{Label: "Fixed reduction", Value: f.Number(uint64(m.FixedReduction))},
		{Label: "Cut rate", Value: f.Percent(m.CutRate, 1)},
		{Label: "Element resistance", Value: f.Number(uint64(m.ElementResistance))},
	}
}

// Simulation summarizes a batch of sampled hits.
func (f *Formatter) Simulation(sim damage.Simulation) []Line {
	return []Line{
		{Label: "Hits", Value: f.Number(uint64(len(sim.Hits)))},
		{Label: "Criticals", Value: f.Number(uint64(sim.Criticals))},
		{Label: "Total damage", Value: f.Number(sim.Total)},
		{Label: "Mean damage", Value: f.Float(sim.Mean, 2)},
	}
}
