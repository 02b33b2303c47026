package damage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/game/dice"
	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
)

// ErrNoHits is returned when a simulation is asked for fewer than one hit.
var ErrNoHits = errors.New("simulation requires at least one hit")

// Calculator resolves damage and samples randomized hits.
//
// A Calculator is owned by a single caller; its random sequence advances with
// every sampled hit.
type Calculator struct {
	sampler *dice.Sampler
	logger  *zap.Logger
}

// NewCalculator creates a Calculator that samples from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewCalculator(src dice.Source, logger *zap.Logger) *Calculator {
	return &Calculator{
		sampler: dice.NewSampler(src, logger),
		logger:  logger,
	}
}

// Resolve computes the damage profile and logs it at debug level.
//
// Postcondition: identical to the package-level Resolve.
func (c *Calculator) Resolve(set equipment.Set, mon monster.Monster) (Result, error) {
	res, err := Resolve(set, mon)
	if err != nil {
		return Result{}, err
	}
	c.logger.Debug("damage resolved",
		zap.String("monster", mon.ID),
		zap.Uint64("attack", set.TotalAttack()),
		zap.Uint32("base", res.BaseDamage),
		zap.Uint32("min", res.MinDamage),
		zap.Uint32("max", res.MaxDamage),
		zap.Uint32("critical", res.CriticalDamage),
		zap.Uint32("hits_to_kill", res.HitsToKill),
	)
	return res, nil
}

// SimulateHit resolves damage and samples one hit.
//
// Postcondition: on success the value is CriticalDamage on a critical hit,
// otherwise in [MinDamage, MaxDamage]. Resolution errors are returned unchanged.
func (c *Calculator) SimulateHit(set equipment.Set, mon monster.Monster) (uint32, error) {
	res, err := c.Resolve(set, mon)
	if err != nil {
		return 0, err
	}
	dmg, _, err := c.sample(res)
	return dmg, err
}

// Simulation is the outcome of a batch of sampled hits.
type Simulation struct {
	Hits      []uint32 `json:"hits"`
	Criticals int      `json:"criticals"`
	Total     uint64   `json:"total"`
	Mean      float64  `json:"mean"`
	Result    Result   `json:"result"`
}

// Simulate samples n independent hits against mon.
//
// Precondition: n >= 1, otherwise ErrNoHits.
// Postcondition: len(Hits) == n and Mean == Total / n.
func (c *Calculator) Simulate(set equipment.Set, mon monster.Monster, n int) (Simulation, error) {
	if n < 1 {
		return Simulation{}, fmt.Errorf("simulating %d hits: %w", n, ErrNoHits)
	}
	res, err := c.Resolve(set, mon)
	if err != nil {
		return Simulation{}, err
	}

	// Resolve is pure, so resolving once is equivalent to resolving per hit.
	sim := Simulation{Hits: make([]uint32, n), Result: res}
	for i := range sim.Hits {
		dmg, crit, err := c.sample(res)
		if err != nil {
			return Simulation{}, err
		}
		if crit {
			sim.Criticals++
		}
		sim.Hits[i] = dmg
		sim.Total += uint64(dmg)
	}
	sim.Mean = float64(sim.Total) / float64(n)

	c.logger.Debug("hits simulated",
		zap.String("monster", mon.ID),
		zap.Int("hits", n),
		zap.Int("criticals", sim.Criticals),
		zap.Float64("mean", sim.Mean),
	)
	return sim, nil
}

// SimulateHits samples n independent hits and returns each hit's damage.
//
// Precondition: n >= 1, otherwise ErrNoHits.
func (c *Calculator) SimulateHits(set equipment.Set, mon monster.Monster, n int) ([]uint32, error) {
	sim, err := c.Simulate(set, mon, n)
	if err != nil {
		return nil, err
	}
	return sim.Hits, nil
}

// SimulateMean samples n independent hits and returns their arithmetic mean.
//
// Precondition: n >= 1, otherwise ErrNoHits.
func (c *Calculator) SimulateMean(set equipment.Set, mon monster.Monster, n int) (float64, error) {
	sim, err := c.Simulate(set, mon, n)
	if err != nil {
		return 0, err
	}
	return sim.Mean, nil
}

// sample draws one hit from a resolved profile and reports whether it was critical.
func (c *Calculator) sample(res Result) (uint32, bool, error) {
	if c.sampler.Chance(res.CriticalRate) {
		return res.CriticalDamage, true, nil
	}
	dmg, err := c.sampler.Between(res.MinDamage, res.MaxDamage)
	if err != nil {
		return 0, false, fmt.Errorf("sampling hit: %w", err)
	}
	return dmg, false, nil
}
