package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Sampler wraps a Source and logger to provide logged range and chance draws.
// All draws are logged at debug level with their bounds and outcome.
type Sampler struct {
	src    Source
	logger *zap.Logger
}

// NewSampler creates a Sampler that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewSampler(src Source, logger *zap.Logger) *Sampler {
	return &Sampler{src: src, logger: logger}
}

// Between returns a uniformly random value in the inclusive range [lo, hi].
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi.
func (s *Sampler) Between(lo, hi uint32) (uint32, error) {
	if lo > hi {
		return 0, fmt.Errorf("dice: invalid range [%d, %d]", lo, hi)
	}
	span := uint64(hi) - uint64(lo) + 1
	v := lo + uint32(s.src.Intn(int(span)))
	s.logger.Debug("range draw",
		zap.Uint32("lo", lo),
		zap.Uint32("hi", hi),
		zap.Uint32("value", v),
	)
	return v, nil
}

// Chance reports whether a uniform draw in [0, 1) falls below p.
//
// Postcondition: always false for p <= 0; always true for p >= 1.
func (s *Sampler) Chance(p float64) bool {
	roll := s.src.Float64()
	hit := roll < p
	s.logger.Debug("chance draw",
		zap.Float64("p", p),
		zap.Float64("roll", roll),
		zap.Bool("hit", hit),
	)
	return hit
}
