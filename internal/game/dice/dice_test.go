package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/damagecalc/internal/game/dice"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestCryptoSource_Float64_InUnitInterval(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

// TestSeededSource_Repeatable verifies that two sources built from the same
// seed produce identical sequences.
func TestSeededSource_Repeatable(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededSource_DifferentSeedsDiverge(t *testing.T) {
	a := dice.NewSeededSource(1)
	b := dice.NewSeededSource(2)
	same := 0
	for i := 0; i < 50; i++ {
		if a.Intn(1<<30) == b.Intn(1<<30) {
			same++
		}
	}
	assert.Less(t, same, 50)
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewSeededSource(7)
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Property_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(1, 1<<20).Draw(rt, "n")
		src := dice.NewSeededSource(seed)
		v := src.Intn(n)
		assert.GreaterOrEqual(rt, v, 0)
		assert.Less(rt, v, n)
		f := src.Float64()
		assert.GreaterOrEqual(rt, f, 0.0)
		assert.Less(rt, f, 1.0)
	})
}

func TestSampler_Between_Property_Inclusive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.Uint32Range(0, 1<<20).Draw(rt, "lo")
		hi := rapid.Uint32Range(lo, lo+1000).Draw(rt, "hi")
		s := dice.NewSampler(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), zap.NewNop())
		v, err := s.Between(lo, hi)
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestSampler_Between_SinglePoint(t *testing.T) {
	s := dice.NewSampler(dice.NewSeededSource(1), zaptest.NewLogger(t))
	v, err := s.Between(7, 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestSampler_Between_MaxRange(t *testing.T) {
	s := dice.NewSampler(dice.NewSeededSource(1), zap.NewNop())
	_, err := s.Between(0, ^uint32(0))
	assert.NoError(t, err)
}

func TestSampler_Between_InvertedRange(t *testing.T) {
	s := dice.NewSampler(dice.NewSeededSource(1), zap.NewNop())
	_, err := s.Between(5, 4)
	assert.Error(t, err)
}

func TestSampler_Chance_Bounds(t *testing.T) {
	s := dice.NewSampler(dice.NewSeededSource(3), zap.NewNop())
	for i := 0; i < 200; i++ {
		assert.False(t, s.Chance(0))
		assert.True(t, s.Chance(1))
	}
}

func TestSampler_LogsDraws(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := dice.NewSampler(dice.NewSeededSource(9), zap.New(core))
	_, err := s.Between(1, 10)
	require.NoError(t, err)
	s.Chance(0.5)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "range draw", logs.All()[0].Message)
	assert.Equal(t, "chance draw", logs.All()[1].Message)
}
