package damage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/damagecalc/internal/game/dice"
)

func TestMitigate(t *testing.T) {
	tests := []struct {
		value, sub, want uint64
	}{
		{100, 50, 50},
		{50, 50, 1},
		{50, 500, 1},
		{1, 0, 1},
		{0, 0, 1},
		{2, 1, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, mitigate(tc.value, tc.sub, MinimumDamage), "value=%d sub=%d", tc.value, tc.sub)
	}
}

func TestMitigate_Property_NeverWraps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Uint64().Draw(rt, "value")
		s := rapid.Uint64().Draw(rt, "sub")
		got := mitigate(v, s, MinimumDamage)
		assert.GreaterOrEqual(rt, got, uint64(MinimumDamage))
		assert.LessOrEqual(rt, got, max(v, MinimumDamage))
	})
}

func TestHitsToKill_Unreachable(t *testing.T) {
	assert.Equal(t, HitsUnreachable, hitsToKill(100, 0))
	assert.Equal(t, HitsUnreachable, hitsToKill(100, math.NaN()))
	assert.Equal(t, uint32(4), hitsToKill(10, 3))
	assert.Equal(t, uint32(1), hitsToKill(1, 1.5))
}

func TestSample_CriticalReturnsCriticalDamage(t *testing.T) {
	calc := NewCalculator(dice.NewSeededSource(1), zap.NewNop())
	res := Result{MinDamage: 9, MaxDamage: 11, CriticalDamage: 15, CriticalRate: 1}
	for i := 0; i < 20; i++ {
		dmg, crit, err := calc.sample(res)
		require.NoError(t, err)
		assert.True(t, crit)
		assert.Equal(t, uint32(15), dmg)
	}
}

func TestSample_NormalHitInBand(t *testing.T) {
	calc := NewCalculator(dice.NewSeededSource(2), zap.NewNop())
	res := Result{MinDamage: 9, MaxDamage: 11, CriticalDamage: 15, CriticalRate: PlaceholderCriticalRate}
	seen := map[uint32]bool{}
	for i := 0; i < 300; i++ {
		dmg, crit, err := calc.sample(res)
		require.NoError(t, err)
		assert.False(t, crit)
		seen[dmg] = true
	}
	assert.Equal(t, map[uint32]bool{9: true, 10: true, 11: true}, seen, "inclusive range")
}
