package jackpot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrizesFirstTierExample(t *testing.T) {
	pool := newTestPool(4000)

	breakdown, err := ComputePrizes(pool, TierFirst)
	require.NoError(t, err)

	// raw = 4000 * 0.25 = 1000, within [1000, 250000]
	assert.Equal(t, 1000.0, breakdown.GrandPrize)
	assert.Equal(t, 120.0, breakdown.ReferrerShare)  // min(4000*0.03, 7500)
	assert.Equal(t, 80.0, breakdown.PerformerShare)  // min(4000*0.02, 5000)
}

func TestComputePrizesClampedToMinimum(t *testing.T) {
	pool := newTestPool(0)

	for _, tier := range Tiers() {
		breakdown, err := ComputePrizes(pool, tier)
		require.NoError(t, err)
		params, err := Params(tier)
		require.NoError(t, err)
		assert.Equal(t, params.MinPrize, breakdown.GrandPrize, "tier %s", tier)
		assert.Zero(t, breakdown.ReferrerShare)
		assert.Zero(t, breakdown.PerformerShare)
	}
}

func TestComputePrizesClampedToMaximum(t *testing.T) {
	pool := newTestPool(10000000)

	for _, tier := range Tiers() {
		breakdown, err := ComputePrizes(pool, tier)
		require.NoError(t, err)
		params, err := Params(tier)
		require.NoError(t, err)
		assert.Equal(t, params.MaxPrize, breakdown.GrandPrize, "tier %s", tier)
		assert.LessOrEqual(t, breakdown.ReferrerShare, params.ReferrerCap)
		assert.LessOrEqual(t, breakdown.PerformerShare, params.PerformerCap)
	}
}

func TestComputePrizesWithinBounds(t *testing.T) {
	amounts := []float64{0, 1, 999.99, 1000, 4000, 250000, 1000000}
	for _, amount := range amounts {
		for _, tier := range Tiers() {
			breakdown, err := ComputePrizes(newTestPool(amount), tier)
			require.NoError(t, err)
			params, _ := Params(tier)
			assert.GreaterOrEqual(t, breakdown.GrandPrize, params.MinPrize)
			assert.LessOrEqual(t, breakdown.GrandPrize, params.MaxPrize)
		}
	}
}

func TestComputePrizesSecondAndThirdHaveNoShares(t *testing.T) {
	// No share percentage is configured below first tier, so shares stay zero
	// no matter how large the pool is.
	pool := newTestPool(200000)
	for _, tier := range []Tier{TierSecond, TierThird} {
		breakdown, err := ComputePrizes(pool, tier)
		require.NoError(t, err)
		assert.Zero(t, breakdown.ReferrerShare, "tier %s", tier)
		assert.Zero(t, breakdown.PerformerShare, "tier %s", tier)
	}
}

func TestComputePrizesInvalidTier(t *testing.T) {
	_, err := ComputePrizes(newTestPool(1000), Tier("FOURTH"))
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestComputePrizesNegativePool(t *testing.T) {
	_, err := ComputePrizes(newTestPool(-1), TierFirst)
	assert.ErrorIs(t, err, ErrNegativePool)
}
