package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForScore(t *testing.T) {
	cases := []struct {
		score int64
		tier  Tier
	}{
		{0, TierGhost},
		{1, TierSeedling},
		{5, TierSeedling},
		{49, TierSeedling},
		{50, TierSapling},
		{199, TierSapling},
		{200, TierTree},
		{499, TierTree},
		{500, TierForest},
		{10000, TierForest},
	}
	for _, c := range cases {
		assert.Equal(t, c.tier, TierForScore(c.score), "score %d", c.score)
	}
}

func TestTierForScoreMonotone(t *testing.T) {
	// 等级随积分单调不减
	prev := TierForScore(0)
	for score := int64(1); score <= 600; score++ {
		current := TierForScore(score)
		assert.GreaterOrEqual(t, TierRank(current), TierRank(prev), "score %d", score)
		prev = current
	}
}

func TestTierRankOrdering(t *testing.T) {
	assert.Less(t, TierRank(TierGhost), TierRank(TierSeedling))
	assert.Less(t, TierRank(TierSeedling), TierRank(TierSapling))
	assert.Less(t, TierRank(TierSapling), TierRank(TierTree))
	assert.Less(t, TierRank(TierTree), TierRank(TierForest))
	assert.Equal(t, -1, TierRank(Tier("UNKNOWN")))
}

func TestPointsToNextTier(t *testing.T) {
	assert.Equal(t, int64(1), PointsToNextTier(0))
	assert.Equal(t, int64(45), PointsToNextTier(5))
	assert.Equal(t, int64(150), PointsToNextTier(50))
	// 最高等级返回0
	assert.Equal(t, int64(0), PointsToNextTier(500))
	assert.Equal(t, int64(0), PointsToNextTier(9999))
}

func TestTierMultiplier(t *testing.T) {
	assert.Equal(t, 0.6, TierMultiplier(TierGhost))
	assert.Equal(t, 0.8, TierMultiplier(TierSapling))
	assert.Equal(t, 1.0, TierMultiplier(TierForest))
	// 未知等级按最低档
	assert.Equal(t, 0.6, TierMultiplier(Tier("UNKNOWN")))
}

func TestTierProgressPct(t *testing.T) {
	// SEEDLING区间 [1, 50)
	assert.Equal(t, 0, TierProgressPct(1))
	assert.Equal(t, 48, TierProgressPct(25))
	// 最高等级恒为100
	assert.Equal(t, 100, TierProgressPct(500))
}

func TestFeaturesForTierSuperset(t *testing.T) {
	// 每个等级的功能集必须包含所有更低等级的功能集
	tiers := AllTiers()
	for i := 1; i < len(tiers); i++ {
		lower := FeaturesForTier(tiers[i-1])
		higher := FeaturesForTier(tiers[i])

		higherSet := make(map[string]bool, len(higher))
		for _, f := range higher {
			higherSet[f] = true
		}
		for _, f := range lower {
			assert.True(t, higherSet[f], "tier %s missing feature %s from %s", tiers[i], f, tiers[i-1])
		}
		assert.GreaterOrEqual(t, len(higher), len(lower))
	}
}

func TestContributionPoints(t *testing.T) {
	points, ok := ContributionPoints("marketplace_sale")
	assert.True(t, ok)
	assert.Equal(t, int64(5), points)

	_, ok = ContributionPoints("unknown_type")
	assert.False(t, ok)

	types := ValidContributionTypes()
	assert.Contains(t, types, "creation_published")
	assert.Contains(t, types, "referral")
	assert.Len(t, types, 5)
}

func TestFindAbility(t *testing.T) {
	ability, ok := FindAbility("pattern_recognition")
	assert.True(t, ok)
	assert.Equal(t, AccessNetworkEnhanced, ability.Access)
	assert.Equal(t, 100, ability.OfflinePowerPct)

	_, ok = FindAbility("not_registered")
	assert.False(t, ok)
}
