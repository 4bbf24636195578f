package catalog

// Tier 贡献等级
type Tier string

const (
	TierGhost    Tier = "GHOST"
	TierSeedling Tier = "SEEDLING"
	TierSapling  Tier = "SAPLING"
	TierTree     Tier = "TREE"
	TierForest   Tier = "FOREST"
)

// tierLevel 等级阈值，按积分升序排列
type tierLevel struct {
	Tier      Tier
	Threshold int64
}

// 等级表在进程启动时构建一次，之后只读
var tierLevels = []tierLevel{
	{TierGhost, 0},
	{TierSeedling, 1},
	{TierSapling, 50},
	{TierTree, 200},
	{TierForest, 500},
}

// 网络增强能力的等级系数
var tierMultipliers = map[Tier]float64{
	TierGhost:    0.6,
	TierSeedling: 0.7,
	TierSapling:  0.8,
	TierTree:     0.9,
	TierForest:   1.0,
}

// 升级祝贺语
var tierCelebrations = map[Tier]string{
	TierSeedling: "种子破土而出，欢迎来到SEEDLING！",
	TierSapling:  "幼苗茁壮成长，你已晋升SAPLING！",
	TierTree:     "枝繁叶茂，TREE等级达成！",
	TierForest:   "独木成林，你已是FOREST级建造者！",
}

// TierForScore 根据累计积分计算等级
func TierForScore(score int64) Tier {
	tier := TierGhost
	for _, level := range tierLevels {
		if score >= level.Threshold {
			tier = level.Tier
		}
	}
	return tier
}

// TierRank 等级序号，GHOST为0
func TierRank(tier Tier) int {
	for i, level := range tierLevels {
		if level.Tier == tier {
			return i
		}
	}
	return -1
}

// TierThreshold 等级的积分下限
func TierThreshold(tier Tier) int64 {
	for _, level := range tierLevels {
		if level.Tier == tier {
			return level.Threshold
		}
	}
	return 0
}

// NextTier 下一等级，最高等级返回自身和false
func NextTier(tier Tier) (Tier, bool) {
	rank := TierRank(tier)
	if rank < 0 || rank >= len(tierLevels)-1 {
		return tier, false
	}
	return tierLevels[rank+1].Tier, true
}

// PointsToNextTier 距下一等级还差多少积分，最高等级返回0
func PointsToNextTier(score int64) int64 {
	tier := TierForScore(score)
	next, ok := NextTier(tier)
	if !ok {
		return 0
	}
	remaining := TierThreshold(next) - score
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TierMultiplier 网络增强能力的等级系数，未知等级按最低档处理
func TierMultiplier(tier Tier) float64 {
	if m, ok := tierMultipliers[tier]; ok {
		return m
	}
	return tierMultipliers[TierGhost]
}

// TierCelebration 升级祝贺语
func TierCelebration(tier Tier) string {
	if msg, ok := tierCelebrations[tier]; ok {
		return msg
	}
	return "等级提升！"
}

// TierProgressPct 当前等级内的进度百分比，0-100
func TierProgressPct(score int64) int {
	tier := TierForScore(score)
	next, ok := NextTier(tier)
	if !ok {
		return 100
	}
	lower := TierThreshold(tier)
	upper := TierThreshold(next)
	if upper <= lower {
		return 100
	}
	pct := int((score - lower) * 100 / (upper - lower))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// AllTiers 按升序返回所有等级
func AllTiers() []Tier {
	tiers := make([]Tier, 0, len(tierLevels))
	for _, level := range tierLevels {
		tiers = append(tiers, level.Tier)
	}
	return tiers
}
