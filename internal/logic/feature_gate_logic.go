package logic

import (
	"fmt"

	"github.com/blues/gms/internal/catalog"
	"gorm.io/gorm"
)

// FeatureGateLogic 功能门禁业务逻辑
type FeatureGateLogic struct {
	db                *gorm.DB
	contributionLogic *ContributionLogic
}

// NewFeatureGateLogic 创建功能门禁业务逻辑
func NewFeatureGateLogic(db *gorm.DB) *FeatureGateLogic {
	return &FeatureGateLogic{
		db:                db,
		contributionLogic: NewContributionLogic(db),
	}
}

// FeatureCheckResult 单个功能的检查结果
type FeatureCheckResult struct {
	Feature      string       `json:"feature"`
	Allowed      bool         `json:"allowed"`
	Reason       string       `json:"reason"`
	CurrentTier  catalog.Tier `json:"current_tier"`
	RequiredTier catalog.Tier `json:"required_tier,omitempty"`
	ProgressPct  int          `json:"progress_pct,omitempty"` // 当前等级内的积分进度
}

// FeatureListResult 功能目录按可用性划分
type FeatureListResult struct {
	CurrentTier catalog.Tier      `json:"current_tier"`
	Score       int64             `json:"score"`
	Available   []catalog.Feature `json:"available"`
	Locked      []catalog.Feature `json:"locked"`
}

// Check 检查建造者能否使用某功能
func (f *FeatureGateLogic) Check(foundationID uint, featureName string) (*FeatureCheckResult, error) {
	feature, ok := catalog.FindFeature(featureName)
	if !ok {
		return nil, fmt.Errorf("未知的功能: %s", featureName)
	}

	tier, score, err := f.contributionLogic.CurrentTier(foundationID)
	if err != nil {
		return nil, err
	}

	if catalog.TierRank(tier) >= catalog.TierRank(feature.MinTier) {
		return &FeatureCheckResult{
			Feature:     featureName,
			Allowed:     true,
			Reason:      fmt.Sprintf("%s等级可使用%s", tier, featureName),
			CurrentTier: tier,
		}, nil
	}

	return &FeatureCheckResult{
		Feature:      featureName,
		Allowed:      false,
		Reason:       fmt.Sprintf("%s需要%s等级，当前为%s", featureName, feature.MinTier, tier),
		CurrentTier:  tier,
		RequiredTier: feature.MinTier,
		ProgressPct:  catalog.TierProgressPct(score),
	}, nil
}

// List 按当前等级划分可用与锁定的功能
func (f *FeatureGateLogic) List(foundationID uint) (*FeatureListResult, error) {
	tier, score, err := f.contributionLogic.CurrentTier(foundationID)
	if err != nil {
		return nil, err
	}

	rank := catalog.TierRank(tier)
	result := &FeatureListResult{
		CurrentTier: tier,
		Score:       score,
		Available:   make([]catalog.Feature, 0),
		Locked:      make([]catalog.Feature, 0),
	}
	for _, feature := range catalog.AllFeatures() {
		if catalog.TierRank(feature.MinTier) <= rank {
			result.Available = append(result.Available, feature)
		} else {
			result.Locked = append(result.Locked, feature)
		}
	}
	return result, nil
}
