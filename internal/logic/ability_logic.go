package logic

import (
	"fmt"
	"math"

	"github.com/blues/gms/internal/catalog"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/outbox"
	"gorm.io/gorm"
)

// AbilityLogic 能力访问控制业务逻辑
type AbilityLogic struct {
	db                *gorm.DB
	contributionLogic *ContributionLogic
}

// NewAbilityLogic 创建能力访问控制业务逻辑
func NewAbilityLogic(db *gorm.DB) *AbilityLogic {
	return &AbilityLogic{
		db:                db,
		contributionLogic: NewContributionLogic(db),
	}
}

// AbilityCheckResult 单个能力的检查结果
type AbilityCheckResult struct {
	Ability          string       `json:"ability"`
	AccessType       string       `json:"access_type"`
	Allowed          bool         `json:"allowed"`
	PowerLevel       int          `json:"power_level"` // 0-100
	CurrentTier      catalog.Tier `json:"current_tier"`
	RequiredTier     catalog.Tier `json:"required_tier,omitempty"`
	UpgradeHint      string       `json:"upgrade_hint,omitempty"`
	DegradedBehavior string       `json:"degraded_behavior,omitempty"`
}

// Check 检查建造者能以多大算力使用某能力
func (a *AbilityLogic) Check(foundationID uint, abilityName string) (*AbilityCheckResult, error) {
	tier, _, err := a.contributionLogic.CurrentTier(foundationID)
	if err != nil {
		return nil, err
	}

	result := a.evaluate(tier, abilityName)

	// 访问尝试走旁路分析事件，失败只记日志
	if err := outbox.Enqueue(a.db, "analytics.access_attempt", map[string]interface{}{
		"foundation_id": foundationID,
		"ability":       abilityName,
		"allowed":       result.Allowed,
		"power_level":   result.PowerLevel,
	}); err != nil {
		logger.Warn("Failed to enqueue access attempt event: %v", err)
	}

	return result, nil
}

// BulkCheck 一次检查多个能力，减少往返
func (a *AbilityLogic) BulkCheck(foundationID uint, abilityNames []string) ([]*AbilityCheckResult, error) {
	tier, _, err := a.contributionLogic.CurrentTier(foundationID)
	if err != nil {
		return nil, err
	}

	results := make([]*AbilityCheckResult, 0, len(abilityNames))
	for _, name := range abilityNames {
		results = append(results, a.evaluate(tier, name))
	}
	return results, nil
}

// evaluate 按访问类型分支求值，三种类型互不共用回退路径
func (a *AbilityLogic) evaluate(tier catalog.Tier, abilityName string) *AbilityCheckResult {
	ability, ok := catalog.FindAbility(abilityName)
	if !ok {
		// 未注册的能力按standalone全量放行，兼容尚未登记的新能力
		return &AbilityCheckResult{
			Ability:     abilityName,
			AccessType:  catalog.AccessStandalone.String(),
			Allowed:     true,
			PowerLevel:  100,
			CurrentTier: tier,
		}
	}

	result := &AbilityCheckResult{
		Ability:     ability.Name,
		AccessType:  ability.Access.String(),
		CurrentTier: tier,
	}

	switch ability.Access {
	case catalog.AccessStandalone:
		// 独立能力不受等级和网络影响
		result.Allowed = true
		result.PowerLevel = 100

	case catalog.AccessNetworkRequired:
		if catalog.TierRank(tier) >= catalog.TierRank(ability.MinTier) {
			result.Allowed = true
			result.PowerLevel = 100
		} else {
			result.Allowed = false
			result.PowerLevel = 0
			result.RequiredTier = ability.MinTier
			result.UpgradeHint = upgradeHint(ability.MinTier)
		}

	case catalog.AccessNetworkEnhanced:
		// 降级而非拒绝
		result.Allowed = true
		result.PowerLevel = int(math.Round(float64(ability.OfflinePowerPct) * catalog.TierMultiplier(tier)))
		if result.PowerLevel > 100 {
			result.PowerLevel = 100
		}
		if result.PowerLevel < 100 {
			result.DegradedBehavior = ability.DegradedBehavior
		}
	}

	return result
}

// upgradeHint 给出能挣到积分的具体动作
func upgradeHint(required catalog.Tier) string {
	return fmt.Sprintf("需要%s等级。发布一个新作品(+10分)或推荐一位新建造者(+15分)可以提升等级", required)
}
