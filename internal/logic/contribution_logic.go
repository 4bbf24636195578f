package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/gms/internal/catalog"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"github.com/blues/gms/internal/outbox"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContributionLogic 贡献积分业务逻辑
type ContributionLogic struct {
	db *gorm.DB
}

// NewContributionLogic 创建贡献积分业务逻辑
func NewContributionLogic(db *gorm.DB) *ContributionLogic {
	return &ContributionLogic{db: db}
}

// ContributionResult 记分结果
type ContributionResult struct {
	FoundationID     uint         `json:"foundation_id"`
	ContributionType string       `json:"contribution_type"`
	PointsAwarded    int64        `json:"points_awarded"`
	PreviousScore    int64        `json:"previous_score"`
	NewScore         int64        `json:"new_score"`
	PreviousTier     catalog.Tier `json:"previous_tier"`
	NewTier          catalog.Tier `json:"new_tier"`
	TierChanged      bool         `json:"tier_changed"`
	PointsToNext     int64        `json:"points_to_next"` // 最高等级时为0
	UnlockedFeatures []string     `json:"unlocked_features,omitempty"`
	Celebration      string       `json:"celebration,omitempty"`
}

// Record 记录一次贡献，累加积分并重算等级
// 积分走数据库层自增，自增同时锁行，并发记分不丢失
func (c *ContributionLogic) Record(foundationID uint, contributionType string, metadata map[string]interface{}) (*ContributionResult, error) {
	if foundationID == 0 {
		return nil, errors.New("foundationID不能为空")
	}

	points, ok := catalog.ContributionPoints(contributionType)
	if !ok {
		return nil, fmt.Errorf("%w: %s，合法类型: %s",
			ErrUnknownContributionType, contributionType, strings.Join(catalog.ValidContributionTypes(), ", "))
	}

	var result *ContributionResult
	err := c.db.Transaction(func(tx *gorm.DB) error {
		// 确保状态行存在，已存在则不动
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "foundation_id"}},
			DoNothing: true,
		}).Create(&model.ContributionStatus{
			FoundationID:    foundationID,
			Tier:            string(catalog.TierGhost),
			EventCounters:   model.CounterMap{},
			EnabledFeatures: model.StringList(catalog.FeaturesForTier(catalog.TierGhost)),
			LastActivityAt:  time.Now(),
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.ContributionStatus{}).
			Where("foundation_id = ?", foundationID).
			UpdateColumn("score", gorm.Expr("score + ?", points)).Error; err != nil {
			return err
		}

		var status model.ContributionStatus
		if err := tx.Where("foundation_id = ?", foundationID).First(&status).Error; err != nil {
			return err
		}

		newScore := status.Score
		prevScore := newScore - points
		// 等级由积分推导，不信任可能过期的存储值
		prevTier := catalog.TierForScore(prevScore)
		newTier := catalog.TierForScore(newScore)
		tierChanged := newTier != prevTier

		if status.EventCounters == nil {
			status.EventCounters = model.CounterMap{}
		}
		status.EventCounters[contributionType]++

		status.Tier = string(newTier)
		status.LastActivityAt = time.Now()

		result = &ContributionResult{
			FoundationID:     foundationID,
			ContributionType: contributionType,
			PointsAwarded:    points,
			PreviousScore:    prevScore,
			NewScore:         newScore,
			PreviousTier:     prevTier,
			NewTier:          newTier,
			TierChanged:      tierChanged,
			PointsToNext:     catalog.PointsToNextTier(newScore),
		}

		// 等级变化时重算功能集，并给出新解锁功能的差集
		if tierChanged {
			prevFeatures := catalog.FeaturesForTier(prevTier)
			newFeatures := catalog.FeaturesForTier(newTier)
			status.EnabledFeatures = model.StringList(newFeatures)

			unlocked := make([]string, 0)
			prevSet := make(map[string]bool, len(prevFeatures))
			for _, f := range prevFeatures {
				prevSet[f] = true
			}
			for _, f := range newFeatures {
				if !prevSet[f] {
					unlocked = append(unlocked, f)
				}
			}
			result.UnlockedFeatures = unlocked
			result.Celebration = catalog.TierCelebration(newTier)
		}

		if err := tx.Save(&status).Error; err != nil {
			return err
		}

		if tierChanged {
			if err := outbox.Enqueue(tx, "tier.changed", map[string]interface{}{
				"foundation_id": foundationID,
				"previous_tier": prevTier,
				"new_tier":      newTier,
				"score":         newScore,
			}); err != nil {
				// 旁路事件入队失败不影响记分
				logger.Warn("Failed to enqueue tier.changed event for foundation %d: %v", foundationID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetStatus 查询贡献状态，没有记录时返回GHOST零分状态
func (c *ContributionLogic) GetStatus(foundationID uint) (*model.ContributionStatus, error) {
	var status model.ContributionStatus
	err := c.db.Where("foundation_id = ?", foundationID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.ContributionStatus{
				FoundationID:    foundationID,
				Tier:            string(catalog.TierGhost),
				EventCounters:   model.CounterMap{},
				EnabledFeatures: model.StringList(catalog.FeaturesForTier(catalog.TierGhost)),
			}, nil
		}
		return nil, err
	}
	return &status, nil
}

// CurrentTier 查询当前等级
func (c *ContributionLogic) CurrentTier(foundationID uint) (catalog.Tier, int64, error) {
	status, err := c.GetStatus(foundationID)
	if err != nil {
		return catalog.TierGhost, 0, err
	}
	return catalog.Tier(status.Tier), status.Score, nil
}
