package logic

import (
	"errors"
	"fmt"

	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"gorm.io/gorm"
)

// CreationLogic 作品业务逻辑
type CreationLogic struct {
	db                *gorm.DB
	contributionLogic *ContributionLogic
}

// NewCreationLogic 创建作品业务逻辑
func NewCreationLogic(db *gorm.DB) *CreationLogic {
	return &CreationLogic{
		db:                db,
		contributionLogic: NewContributionLogic(db),
	}
}

// LineageInput 发布时声明的衍生来源
type LineageInput struct {
	ParentCreationID uint   `json:"parent_creation_id"`
	RelationKind     string `json:"relation_kind"`
}

// Publish 发布作品并建立衍生边
func (c *CreationLogic) Publish(creation *model.Creation, parents []LineageInput) error {
	if err := c.validateCreation(creation); err != nil {
		return err
	}

	var foundation model.Foundation
	if err := c.db.First(&foundation, creation.FoundationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFoundationNotFound
		}
		return err
	}

	// 校验所有父作品
	parentCreations := make([]model.Creation, 0, len(parents))
	for _, p := range parents {
		var parent model.Creation
		if err := c.db.First(&parent, p.ParentCreationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("父作品不存在: %d", p.ParentCreationID)
			}
			return err
		}
		parentCreations = append(parentCreations, parent)
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if creation.Status == "" {
			creation.Status = string(model.CreationStatusPublished)
		}
		if creation.Visibility == "" {
			creation.Visibility = string(model.CreationVisibilityPublic)
		}
		if err := tx.Create(creation).Error; err != nil {
			return err
		}

		for i, p := range parents {
			kind := p.RelationKind
			if kind == "" {
				kind = string(model.LineageRelationDerived)
			}
			edge := model.CreationLineage{
				CreationID:         creation.ID,
				ParentCreationID:   p.ParentCreationID,
				ParentFoundationID: parentCreations[i].FoundationID,
				RelationKind:       kind,
				RevenueShareActive: true,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 发布记分，失败不影响发布结果
	if _, err := c.contributionLogic.Record(creation.FoundationID, "creation_published", map[string]interface{}{
		"creation_id": creation.ID,
	}); err != nil {
		logger.Warn("Failed to record publish contribution for foundation %d: %v", creation.FoundationID, err)
	}

	logger.Info("Published creation %d by foundation %d with %d lineage edges", creation.ID, creation.FoundationID, len(parents))
	return nil
}

// GetCreation 获取作品详情
func (c *CreationLogic) GetCreation(id uint) (*model.Creation, error) {
	var creation model.Creation
	if err := c.db.Preload("Foundation").First(&creation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreationNotFound
		}
		return nil, err
	}
	return &creation, nil
}

// GetCreations 分页获取公开作品列表
func (c *CreationLogic) GetCreations(foundationID uint, page, pageSize int) ([]model.Creation, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	query := c.db.Model(&model.Creation{}).Where("visibility = ?", string(model.CreationVisibilityPublic))
	if foundationID != 0 {
		query = c.db.Model(&model.Creation{}).Where("foundation_id = ?", foundationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var creations []model.Creation
	if err := query.
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&creations).Error; err != nil {
		return nil, 0, err
	}

	return creations, total, nil
}

// UpdateShares 更新作品分成比例，其余字段发布后不可变
func (c *CreationLogic) UpdateShares(id uint, builderSharePct, downstreamSharePct *int64) error {
	updates := make(map[string]interface{})
	if builderSharePct != nil {
		if *builderSharePct < 0 || *builderSharePct > 100 {
			return fmt.Errorf("分成比例非法: %d", *builderSharePct)
		}
		updates["builder_share_pct"] = *builderSharePct
	}
	if downstreamSharePct != nil {
		if *downstreamSharePct < 0 || *downstreamSharePct > 100 {
			return fmt.Errorf("分成比例非法: %d", *downstreamSharePct)
		}
		updates["downstream_share_pct"] = *downstreamSharePct
	}
	if len(updates) == 0 {
		return errors.New("没有要更新的字段")
	}

	result := c.db.Model(&model.Creation{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreationNotFound
	}
	return nil
}

func (c *CreationLogic) validateCreation(creation *model.Creation) error {
	if creation.FoundationID == 0 {
		return errors.New("foundationID不能为空")
	}
	if creation.Title == "" {
		return errors.New("标题不能为空")
	}
	if creation.BasePrice <= 0 {
		return errors.New("价格必须大于0")
	}
	if creation.BuilderSharePct < 0 || creation.BuilderSharePct > 100 {
		return fmt.Errorf("分成比例非法: %d", creation.BuilderSharePct)
	}
	if creation.DownstreamSharePct < 0 || creation.DownstreamSharePct > 100 {
		return fmt.Errorf("分成比例非法: %d", creation.DownstreamSharePct)
	}
	return nil
}
