package logic

import (
	"errors"

	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"gorm.io/gorm"
)

// LineageLogic 衍生链分成业务逻辑
type LineageLogic struct {
	db                *gorm.DB
	balanceLogic      *BalanceLogic
	contributionLogic *ContributionLogic
	maxDepth          int
}

// NewLineageLogic 创建衍生链分成业务逻辑
func NewLineageLogic(db *gorm.DB, maxDepth int) *LineageLogic {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	return &LineageLogic{
		db:                db,
		balanceLogic:      NewBalanceLogic(db),
		contributionLogic: NewContributionLogic(db),
		maxDepth:          maxDepth,
	}
}

// lineageNode 待遍历的链上节点
type lineageNode struct {
	creationID uint
	depth      int
}

// Distribute 沿衍生链向上逐层分成
// 迭代遍历 + visited集合，衍生图即使成环也能终止
func (l *LineageLogic) Distribute(creationID uint, grossAmount int64, sourceEventID uint) error {
	if creationID == 0 {
		return errors.New("creationID不能为空")
	}
	if grossAmount <= 0 {
		return nil
	}

	visited := map[uint]bool{creationID: true}
	queue := []lineageNode{{creationID: creationID, depth: 1}}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		var edges []model.CreationLineage
		if err := l.db.Where("creation_id = ? AND revenue_share_active = ?", node.creationID, true).
			Find(&edges).Error; err != nil {
			return err
		}

		for _, edge := range edges {
			// 每个上游作品最多分成一次，同时防止环和菱形重复支付
			if visited[edge.ParentCreationID] {
				continue
			}
			visited[edge.ParentCreationID] = true

			// 上游建造者未知的边不分成
			if edge.ParentFoundationID == 0 {
				continue
			}

			// 分成比例由上游作品自己设定
			var parent model.Creation
			if err := l.db.First(&parent, edge.ParentCreationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					logger.Warn("Lineage edge %d references missing parent creation %d", edge.ID, edge.ParentCreationID)
					continue
				}
				return err
			}

			amount := grossAmount * parent.DownstreamSharePct / 100
			if amount > 0 {
				if err := l.payParent(&edge, &parent, amount, sourceEventID, node.depth); err != nil {
					return err
				}
			}

			// 继续向上遍历
			if node.depth < l.maxDepth {
				queue = append(queue, lineageNode{creationID: edge.ParentCreationID, depth: node.depth + 1})
			}
		}
	}

	return nil
}

// payParent 给一个上游建造者结算一笔分成
func (l *LineageLogic) payParent(edge *model.CreationLineage, parent *model.Creation, amount int64, sourceEventID uint, depth int) error {
	record := model.DownstreamRevenue{
		OriginalCreationID:   edge.ParentCreationID,
		DerivedCreationID:    edge.CreationID,
		OriginalFoundationID: edge.ParentFoundationID,
		SourceEventID:        sourceEventID,
		Amount:               amount,
		Depth:                depth,
	}
	if err := l.db.Create(&record).Error; err != nil {
		return err
	}

	if err := l.balanceLogic.Increment(edge.ParentFoundationID, amount, model.BalanceKindDownstream); err != nil {
		return err
	}

	// 记分失败不影响分成结果
	if _, err := l.contributionLogic.Record(edge.ParentFoundationID, "downstream_derivative", map[string]interface{}{
		"derived_creation_id": edge.CreationID,
		"amount":              amount,
	}); err != nil {
		logger.Warn("Failed to record downstream contribution for foundation %d: %v", edge.ParentFoundationID, err)
	}

	logger.Info("Distributed %d cents to foundation %d for creation %d (depth %d)",
		amount, edge.ParentFoundationID, edge.ParentCreationID, depth)
	return nil
}

// GetRecentDownstream 查询建造者最近的上游分成记录
func (l *LineageLogic) GetRecentDownstream(foundationID uint, limit int) ([]model.DownstreamRevenue, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []model.DownstreamRevenue
	err := l.db.Where("original_foundation_id = ?", foundationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
