package logic

import (
	"errors"
	"fmt"

	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"github.com/blues/gms/internal/outbox"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevenueLogic 收益事件业务逻辑
type RevenueLogic struct {
	db              *gorm.DB
	maxLineageDepth int
}

// NewRevenueLogic 创建收益事件业务逻辑
func NewRevenueLogic(db *gorm.DB, maxLineageDepth int) *RevenueLogic {
	return &RevenueLogic{db: db, maxLineageDepth: maxLineageDepth}
}

// SaleInput 确认到账的售卖通知
type SaleInput struct {
	CreationID         uint
	GrossAmount        int64 // 总金额（分）
	BuilderSharePct    int64 // checkout时锁定的分成比例
	BuyerID            string
	SellerFoundationID uint
	ExternalPaymentID  string
}

// SplitAmounts 按分成比例拆分金额
// 向下取整，余数归平台，保证 builder + network == gross
func SplitAmounts(grossAmount, builderSharePct int64) (builderAmount, networkAmount int64) {
	builderAmount = grossAmount * builderSharePct / 100
	networkAmount = grossAmount - builderAmount
	return builderAmount, networkAmount
}

// RecordSale 记录一笔售卖收益
// 以外部支付ID为幂等键，重复投递返回已有事件且不再动账。
// 事件行和动账在同一事务内落库：幂等键可见即代表全部副作用已生效，
// 中途失败整体回滚，服务商重投即可恢复
func (r *RevenueLogic) RecordSale(input *SaleInput) (*model.RevenueEvent, bool, error) {
	if err := r.validateSaleInput(input); err != nil {
		return nil, false, err
	}

	builderAmount, networkAmount := SplitAmounts(input.GrossAmount, input.BuilderSharePct)

	event := model.RevenueEvent{
		EventID:            uuid.NewString(),
		CreationID:         input.CreationID,
		EventType:          string(model.RevenueEventTypeSale),
		GrossAmount:        input.GrossAmount,
		BuilderAmount:      builderAmount,
		NetworkAmount:      networkAmount,
		BuyerID:            input.BuyerID,
		SellerFoundationID: input.SellerFoundationID,
		ExternalPaymentID:  input.ExternalPaymentID,
		Status:             string(model.RevenueEventStatusCompleted),
	}

	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 唯一索引 + DO NOTHING，重复事件在动账之前被拦下
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_payment_id"}},
			DoNothing: true,
		}).Create(&event)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// 重复投递，按无操作成功处理
			var existing model.RevenueEvent
			if err := tx.Where("external_payment_id = ?", input.ExternalPaymentID).First(&existing).Error; err != nil {
				return err
			}
			event = existing
			return nil
		}
		created = true

		// 建造者到账
		if err := NewBalanceLogic(tx).Increment(input.SellerFoundationID, builderAmount, model.BalanceKindSale); err != nil {
			return err
		}

		// 衍生链分成
		if err := NewLineageLogic(tx, r.maxLineageDepth).Distribute(input.CreationID, input.GrossAmount, event.ID); err != nil {
			return err
		}

		// 卖家记分，失败不影响收益记录
		if _, err := NewContributionLogic(tx).Record(input.SellerFoundationID, "marketplace_sale", map[string]interface{}{
			"creation_id":  input.CreationID,
			"gross_amount": input.GrossAmount,
		}); err != nil {
			logger.Warn("Failed to record sale contribution for foundation %d: %v", input.SellerFoundationID, err)
		}

		if err := outbox.Enqueue(tx, "revenue.recorded", map[string]interface{}{
			"event_id":       event.EventID,
			"creation_id":    input.CreationID,
			"gross_amount":   input.GrossAmount,
			"builder_amount": builderAmount,
			"network_amount": networkAmount,
		}); err != nil {
			logger.Warn("Failed to enqueue revenue.recorded event: %v", err)
		}

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if !created {
		logger.Info("Duplicate payment %s, skipping balance mutation", input.ExternalPaymentID)
		return &event, false, nil
	}

	logger.Info("Recorded sale %s: gross=%d builder=%d network=%d",
		input.ExternalPaymentID, input.GrossAmount, builderAmount, networkAmount)
	return &event, true, nil
}

// RecordRefund 记录退款
// 镜像原始售卖事件取负，不重新计算分成，即使比例已变也保持一致。
// 退款行、扣款和冲销标记同样在一个事务内完成
func (r *RevenueLogic) RecordRefund(externalPaymentID string) (*model.RevenueEvent, bool, error) {
	if externalPaymentID == "" {
		return nil, false, errors.New("外部支付ID不能为空")
	}

	var original model.RevenueEvent
	err := r.db.Where("external_payment_id = ? AND event_type = ?",
		externalPaymentID, string(model.RevenueEventTypeSale)).First(&original).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrOriginalSaleNotFound
		}
		return nil, false, err
	}

	refund := model.RevenueEvent{
		EventID:            uuid.NewString(),
		CreationID:         original.CreationID,
		EventType:          string(model.RevenueEventTypeRefund),
		GrossAmount:        -original.GrossAmount,
		BuilderAmount:      -original.BuilderAmount,
		NetworkAmount:      -original.NetworkAmount,
		BuyerID:            original.BuyerID,
		SellerFoundationID: original.SellerFoundationID,
		ExternalPaymentID:  "refund:" + externalPaymentID,
		Status:             string(model.RevenueEventStatusCompleted),
	}

	created := false
	err = r.db.Transaction(func(tx *gorm.DB) error {
		// 退款同样以支付ID幂等
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_payment_id"}},
			DoNothing: true,
		}).Create(&refund)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var existing model.RevenueEvent
			if err := tx.Where("external_payment_id = ?", refund.ExternalPaymentID).First(&existing).Error; err != nil {
				return err
			}
			refund = existing
			return nil
		}
		created = true

		// 负数增量扣回建造者份额
		if err := NewBalanceLogic(tx).Increment(original.SellerFoundationID, -original.BuilderAmount, model.BalanceKindSale); err != nil {
			return err
		}

		// 标记原始事件已被冲销
		return tx.Model(&model.RevenueEvent{}).
			Where("id = ?", original.ID).
			Update("status", string(model.RevenueEventStatusReversed)).Error
	})
	if err != nil {
		return nil, false, err
	}

	if !created {
		logger.Info("Duplicate refund for payment %s, skipping balance mutation", externalPaymentID)
		return &refund, false, nil
	}

	logger.Info("Recorded refund for payment %s: gross=%d", externalPaymentID, refund.GrossAmount)
	return &refund, true, nil
}

// GetRecentEvents 查询建造者最近的收益事件
func (r *RevenueLogic) GetRecentEvents(foundationID uint, limit int) ([]model.RevenueEvent, error) {
	if limit <= 0 {
		limit = 10
	}
	var events []model.RevenueEvent
	err := r.db.Where("seller_foundation_id = ?", foundationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *RevenueLogic) validateSaleInput(input *SaleInput) error {
	if input.CreationID == 0 {
		return errors.New("creationID不能为空")
	}
	if input.GrossAmount <= 0 {
		return errors.New("金额必须大于0")
	}
	if input.BuilderSharePct < 0 || input.BuilderSharePct > 100 {
		return fmt.Errorf("分成比例非法: %d", input.BuilderSharePct)
	}
	if input.SellerFoundationID == 0 {
		return errors.New("卖家foundationID不能为空")
	}
	if input.ExternalPaymentID == "" {
		return errors.New("外部支付ID不能为空")
	}
	return nil
}
