package logic

import (
	"errors"

	"github.com/blues/gms/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceLogic 余额账本业务逻辑
type BalanceLogic struct {
	db *gorm.DB
}

// NewBalanceLogic 创建余额账本业务逻辑
func NewBalanceLogic(db *gorm.DB) *BalanceLogic {
	return &BalanceLogic{db: db}
}

// Increment 原子增加余额，amount为负表示退款扣减
// 必须走数据库层的列运算，不允许读改写
func (b *BalanceLogic) Increment(foundationID uint, amount int64, kind model.BalanceKind) error {
	if foundationID == 0 {
		return errors.New("foundationID不能为空")
	}

	// 确保余额行存在，已存在则不动
	if err := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "foundation_id"}},
		DoNothing: true,
	}).Create(&model.BuilderBalance{FoundationID: foundationID}).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"available_amount": gorm.Expr("available_amount + ?", amount),
	}

	// 累计值只增不减，退款只影响可用余额
	if amount > 0 {
		switch kind {
		case model.BalanceKindSale:
			updates["lifetime_earned"] = gorm.Expr("lifetime_earned + ?", amount)
		case model.BalanceKindDownstream:
			updates["lifetime_downstream"] = gorm.Expr("lifetime_downstream + ?", amount)
		}
	}

	return b.db.Model(&model.BuilderBalance{}).
		Where("foundation_id = ?", foundationID).
		Updates(updates).Error
}

// GetBalance 查询余额，没有记录时返回零值余额
func (b *BalanceLogic) GetBalance(foundationID uint) (*model.BuilderBalance, error) {
	var balance model.BuilderBalance
	err := b.db.Where("foundation_id = ?", foundationID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.BuilderBalance{FoundationID: foundationID}, nil
		}
		return nil, err
	}
	return &balance, nil
}
