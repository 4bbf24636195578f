package model

import (
	"time"

	"gorm.io/gorm"
)

// BuilderBalance 建造者余额，只通过原子自增修改
type BuilderBalance struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	FoundationID       uint  `json:"foundation_id" gorm:"uniqueIndex;not null"`
	AvailableAmount    int64 `json:"available_amount" gorm:"default:0"`    // 可用余额（分）
	PendingAmount      int64 `json:"pending_amount" gorm:"default:0"`      // 待结算余额
	LifetimeEarned     int64 `json:"lifetime_earned" gorm:"default:0"`     // 累计售卖所得
	LifetimeDownstream int64 `json:"lifetime_downstream" gorm:"default:0"` // 累计上游分成所得
}

// BalanceKind 余额变动类型
type BalanceKind string

const (
	BalanceKindSale       BalanceKind = "sale"       // 售卖所得
	BalanceKindDownstream BalanceKind = "downstream" // 上游分成所得
)
