package model

import (
	"time"

	"gorm.io/gorm"
)

// RevenueEvent 收益事件（售卖/退款的账本记录，只追加不修改）
type RevenueEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EventID    string `json:"event_id" gorm:"uniqueIndex;not null"` // 内部事件ID
	CreationID uint   `json:"creation_id" gorm:"not null;index"`
	EventType  string `json:"event_type" gorm:"not null"` // sale, refund

	GrossAmount   int64 `json:"gross_amount" gorm:"not null"`   // 总金额（分）
	BuilderAmount int64 `json:"builder_amount" gorm:"not null"` // 建造者所得
	NetworkAmount int64 `json:"network_amount" gorm:"not null"` // 平台所得

	BuyerID            string `json:"buyer_id"`
	SellerFoundationID uint   `json:"seller_foundation_id" gorm:"not null;index"`
	ExternalPaymentID  string `json:"external_payment_id" gorm:"uniqueIndex;not null"` // 外部支付ID，天然幂等键
	Status             string `json:"status" gorm:"default:'completed'"`               // completed, reversed

	// 关联
	Creation Creation `json:"creation,omitempty" gorm:"foreignKey:CreationID"`
}

// RevenueEventType 收益事件类型
type RevenueEventType string

const (
	RevenueEventTypeSale   RevenueEventType = "sale"   // 售卖
	RevenueEventTypeRefund RevenueEventType = "refund" // 退款
)

// RevenueEventStatus 收益事件状态
type RevenueEventStatus string

const (
	RevenueEventStatusCompleted RevenueEventStatus = "completed" // 已完成
	RevenueEventStatusReversed  RevenueEventStatus = "reversed"  // 已被退款冲销
)
