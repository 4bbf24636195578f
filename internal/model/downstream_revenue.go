package model

import (
	"time"

	"gorm.io/gorm"
)

// DownstreamRevenue 上游分成记录（一次售卖触发的一笔上游payout）
type DownstreamRevenue struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	OriginalCreationID   uint  `json:"original_creation_id" gorm:"not null;index"` // 上游作品
	DerivedCreationID    uint  `json:"derived_creation_id" gorm:"not null;index"`  // 被售卖的衍生作品
	OriginalFoundationID uint  `json:"original_foundation_id" gorm:"not null;index"`
	SourceEventID        uint  `json:"source_event_id" gorm:"not null;index"` // 触发分成的收益事件
	Amount               int64 `json:"amount" gorm:"not null"`                // 分成金额（分）
	Depth                int   `json:"depth" gorm:"default:1"`                // 衍生链层数
}
