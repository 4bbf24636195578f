package model

import (
	"time"

	"gorm.io/gorm"
)

// ContributionStatus 贡献积分状态
type ContributionStatus struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	FoundationID    uint       `json:"foundation_id" gorm:"uniqueIndex;not null"`
	Score           int64      `json:"score" gorm:"default:0"`          // 累计积分
	Tier            string     `json:"tier" gorm:"default:'GHOST'"`     // 当前等级
	EventCounters   CounterMap `json:"event_counters" gorm:"type:text"` // 按贡献类型的次数统计
	EnabledFeatures StringList `json:"enabled_features" gorm:"type:text"`
	LastActivityAt  time.Time  `json:"last_activity_at"`
}
