package model

import (
	"time"

	"gorm.io/gorm"
)

// OutboxEvent 出站事件（旁路副作用，至少一次投递）
type OutboxEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EventID     string    `json:"event_id" gorm:"uniqueIndex;not null"`
	Topic       string    `json:"topic" gorm:"not null;index"`      // 如 analytics.access_attempt
	Payload     string    `json:"payload" gorm:"type:text"`         // JSON
	Status      string    `json:"status" gorm:"default:'pending';index"` // pending, sent, failed
	Attempts    int       `json:"attempts" gorm:"default:0"`        // 已尝试次数
	NextRetryAt time.Time `json:"next_retry_at" gorm:"index"`       // 下次重试时间
	LastError   string    `json:"last_error"`
}

// OutboxStatus 出站事件状态
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending" // 待投递
	OutboxStatusSent    OutboxStatus = "sent"    // 已投递
	OutboxStatusFailed  OutboxStatus = "failed"  // 超过最大重试次数
)
