package model

import (
	"time"

	"gorm.io/gorm"
)

// Foundation 建造者账户
type Foundation struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email" gorm:"uniqueIndex;not null"`

	PayoutAccountID     string `json:"payout_account_id" gorm:"index"`
	PayoutAccountStatus string `json:"payout_account_status" gorm:"default:'none'"` // none, pending, active, restricted
}

// PayoutAccountStatus 收款账户状态
type PayoutAccountStatus string

const (
	PayoutAccountStatusNone       PayoutAccountStatus = "none"       // 未开通
	PayoutAccountStatusPending    PayoutAccountStatus = "pending"    // 待审核
	PayoutAccountStatusActive     PayoutAccountStatus = "active"     // 可收款
	PayoutAccountStatusRestricted PayoutAccountStatus = "restricted" // 受限
)
