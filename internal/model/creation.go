package model

import (
	"time"

	"gorm.io/gorm"
)

// Creation 可售卖作品
type Creation struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	FoundationID uint   `json:"foundation_id" gorm:"not null;index"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`

	BasePrice          int64 `json:"base_price" gorm:"not null"`            // 价格（分）
	BuilderSharePct    int64 `json:"builder_share_pct" gorm:"default:80"`   // 建造者分成比例
	DownstreamSharePct int64 `json:"downstream_share_pct" gorm:"default:0"` // 衍生作品售卖时本作品获得的分成比例

	Visibility string `json:"visibility" gorm:"default:'public'"`  // public, private
	Status     string `json:"status" gorm:"default:'published'"`   // published, suspended

	// 关联
	Foundation Foundation `json:"foundation,omitempty" gorm:"foreignKey:FoundationID"`
}

// CreationStatus 作品状态
type CreationStatus string

const (
	CreationStatusPublished CreationStatus = "published" // 已发布
	CreationStatusSuspended CreationStatus = "suspended" // 已下架
)

// CreationVisibility 作品可见性
type CreationVisibility string

const (
	CreationVisibilityPublic  CreationVisibility = "public"  // 公开
	CreationVisibilityPrivate CreationVisibility = "private" // 私有
)
