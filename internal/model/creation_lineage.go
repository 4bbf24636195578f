package model

import (
	"time"

	"gorm.io/gorm"
)

// CreationLineage 作品衍生关系（子 -> 父 的有向边）
type CreationLineage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	CreationID         uint   `json:"creation_id" gorm:"not null;index"`        // 子作品
	ParentCreationID   uint   `json:"parent_creation_id" gorm:"not null;index"` // 父作品
	ParentFoundationID uint   `json:"parent_foundation_id" gorm:"not null"`     // 父作品的建造者
	RelationKind       string `json:"relation_kind" gorm:"default:'derived'"`   // derived, remix, fork
	RevenueShareActive bool   `json:"revenue_share_active" gorm:"default:true"` // 是否参与分成
}

// LineageRelationKind 衍生关系类型
type LineageRelationKind string

const (
	LineageRelationDerived LineageRelationKind = "derived" // 衍生
	LineageRelationRemix   LineageRelationKind = "remix"   // 混合
	LineageRelationFork    LineageRelationKind = "fork"    // 分叉
)
