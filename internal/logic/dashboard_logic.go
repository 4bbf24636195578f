package logic

import (
	"time"

	"github.com/blues/gms/internal/model"
	"gorm.io/gorm"
)

// DashboardLogic 建造者看板业务逻辑
type DashboardLogic struct {
	db           *gorm.DB
	balanceLogic *BalanceLogic
	revenueLogic *RevenueLogic
	lineageLogic *LineageLogic
}

// NewDashboardLogic 创建看板业务逻辑
func NewDashboardLogic(db *gorm.DB, maxLineageDepth int) *DashboardLogic {
	return &DashboardLogic{
		db:           db,
		balanceLogic: NewBalanceLogic(db),
		revenueLogic: NewRevenueLogic(db, maxLineageDepth),
		lineageLogic: NewLineageLogic(db, maxLineageDepth),
	}
}

// WindowMetrics 时间窗口内的收益统计
type WindowMetrics struct {
	SaleAmount       int64 `json:"sale_amount"`       // 窗口内售卖净所得（含退款冲减）
	DownstreamAmount int64 `json:"downstream_amount"` // 窗口内上游分成所得
	SaleCount        int64 `json:"sale_count"`        // 窗口内成交笔数
}

// Dashboard 建造者看板聚合
type Dashboard struct {
	Balance           *model.BuilderBalance     `json:"balance"`
	Creations         []model.Creation          `json:"creations"`
	RecentEvents      []model.RevenueEvent      `json:"recent_events"`
	RecentDownstream  []model.DownstreamRevenue `json:"recent_downstream"`
	AllTime           WindowMetrics             `json:"all_time"`
	Last7Days         WindowMetrics             `json:"last_7_days"`
	Last30Days        WindowMetrics             `json:"last_30_days"`
}

// GetDashboard 聚合建造者的余额、作品和近期收益
func (d *DashboardLogic) GetDashboard(foundationID uint) (*Dashboard, error) {
	balance, err := d.balanceLogic.GetBalance(foundationID)
	if err != nil {
		return nil, err
	}

	var creations []model.Creation
	if err := d.db.Where("foundation_id = ?", foundationID).
		Order("created_at DESC").
		Find(&creations).Error; err != nil {
		return nil, err
	}

	recentEvents, err := d.revenueLogic.GetRecentEvents(foundationID, 10)
	if err != nil {
		return nil, err
	}

	recentDownstream, err := d.lineageLogic.GetRecentDownstream(foundationID, 10)
	if err != nil {
		return nil, err
	}

	allTime, err := d.windowMetrics(foundationID, time.Time{})
	if err != nil {
		return nil, err
	}
	last7, err := d.windowMetrics(foundationID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	last30, err := d.windowMetrics(foundationID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Balance:          balance,
		Creations:        creations,
		RecentEvents:     recentEvents,
		RecentDownstream: recentDownstream,
		AllTime:          allTime,
		Last7Days:        last7,
		Last30Days:       last30,
	}, nil
}

// windowMetrics 统计since之后的收益，since为零值时统计全部
func (d *DashboardLogic) windowMetrics(foundationID uint, since time.Time) (WindowMetrics, error) {
	var metrics WindowMetrics

	eventQuery := d.db.Model(&model.RevenueEvent{}).Where("seller_foundation_id = ?", foundationID)
	if !since.IsZero() {
		eventQuery = eventQuery.Where("created_at >= ?", since)
	}
	if err := eventQuery.Select("COALESCE(SUM(builder_amount), 0)").Scan(&metrics.SaleAmount).Error; err != nil {
		return metrics, err
	}

	saleQuery := d.db.Model(&model.RevenueEvent{}).
		Where("seller_foundation_id = ? AND event_type = ?", foundationID, string(model.RevenueEventTypeSale))
	if !since.IsZero() {
		saleQuery = saleQuery.Where("created_at >= ?", since)
	}
	if err := saleQuery.Count(&metrics.SaleCount).Error; err != nil {
		return metrics, err
	}

	downstreamQuery := d.db.Model(&model.DownstreamRevenue{}).Where("original_foundation_id = ?", foundationID)
	if !since.IsZero() {
		downstreamQuery = downstreamQuery.Where("created_at >= ?", since)
	}
	if err := downstreamQuery.Select("COALESCE(SUM(amount), 0)").Scan(&metrics.DownstreamAmount).Error; err != nil {
		return metrics, err
	}

	return metrics, nil
}
