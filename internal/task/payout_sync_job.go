package task

import (
	"context"
	"time"

	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/logic"
	"github.com/blues/gms/internal/payment"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// PayoutSyncJob 收款账户对账任务，容忍webhook丢失
type PayoutSyncJob struct {
	payoutLogic *logic.PayoutLogic
	config      *config.Config
}

// NewPayoutSyncJob 创建收款账户对账任务
func NewPayoutSyncJob(db *gorm.DB, processor payment.Processor, cfg *config.Config) *PayoutSyncJob {
	return &PayoutSyncJob{
		payoutLogic: logic.NewPayoutLogic(db, processor),
		config:      cfg,
	}
}

// GetName 获取任务名称
func (j *PayoutSyncJob) GetName() string {
	return "payout_account_sync"
}

// GetSchedule 获取调度配置
func (j *PayoutSyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *PayoutSyncJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	synced, err := j.payoutLogic.SyncPendingAccounts(ctx)
	if err != nil {
		logger.Error("Payout account sync failed: %v", err)
		return
	}
	if synced > 0 {
		logger.Info("Payout account sync completed, %d accounts updated", synced)
	}
}
