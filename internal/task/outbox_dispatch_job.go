package task

import (
	"time"

	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/outbox"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// OutboxDispatchJob 出站事件派发任务
type OutboxDispatchJob struct {
	dispatcher *outbox.Dispatcher
	config     *config.Config
}

// NewOutboxDispatchJob 创建出站事件派发任务
func NewOutboxDispatchJob(db *gorm.DB, cfg *config.Config) (*OutboxDispatchJob, error) {
	dispatcher, err := outbox.NewDispatcher(db, cfg.Outbox)
	if err != nil {
		return nil, err
	}
	return &OutboxDispatchJob{
		dispatcher: dispatcher,
		config:     cfg,
	}, nil
}

// GetName 获取任务名称
func (j *OutboxDispatchJob) GetName() string {
	return "outbox_dispatcher"
}

// GetSchedule 获取调度配置
func (j *OutboxDispatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(10 * time.Second)
}

// Execute 执行任务
func (j *OutboxDispatchJob) Execute() {
	if err := j.dispatcher.DispatchOnce(); err != nil {
		logger.Error("Outbox dispatch round failed: %v", err)
	}
}
