package task

import (
	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/payment"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// TaskManager 任务管理器
type TaskManager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	processor payment.Processor
	config    *config.Config
}

// NewTaskManager 创建新的任务管理器
func NewTaskManager(db *gorm.DB, processor payment.Processor, cfg *config.Config) *TaskManager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &TaskManager{
		scheduler: s,
		db:        db,
		processor: processor,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, processor payment.Processor, cfg *config.Config) *TaskManager {
	manager := NewTaskManager(db, processor, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *TaskManager) RegisterJobs() {
	m.RegisterOutboxDispatchJob()
	m.RegisterPayoutSyncJob()
}

// RegisterOutboxDispatchJob 注册出站事件派发任务
func (m *TaskManager) RegisterOutboxDispatchJob() {
	job, err := NewOutboxDispatchJob(m.db, m.config)
	if err != nil {
		logger.Error("Failed to create outbox dispatch job: %v", err)
		return
	}

	_, err = m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// RegisterPayoutSyncJob 注册收款账户对账任务
func (m *TaskManager) RegisterPayoutSyncJob() {
	job := NewPayoutSyncJob(m.db, m.processor, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *TaskManager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
