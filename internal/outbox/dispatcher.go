package outbox

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Dispatcher 出站事件派发器
// 从outbox表取pending事件投递到分析端，至少一次语义
type Dispatcher struct {
	db          *gorm.DB
	pool        *ants.Pool
	httpClient  *http.Client
	batchSize   int
	maxAttempts int
	targetURL   string
}

// NewDispatcher 创建派发器
func NewDispatcher(db *gorm.DB, cfg config.OutboxConfig) (*Dispatcher, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 8
	}

	return &Dispatcher{
		db:          db,
		pool:        pool,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		targetURL:   cfg.AnalyticsURL,
	}, nil
}

// DispatchOnce 处理一轮待投递事件
func (d *Dispatcher) DispatchOnce() error {
	var events []model.OutboxEvent
	if err := d.db.Where("status = ? AND next_retry_at <= ?",
		string(model.OutboxStatusPending), time.Now()).
		Order("created_at ASC").
		Limit(d.batchSize).
		Find(&events).Error; err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for i := range events {
		event := events[i]
		wg.Add(1)
		err := d.pool.Submit(func() {
			defer wg.Done()
			d.deliver(&event)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit outbox event %s to pool: %v", event.EventID, err)
		}
	}
	wg.Wait()

	return nil
}

// deliver 投递单条事件，失败退避重试
func (d *Dispatcher) deliver(event *model.OutboxEvent) {
	if err := d.send(event); err != nil {
		attempts := event.Attempts + 1
		updates := map[string]interface{}{
			"attempts":   attempts,
			"last_error": err.Error(),
		}
		if attempts >= d.maxAttempts {
			updates["status"] = string(model.OutboxStatusFailed)
			logger.Error("Outbox event %s failed permanently after %d attempts: %v", event.EventID, attempts, err)
		} else {
			updates["next_retry_at"] = time.Now().Add(backoff(attempts))
			logger.Warn("Outbox event %s delivery failed (attempt %d): %v", event.EventID, attempts, err)
		}
		if dbErr := d.db.Model(event).Updates(updates).Error; dbErr != nil {
			logger.Error("Failed to update outbox event %s: %v", event.EventID, dbErr)
		}
		return
	}

	if err := d.db.Model(event).Updates(map[string]interface{}{
		"status":   string(model.OutboxStatusSent),
		"attempts": event.Attempts + 1,
	}).Error; err != nil {
		logger.Error("Failed to mark outbox event %s as sent: %v", event.EventID, err)
	}
}

// send 执行一次HTTP投递，未配置目标时直接落日志
func (d *Dispatcher) send(event *model.OutboxEvent) error {
	if d.targetURL == "" {
		logger.Debug("Outbox event %s (%s): %s", event.EventID, event.Topic, event.Payload)
		return nil
	}

	req, err := http.NewRequest(http.MethodPost, d.targetURL, bytes.NewBufferString(event.Payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Grove-Topic", event.Topic)
	req.Header.Set("X-Grove-Event-Id", event.EventID)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("analytics endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// Release 释放协程池
func (d *Dispatcher) Release() {
	d.pool.Release()
}

// backoff 指数退避，上限10分钟
func backoff(attempts int) time.Duration {
	duration := time.Second * 5
	for i := 1; i < attempts; i++ {
		duration *= 2
		if duration > 10*time.Minute {
			return 10 * time.Minute
		}
	}
	return duration
}
