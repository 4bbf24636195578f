package outbox

import (
	"encoding/json"
	"time"

	"github.com/blues/gms/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enqueue 写入一条待投递的出站事件，通常与业务写入共用同一事务
func Enqueue(db *gorm.DB, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := model.OutboxEvent{
		EventID:     uuid.NewString(),
		Topic:       topic,
		Payload:     string(data),
		Status:      string(model.OutboxStatusPending),
		NextRetryAt: time.Now(),
	}
	return db.Create(&event).Error
}
