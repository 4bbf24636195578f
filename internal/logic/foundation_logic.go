package logic

import (
	"errors"
	"strings"

	"github.com/blues/gms/internal/model"
	"gorm.io/gorm"
)

// FoundationLogic 建造者账户业务逻辑
type FoundationLogic struct {
	db *gorm.DB
}

// NewFoundationLogic 创建建造者账户业务逻辑
func NewFoundationLogic(db *gorm.DB) *FoundationLogic {
	return &FoundationLogic{db: db}
}

// Create 注册建造者账户
func (f *FoundationLogic) Create(foundation *model.Foundation) error {
	if foundation.Name == "" {
		return errors.New("名称不能为空")
	}
	if foundation.Email == "" || !strings.Contains(foundation.Email, "@") {
		return errors.New("邮箱格式非法")
	}

	foundation.PayoutAccountStatus = string(model.PayoutAccountStatusNone)
	return f.db.Create(foundation).Error
}

// GetFoundation 获取建造者账户
func (f *FoundationLogic) GetFoundation(id uint) (*model.Foundation, error) {
	var foundation model.Foundation
	if err := f.db.First(&foundation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoundationNotFound
		}
		return nil, err
	}
	return &foundation, nil
}
