package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"github.com/blues/gms/internal/payment"
	"gorm.io/gorm"
)

// PayoutLogic 收款账户业务逻辑
type PayoutLogic struct {
	db        *gorm.DB
	processor payment.Processor
}

// NewPayoutLogic 创建收款账户业务逻辑
func NewPayoutLogic(db *gorm.DB, processor payment.Processor) *PayoutLogic {
	return &PayoutLogic{db: db, processor: processor}
}

// ProvisionResult 开通结果
type ProvisionResult struct {
	FoundationID  uint   `json:"foundation_id"`
	AccountID     string `json:"account_id"`
	Status        string `json:"status"`
	OnboardingURL string `json:"onboarding_url"`
}

// Provision 为建造者开通收款账户
func (p *PayoutLogic) Provision(ctx context.Context, foundationID uint, email, country string) (*ProvisionResult, error) {
	if email == "" {
		return nil, errors.New("邮箱不能为空")
	}
	if country == "" {
		return nil, errors.New("国家不能为空")
	}

	var foundation model.Foundation
	if err := p.db.First(&foundation, foundationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoundationNotFound
		}
		return nil, err
	}

	// 已有可用账户不允许重复开通
	if foundation.PayoutAccountStatus == string(model.PayoutAccountStatusActive) {
		return nil, ErrPayoutAccountExists
	}

	account, err := p.processor.CreatePayoutAccount(ctx, &payment.PayoutAccountRequest{
		FoundationID: foundationID,
		Email:        email,
		Country:      country,
	})
	if err != nil {
		return nil, fmt.Errorf("开通收款账户失败: %w", err)
	}

	updates := map[string]interface{}{
		"payout_account_id":     account.AccountID,
		"payout_account_status": string(model.PayoutAccountStatusPending),
	}
	if err := p.db.Model(&foundation).Updates(updates).Error; err != nil {
		return nil, err
	}

	logger.Info("Provisioned payout account %s for foundation %d", account.AccountID, foundationID)
	return &ProvisionResult{
		FoundationID:  foundationID,
		AccountID:     account.AccountID,
		Status:        string(model.PayoutAccountStatusPending),
		OnboardingURL: account.OnboardingURL,
	}, nil
}

// UpdateAccountStatus 处理服务商的账户状态通知
func (p *PayoutLogic) UpdateAccountStatus(accountID, status string) error {
	if accountID == "" {
		return errors.New("账户ID不能为空")
	}

	switch model.PayoutAccountStatus(status) {
	case model.PayoutAccountStatusPending, model.PayoutAccountStatusActive, model.PayoutAccountStatusRestricted:
	default:
		return fmt.Errorf("未知的收款账户状态: %s", status)
	}

	result := p.db.Model(&model.Foundation{}).
		Where("payout_account_id = ?", accountID).
		Update("payout_account_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPayoutAccountNotFound
	}

	logger.Info("Payout account %s status updated to %s", accountID, status)
	return nil
}

// SyncPendingAccounts 主动对账pending账户，容忍webhook丢失
func (p *PayoutLogic) SyncPendingAccounts(ctx context.Context) (int, error) {
	var foundations []model.Foundation
	if err := p.db.Where("payout_account_status = ? AND payout_account_id <> ''",
		string(model.PayoutAccountStatusPending)).Find(&foundations).Error; err != nil {
		return 0, err
	}

	synced := 0
	for _, foundation := range foundations {
		account, err := p.processor.GetPayoutAccount(ctx, foundation.PayoutAccountID)
		if err != nil {
			logger.Warn("Failed to sync payout account %s: %v", foundation.PayoutAccountID, err)
			continue
		}
		if account.Status == foundation.PayoutAccountStatus {
			continue
		}
		if err := p.UpdateAccountStatus(account.AccountID, account.Status); err != nil {
			logger.Warn("Failed to update payout account %s: %v", account.AccountID, err)
			continue
		}
		synced++
	}
	return synced, nil
}
