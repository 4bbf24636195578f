package logic

import (
	"context"
	"errors"
	"strconv"

	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/model"
	"github.com/blues/gms/internal/payment"
	"gorm.io/gorm"
)

// CheckoutLogic 下单业务逻辑
type CheckoutLogic struct {
	db        *gorm.DB
	processor payment.Processor
}

// NewCheckoutLogic 创建下单业务逻辑
func NewCheckoutLogic(db *gorm.DB, processor payment.Processor) *CheckoutLogic {
	return &CheckoutLogic{db: db, processor: processor}
}

// CheckoutResult 下单结果，含给前端展示的价格拆分
type CheckoutResult struct {
	CreationID      uint   `json:"creation_id"`
	RedirectURL     string `json:"redirect_url"`
	PaymentID       string `json:"payment_id"`
	GrossAmount     int64  `json:"gross_amount"`
	BuilderAmount   int64  `json:"builder_amount"`
	NetworkAmount   int64  `json:"network_amount"`
	BuilderSharePct int64  `json:"builder_share_pct"`
}

// Checkout 发起一次购买
// 卖家必须有可用收款账户，分成比例在此刻锁定并随metadata回传
func (c *CheckoutLogic) Checkout(ctx context.Context, creationID uint, buyerID string) (*CheckoutResult, error) {
	var creation model.Creation
	if err := c.db.Preload("Foundation").First(&creation, creationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreationNotFound
		}
		return nil, err
	}

	if creation.Status != string(model.CreationStatusPublished) {
		return nil, ErrCreationNotSellable
	}

	// 卖家收不了款就不允许成交
	if creation.Foundation.PayoutAccountStatus != string(model.PayoutAccountStatusActive) {
		return nil, ErrNoActivePayoutAccount
	}

	builderAmount, networkAmount := SplitAmounts(creation.BasePrice, creation.BuilderSharePct)

	// 拆分结果嵌入metadata，webhook确认时不再依赖可能已变化的作品状态
	metadata := map[string]string{
		"creation_id":          strconv.FormatUint(uint64(creation.ID), 10),
		"seller_foundation_id": strconv.FormatUint(uint64(creation.FoundationID), 10),
		"builder_share_pct":    strconv.FormatInt(creation.BuilderSharePct, 10),
		"builder_amount":       strconv.FormatInt(builderAmount, 10),
		"network_amount":       strconv.FormatInt(networkAmount, 10),
		"buyer_id":             buyerID,
	}

	session, err := c.processor.CreateSplitPayment(ctx, &payment.SplitPaymentRequest{
		CreationID:      creation.ID,
		GrossAmount:     creation.BasePrice,
		BuilderAmount:   builderAmount,
		NetworkAmount:   networkAmount,
		PayoutAccountID: creation.Foundation.PayoutAccountID,
		Metadata:        metadata,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Checkout created for creation %d: payment=%s gross=%d", creation.ID, session.PaymentID, creation.BasePrice)
	return &CheckoutResult{
		CreationID:      creation.ID,
		RedirectURL:     session.RedirectURL,
		PaymentID:       session.PaymentID,
		GrossAmount:     creation.BasePrice,
		BuilderAmount:   builderAmount,
		NetworkAmount:   networkAmount,
		BuilderSharePct: creation.BuilderSharePct,
	}, nil
}
