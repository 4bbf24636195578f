package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/logger"
	"github.com/blues/gms/internal/logic"
	"github.com/blues/gms/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WebhookHandler struct {
	revenueLogic *logic.RevenueLogic
	payoutLogic  *logic.PayoutLogic
	secret       string
}

func NewWebhookHandler(db *gorm.DB, processor payment.Processor, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		revenueLogic: logic.NewRevenueLogic(db, cfg.Revenue.MaxLineageDepth),
		payoutLogic:  logic.NewPayoutLogic(db, processor),
		secret:       cfg.Payment.WebhookSecret,
	}
}

// HandleWebhook 接收支付服务商的事件通知
// 签名错误拒绝让服务商重试；数据永久残缺的事件记日志后确认，避免无限重投
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取请求体失败"})
		return
	}

	signature := c.GetHeader(payment.SignatureHeader)
	if !payment.VerifySignature(h.secret, body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "签名校验失败"})
		return
	}

	var event payment.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("Webhook payload is not valid JSON: %v", err)
		c.JSON(http.StatusOK, gin.H{"status": "skipped"})
		return
	}

	switch event.Type {
	case payment.WebhookPaymentCompleted:
		h.handlePaymentCompleted(c, &event)
	case payment.WebhookRefundIssued:
		h.handleRefundIssued(c, &event)
	case payment.WebhookPayoutAccountUpdated:
		h.handlePayoutAccountUpdated(c, &event)
	case payment.WebhookTransferCreated:
		logger.Info("Transfer %s created for payment %s", event.Data.TransferID, event.Data.PaymentID)
		c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})
	default:
		logger.Info("Ignoring unhandled webhook type %s", event.Type)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

// handlePaymentCompleted 处理到账确认
func (h *WebhookHandler) handlePaymentCompleted(c *gin.Context, event *payment.WebhookEvent) {
	input, ok := h.saleInputFromEvent(event)
	if !ok {
		// metadata残缺属于永久性问题，确认掉避免服务商无限重试
		logger.Warn("Payment %s missing expected metadata, skipping", event.Data.PaymentID)
		c.JSON(http.StatusOK, gin.H{"status": "skipped"})
		return
	}

	revenueEvent, created, err := h.revenueLogic.RecordSale(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "recorded"
	if !created {
		status = "duplicate"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"event_id": revenueEvent.EventID,
	})
}

// handleRefundIssued 处理退款通知
func (h *WebhookHandler) handleRefundIssued(c *gin.Context, event *payment.WebhookEvent) {
	if event.Data.PaymentID == "" {
		logger.Warn("Refund event missing payment id, skipping")
		c.JSON(http.StatusOK, gin.H{"status": "skipped"})
		return
	}

	refund, created, err := h.revenueLogic.RecordRefund(event.Data.PaymentID)
	if err != nil {
		if errors.Is(err, logic.ErrOriginalSaleNotFound) {
			logger.Warn("Refund for unknown payment %s, skipping", event.Data.PaymentID)
			c.JSON(http.StatusOK, gin.H{"status": "skipped"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "recorded"
	if !created {
		status = "duplicate"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"event_id": refund.EventID,
	})
}

// handlePayoutAccountUpdated 处理收款账户状态变化
func (h *WebhookHandler) handlePayoutAccountUpdated(c *gin.Context, event *payment.WebhookEvent) {
	err := h.payoutLogic.UpdateAccountStatus(event.Data.AccountID, event.Data.Status)
	if err != nil {
		if errors.Is(err, logic.ErrPayoutAccountNotFound) {
			logger.Warn("Status update for unknown payout account %s, skipping", event.Data.AccountID)
			c.JSON(http.StatusOK, gin.H{"status": "skipped"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// saleInputFromEvent 从checkout时嵌入的metadata还原分账参数
func (h *WebhookHandler) saleInputFromEvent(event *payment.WebhookEvent) (*logic.SaleInput, bool) {
	meta := event.Data.Metadata
	if event.Data.PaymentID == "" || meta == nil {
		return nil, false
	}

	creationID, err := strconv.ParseUint(meta["creation_id"], 10, 32)
	if err != nil || creationID == 0 {
		return nil, false
	}
	sellerID, err := strconv.ParseUint(meta["seller_foundation_id"], 10, 32)
	if err != nil || sellerID == 0 {
		return nil, false
	}
	sharePct, err := strconv.ParseInt(meta["builder_share_pct"], 10, 64)
	if err != nil {
		return nil, false
	}
	if event.Data.GrossAmount <= 0 {
		return nil, false
	}

	return &logic.SaleInput{
		CreationID:         uint(creationID),
		GrossAmount:        event.Data.GrossAmount,
		BuilderSharePct:    sharePct,
		BuyerID:            meta["buyer_id"],
		SellerFoundationID: uint(sellerID),
		ExternalPaymentID:  event.Data.PaymentID,
	}, true
}
