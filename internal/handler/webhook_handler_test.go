package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/database"
	"github.com/blues/gms/internal/model"
	"github.com/blues/gms/internal/payment"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testWebhookSecret = "whsec_test"

type stubProcessor struct{}

func (stubProcessor) CreateSplitPayment(ctx context.Context, req *payment.SplitPaymentRequest) (*payment.SplitPaymentSession, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubProcessor) CreatePayoutAccount(ctx context.Context, req *payment.PayoutAccountRequest) (*payment.PayoutAccount, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubProcessor) GetPayoutAccount(ctx context.Context, accountID string) (*payment.PayoutAccount, error) {
	return nil, fmt.Errorf("not implemented")
}

func setupWebhookTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Payment.WebhookSecret = testWebhookSecret
	cfg.Revenue.MaxLineageDepth = 1

	h := NewWebhookHandler(db, stubProcessor{}, cfg)
	r := gin.New()
	r.POST("/webhooks/payment", h.HandleWebhook)
	return db, r
}

func postWebhook(t *testing.T, r *gin.Engine, body []byte, sign bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sign {
		req.Header.Set(payment.SignatureHeader, payment.SignPayload(testWebhookSecret, body))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedSale(t *testing.T, db *gorm.DB) (*model.Foundation, *model.Creation) {
	t.Helper()

	foundation := model.Foundation{
		Name:                "seller",
		Email:               "seller@example.com",
		PayoutAccountID:     "acct_seller",
		PayoutAccountStatus: string(model.PayoutAccountStatusActive),
	}
	require.NoError(t, db.Create(&foundation).Error)

	creation := model.Creation{
		FoundationID:    foundation.ID,
		Title:           "测试作品",
		BasePrice:       1000,
		BuilderSharePct: 80,
		Visibility:      string(model.CreationVisibilityPublic),
		Status:          string(model.CreationStatusPublished),
	}
	require.NoError(t, db.Create(&creation).Error)
	return &foundation, &creation
}

func paymentCompletedBody(t *testing.T, creation *model.Creation, paymentID string) []byte {
	t.Helper()

	body, err := json.Marshal(payment.WebhookEvent{
		ID:   "evt_1",
		Type: payment.WebhookPaymentCompleted,
		Data: payment.WebhookData{
			PaymentID:   paymentID,
			GrossAmount: 1000,
			Metadata: map[string]string{
				"creation_id":          fmt.Sprintf("%d", creation.ID),
				"seller_foundation_id": fmt.Sprintf("%d", creation.FoundationID),
				"builder_share_pct":    "80",
				"buyer_id":             "buyer-1",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db, r := setupWebhookTest(t)
	_, creation := seedSale(t, db)

	w := postWebhook(t, r, paymentCompletedBody(t, creation, "pay_1"), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 签名不过不产生任何业务写入
	var count int64
	require.NoError(t, db.Model(&model.RevenueEvent{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWebhookRecordsPayment(t *testing.T) {
	db, r := setupWebhookTest(t)
	foundation, creation := seedSale(t, db)

	w := postWebhook(t, r, paymentCompletedBody(t, creation, "pay_1"), true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"recorded"`)

	var balance model.BuilderBalance
	require.NoError(t, db.Where("foundation_id = ?", foundation.ID).First(&balance).Error)
	assert.Equal(t, int64(800), balance.AvailableAmount)
}

func TestWebhookDuplicateIsNoop(t *testing.T) {
	db, r := setupWebhookTest(t)
	foundation, creation := seedSale(t, db)
	body := paymentCompletedBody(t, creation, "pay_1")

	first := postWebhook(t, r, body, true)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postWebhook(t, r, body, true)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), `"status":"duplicate"`)

	// 重放不产生第二笔入账
	var balance model.BuilderBalance
	require.NoError(t, db.Where("foundation_id = ?", foundation.ID).First(&balance).Error)
	assert.Equal(t, int64(800), balance.AvailableAmount)

	var count int64
	require.NoError(t, db.Model(&model.RevenueEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWebhookMalformedMetadataSkipped(t *testing.T) {
	db, r := setupWebhookTest(t)

	body, err := json.Marshal(payment.WebhookEvent{
		ID:   "evt_bad",
		Type: payment.WebhookPaymentCompleted,
		Data: payment.WebhookData{
			PaymentID:   "pay_bad",
			GrossAmount: 1000,
			Metadata:    map[string]string{"creation_id": "not-a-number"},
		},
	})
	require.NoError(t, err)

	w := postWebhook(t, r, body, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"skipped"`)

	var count int64
	require.NoError(t, db.Model(&model.RevenueEvent{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWebhookInvalidJSONAcknowledged(t *testing.T) {
	_, r := setupWebhookTest(t)

	w := postWebhook(t, r, []byte("not json at all"), true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"skipped"`)
}

func TestWebhookRefundFlow(t *testing.T) {
	db, r := setupWebhookTest(t)
	foundation, creation := seedSale(t, db)

	postWebhook(t, r, paymentCompletedBody(t, creation, "pay_1"), true)

	refundBody, err := json.Marshal(payment.WebhookEvent{
		ID:   "evt_refund",
		Type: payment.WebhookRefundIssued,
		Data: payment.WebhookData{PaymentID: "pay_1"},
	})
	require.NoError(t, err)

	w := postWebhook(t, r, refundBody, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"recorded"`)

	var balance model.BuilderBalance
	require.NoError(t, db.Where("foundation_id = ?", foundation.ID).First(&balance).Error)
	assert.Equal(t, int64(0), balance.AvailableAmount)
	assert.Equal(t, int64(800), balance.LifetimeEarned)
}

func TestWebhookRefundUnknownPaymentSkipped(t *testing.T) {
	_, r := setupWebhookTest(t)

	body, err := json.Marshal(payment.WebhookEvent{
		ID:   "evt_refund",
		Type: payment.WebhookRefundIssued,
		Data: payment.WebhookData{PaymentID: "pay_missing"},
	})
	require.NoError(t, err)

	w := postWebhook(t, r, body, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"skipped"`)
}

func TestWebhookPayoutAccountUpdated(t *testing.T) {
	db, r := setupWebhookTest(t)
	foundation, _ := seedSale(t, db)
	require.NoError(t, db.Model(foundation).
		Update("payout_account_status", string(model.PayoutAccountStatusPending)).Error)

	body, err := json.Marshal(payment.WebhookEvent{
		ID:   "evt_acct",
		Type: payment.WebhookPayoutAccountUpdated,
		Data: payment.WebhookData{AccountID: "acct_seller", Status: "active"},
	})
	require.NoError(t, err)

	w := postWebhook(t, r, body, true)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.Foundation
	require.NoError(t, db.First(&stored, foundation.ID).Error)
	assert.Equal(t, string(model.PayoutAccountStatusActive), stored.PayoutAccountStatus)
}

func TestWebhookUnknownTypeIgnored(t *testing.T) {
	_, r := setupWebhookTest(t)

	body, err := json.Marshal(payment.WebhookEvent{ID: "evt_x", Type: "subscription.created"})
	require.NoError(t, err)

	w := postWebhook(t, r, body, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ignored"`)
}
