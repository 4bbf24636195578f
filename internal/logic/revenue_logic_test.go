package logic

import (
	"testing"

	"github.com/blues/gms/internal/database"
	"github.com/blues/gms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAmounts(t *testing.T) {
	cases := []struct {
		gross, pct, builder, network int64
	}{
		{1000, 80, 800, 200},
		{999, 80, 799, 200}, // 向下取整，余数归平台
		{1, 80, 0, 1},
		{1000, 0, 0, 1000},
		{1000, 100, 1000, 0},
		{333, 33, 109, 224},
	}
	for _, c := range cases {
		builder, network := SplitAmounts(c.gross, c.pct)
		assert.Equal(t, c.builder, builder, "gross=%d pct=%d", c.gross, c.pct)
		assert.Equal(t, c.network, network, "gross=%d pct=%d", c.gross, c.pct)
		// 不允许出现金额泄漏
		assert.Equal(t, c.gross, builder+network)
	}
}

func TestRecordSale(t *testing.T) {
	db := setupTestDB(t)
	seller := createFoundation(t, db, "seller", model.PayoutAccountStatusActive)
	creation := createCreation(t, db, seller.ID, 1000, 80, 0)
	revenueLogic := NewRevenueLogic(db, 1)

	event, created, err := revenueLogic.RecordSale(&SaleInput{
		CreationID:         creation.ID,
		GrossAmount:        1000,
		BuilderSharePct:    80,
		BuyerID:            "buyer-1",
		SellerFoundationID: seller.ID,
		ExternalPaymentID:  "pay_001",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1000), event.GrossAmount)
	assert.Equal(t, int64(800), event.BuilderAmount)
	assert.Equal(t, int64(200), event.NetworkAmount)
	assert.Equal(t, string(model.RevenueEventTypeSale), event.EventType)

	balance, err := NewBalanceLogic(db).GetBalance(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance.AvailableAmount)
	assert.Equal(t, int64(800), balance.LifetimeEarned)

	// 售卖会给卖家记marketplace_sale积分
	status, err := NewContributionLogic(db).GetStatus(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), status.Score)
}

func TestRecordSaleIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seller := createFoundation(t, db, "seller", model.PayoutAccountStatusActive)
	creation := createCreation(t, db, seller.ID, 1000, 80, 0)
	revenueLogic := NewRevenueLogic(db, 1)

	input := &SaleInput{
		CreationID:         creation.ID,
		GrossAmount:        1000,
		BuilderSharePct:    80,
		SellerFoundationID: seller.ID,
		ExternalPaymentID:  "pay_dup",
	}

	first, created, err := revenueLogic.RecordSale(input)
	require.NoError(t, err)
	assert.True(t, created)

	// 同一外部支付ID重复投递：无操作成功，余额不变
	second, created, err := revenueLogic.RecordSale(input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	balance, err := NewBalanceLogic(db).GetBalance(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance.AvailableAmount)

	var count int64
	require.NoError(t, db.Model(&model.RevenueEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordRefund(t *testing.T) {
	db := setupTestDB(t)
	seller := createFoundation(t, db, "seller", model.PayoutAccountStatusActive)
	creation := createCreation(t, db, seller.ID, 1000, 80, 0)
	revenueLogic := NewRevenueLogic(db, 1)

	_, _, err := revenueLogic.RecordSale(&SaleInput{
		CreationID:         creation.ID,
		GrossAmount:        1000,
		BuilderSharePct:    80,
		SellerFoundationID: seller.ID,
		ExternalPaymentID:  "pay_refund",
	})
	require.NoError(t, err)

	refund, created, err := revenueLogic.RecordRefund("pay_refund")
	require.NoError(t, err)
	assert.True(t, created)

	// 退款镜像原始事件取负
	assert.Equal(t, int64(-1000), refund.GrossAmount)
	assert.Equal(t, int64(-800), refund.BuilderAmount)
	assert.Equal(t, int64(-200), refund.NetworkAmount)
	assert.Equal(t, refund.GrossAmount, refund.BuilderAmount+refund.NetworkAmount)

	// 可用余额扣回800，累计值不减少
	balance, err := NewBalanceLogic(db).GetBalance(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.AvailableAmount)
	assert.Equal(t, int64(800), balance.LifetimeEarned)

	// 原始事件被标记冲销
	var original model.RevenueEvent
	require.NoError(t, db.Where("external_payment_id = ?", "pay_refund").First(&original).Error)
	assert.Equal(t, string(model.RevenueEventStatusReversed), original.Status)
}

func TestRecordRefundIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seller := createFoundation(t, db, "seller", model.PayoutAccountStatusActive)
	creation := createCreation(t, db, seller.ID, 1000, 80, 0)
	revenueLogic := NewRevenueLogic(db, 1)

	_, _, err := revenueLogic.RecordSale(&SaleInput{
		CreationID:         creation.ID,
		GrossAmount:        1000,
		BuilderSharePct:    80,
		SellerFoundationID: seller.ID,
		ExternalPaymentID:  "pay_rr",
	})
	require.NoError(t, err)

	_, created, err := revenueLogic.RecordRefund("pay_rr")
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = revenueLogic.RecordRefund("pay_rr")
	require.NoError(t, err)
	assert.False(t, created)

	balance, err := NewBalanceLogic(db).GetBalance(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.AvailableAmount)
}

func TestRecordSaleReplayAfterFailedAttempt(t *testing.T) {
	db := setupTestDB(t)
	seller := createFoundation(t, db, "seller", model.PayoutAccountStatusActive)
	creation := createCreation(t, db, seller.ID, 1000, 80, 0)
	revenueLogic := NewRevenueLogic(db, 1)

	input := &SaleInput{
		CreationID:         creation.ID,
		GrossAmount:        1000,
		BuilderSharePct:    80,
		SellerFoundationID: seller.ID,
		ExternalPaymentID:  "pay_crash",
	}

	// 人为让动账步骤失败
	require.NoError(t, db.Migrator().DropTable(&model.BuilderBalance{}))
	_, _, err := revenueLogic.RecordSale(input)
	require.Error(t, err)

	// 事件行随事务整体回滚，不留下会吞掉重放的幂等记录
	var count int64
	require.NoError(t, db.Model(&model.RevenueEvent{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// 服务商重投同一支付ID后完整入账
	require.NoError(t, database.Migrate(db))
	event, created, err := revenueLogic.RecordSale(input)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(800), event.BuilderAmount)

	balance, err := NewBalanceLogic(db).GetBalance(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance.AvailableAmount)
}

func TestRecordRefundReplayAfterFailedAttempt(t *testing.T) {
	db := setupTestDB(t)
	seller := createFoundation(t, db, "seller", model.PayoutAccountStatusActive)
	creation := createCreation(t, db, seller.ID, 1000, 80, 0)
	revenueLogic := NewRevenueLogic(db, 1)

	_, _, err := revenueLogic.RecordSale(&SaleInput{
		CreationID:         creation.ID,
		GrossAmount:        1000,
		BuilderSharePct:    80,
		SellerFoundationID: seller.ID,
		ExternalPaymentID:  "pay_rc",
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(&model.BuilderBalance{}))
	_, _, err = revenueLogic.RecordRefund("pay_rc")
	require.Error(t, err)

	// 退款行被回滚，原始事件也未被冲销
	var count int64
	require.NoError(t, db.Model(&model.RevenueEvent{}).
		Where("event_type = ?", string(model.RevenueEventTypeRefund)).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var original model.RevenueEvent
	require.NoError(t, db.Where("external_payment_id = ?", "pay_rc").First(&original).Error)
	assert.Equal(t, string(model.RevenueEventStatusCompleted), original.Status)

	// 重投退款通知后完整生效
	require.NoError(t, database.Migrate(db))
	refund, created, err := revenueLogic.RecordRefund("pay_rc")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(-800), refund.BuilderAmount)

	require.NoError(t, db.Where("external_payment_id = ?", "pay_rc").First(&original).Error)
	assert.Equal(t, string(model.RevenueEventStatusReversed), original.Status)
}

func TestRecordRefundUnknownPayment(t *testing.T) {
	db := setupTestDB(t)
	revenueLogic := NewRevenueLogic(db, 1)

	_, _, err := revenueLogic.RecordRefund("pay_missing")
	assert.ErrorIs(t, err, ErrOriginalSaleNotFound)
}

func TestRecordSaleValidation(t *testing.T) {
	db := setupTestDB(t)
	revenueLogic := NewRevenueLogic(db, 1)

	_, _, err := revenueLogic.RecordSale(&SaleInput{
		GrossAmount:        1000,
		BuilderSharePct:    80,
		SellerFoundationID: 1,
		ExternalPaymentID:  "pay_x",
	})
	assert.Error(t, err)

	_, _, err = revenueLogic.RecordSale(&SaleInput{
		CreationID:         1,
		GrossAmount:        1000,
		BuilderSharePct:    120,
		SellerFoundationID: 1,
		ExternalPaymentID:  "pay_x",
	})
	assert.Error(t, err)
}
