package logic

import (
	"context"
	"testing"

	"github.com/blues/gms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionPayoutAccount(t *testing.T) {
	db := setupTestDB(t)
	foundation := model.Foundation{Name: "builder", Email: "builder@example.com"}
	require.NoError(t, db.Create(&foundation).Error)

	payoutLogic := NewPayoutLogic(db, &fakeProcessor{})

	result, err := payoutLogic.Provision(context.Background(), foundation.ID, "builder@example.com", "US")
	require.NoError(t, err)
	assert.Equal(t, "acct_new", result.AccountID)
	assert.Equal(t, string(model.PayoutAccountStatusPending), result.Status)
	assert.NotEmpty(t, result.OnboardingURL)

	var stored model.Foundation
	require.NoError(t, db.First(&stored, foundation.ID).Error)
	assert.Equal(t, "acct_new", stored.PayoutAccountID)
	assert.Equal(t, string(model.PayoutAccountStatusPending), stored.PayoutAccountStatus)
}

func TestProvisionRefusesActiveAccount(t *testing.T) {
	db := setupTestDB(t)
	foundation := createFoundation(t, db, "builder", model.PayoutAccountStatusActive)

	payoutLogic := NewPayoutLogic(db, &fakeProcessor{})

	_, err := payoutLogic.Provision(context.Background(), foundation.ID, "builder@example.com", "US")
	assert.ErrorIs(t, err, ErrPayoutAccountExists)
}

func TestProvisionUnknownFoundation(t *testing.T) {
	db := setupTestDB(t)
	payoutLogic := NewPayoutLogic(db, &fakeProcessor{})

	_, err := payoutLogic.Provision(context.Background(), 404, "x@example.com", "US")
	assert.ErrorIs(t, err, ErrFoundationNotFound)
}

func TestUpdateAccountStatus(t *testing.T) {
	db := setupTestDB(t)
	foundation := createFoundation(t, db, "builder", model.PayoutAccountStatusPending)

	payoutLogic := NewPayoutLogic(db, &fakeProcessor{})

	require.NoError(t, payoutLogic.UpdateAccountStatus(foundation.PayoutAccountID, "active"))

	var stored model.Foundation
	require.NoError(t, db.First(&stored, foundation.ID).Error)
	assert.Equal(t, string(model.PayoutAccountStatusActive), stored.PayoutAccountStatus)
}

func TestUpdateAccountStatusValidation(t *testing.T) {
	db := setupTestDB(t)
	payoutLogic := NewPayoutLogic(db, &fakeProcessor{})

	assert.Error(t, payoutLogic.UpdateAccountStatus("acct_x", "frozen"))
	assert.ErrorIs(t, payoutLogic.UpdateAccountStatus("acct_unknown", "active"), ErrPayoutAccountNotFound)
}

func TestSyncPendingAccounts(t *testing.T) {
	db := setupTestDB(t)
	foundation := createFoundation(t, db, "builder", model.PayoutAccountStatusPending)

	processor := &fakeProcessor{accountStatus: "active"}
	payoutLogic := NewPayoutLogic(db, processor)

	synced, err := payoutLogic.SyncPendingAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	var stored model.Foundation
	require.NoError(t, db.First(&stored, foundation.ID).Error)
	assert.Equal(t, string(model.PayoutAccountStatusActive), stored.PayoutAccountStatus)
}
