package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
)

func TestMarkDeliveredIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewDeliveryLedger(db)

	require.NoError(t, ledger.MarkDelivered("9000000010", "2024-03-10"))
	require.NoError(t, ledger.MarkDelivered("9000000010", "2024-03-10"))

	var count int64
	err := db.Model(&models.Delivery{}).
		Where("customer_phone = ? AND delivery_date = ?", "9000000010", "2024-03-10").
		Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	delivered, err := ledger.IsDelivered("9000000010", "2024-03-10")
	require.NoError(t, err)
	assert.True(t, delivered)
}

func TestMarkDeliveredRejectsMalformedKeys(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewDeliveryLedger(db)

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, ledger.MarkDelivered("", "2024-03-10"), &validationErr)
	assert.ErrorAs(t, ledger.MarkDelivered("9000000011", "10-03-2024"), &validationErr)
	assert.ErrorAs(t, ledger.MarkDelivered("9000000011", "not-a-date"), &validationErr)

	var count int64
	require.NoError(t, db.Model(&models.Delivery{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIsDeliveredFalseWithoutRecord(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewDeliveryLedger(db)

	delivered, err := ledger.IsDelivered("9000000012", "2024-03-10")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestDeliveredDatesInMonthFiltersByMonth(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewDeliveryLedger(db)

	require.NoError(t, ledger.MarkDelivered("9000000013", "2024-03-05"))
	require.NoError(t, ledger.MarkDelivered("9000000013", "2024-03-20"))
	require.NoError(t, ledger.MarkDelivered("9000000013", "2024-04-01"))
	require.NoError(t, ledger.MarkDelivered("9000000099", "2024-03-05"))

	dates, err := ledger.DeliveredDatesInMonth("9000000013", 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"2024-03-05": true,
		"2024-03-20": true,
	}, dates)
}

func TestDeliveredPhonesOnDate(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewDeliveryLedger(db)

	require.NoError(t, ledger.MarkDelivered("9000000014", "2024-03-10"))
	require.NoError(t, ledger.MarkDelivered("9000000015", "2024-03-10"))
	require.NoError(t, ledger.MarkDelivered("9000000016", "2024-03-11"))

	phones, err := ledger.DeliveredPhonesOn("2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"9000000014": true,
		"9000000015": true,
	}, phones)
}
