package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dairydash/internal/apperrors"
)

func fixedClock(value string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse(DateLayout, value)
		return t
	}
}

func TestProjectGridPadding(t *testing.T) {
	db := setupTestDB(t)
	projector := NewCalendarProjector(db).WithClock(fixedClock("2024-03-11"))

	// March 2024 starts on a Friday (weekday index 5) and has 31 days.
	page, err := projector.Project("9000000020", 2024, 3)
	require.NoError(t, err)

	assert.Zero(t, len(page.Cells)%7)
	assert.Equal(t, 42, len(page.Cells))
	for i := 0; i < 5; i++ {
		assert.Equal(t, StatusEmpty, page.Cells[i].Status)
	}
	assert.Equal(t, 1, page.Cells[5].Day)
	assert.Equal(t, 31, page.Cells[5+30].Day)
	assert.Equal(t, "March", page.MonthName)
}

func TestProjectStatusResolution(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewDeliveryLedger(db)
	projector := NewCalendarProjector(db).WithClock(fixedClock("2024-03-11"))

	phone := "9000000021"
	makeOrder(t, db, phone, "2024-03-10", "Organic", 2, 60, "past order")
	makeOrder(t, db, phone, "2024-03-11", "Regular", 1, 50, "today order")
	makeOrder(t, db, phone, "2024-03-12", "Organic", 2, 60, "no sugar note")
	require.NoError(t, ledger.MarkDelivered(phone, "2024-03-05"))

	page, err := projector.Project(phone, 2024, 3)
	require.NoError(t, err)

	cellFor := func(day int) DayCell {
		return page.Cells[5+day-1]
	}

	// Explicit delivery record wins even without an order.
	assert.Equal(t, StatusDelivered, cellFor(5).Status)
	assert.Nil(t, cellFor(5).Order)

	// Ordered and strictly past: assumed delivered.
	assert.Equal(t, StatusDelivered, cellFor(10).Status)
	require.NotNil(t, cellFor(10).Order)

	// Ordered today: still just ordered.
	assert.Equal(t, StatusOrdered, cellFor(11).Status)

	// Ordered in the future.
	assert.Equal(t, StatusOrdered, cellFor(12).Status)
	require.NotNil(t, cellFor(12).Order)
	assert.Equal(t, "Organic", cellFor(12).Order.Brand)
	assert.Equal(t, 2.0, cellFor(12).Order.Quantity)
	assert.Equal(t, "no sugar note", cellFor(12).Order.Notes)

	// No order, no record.
	assert.Equal(t, StatusNotOrdered, cellFor(7).Status)
	assert.Nil(t, cellFor(7).Order)
}

func TestProjectPastOrderShowsDeliveredAfterDatePasses(t *testing.T) {
	db := setupTestDB(t)
	phone := "9000000022"
	makeOrder(t, db, phone, "2024-03-12", "Organic", 2, 60, "")

	before := NewCalendarProjector(db).WithClock(fixedClock("2024-03-11"))
	page, err := before.Project(phone, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, StatusOrdered, page.Cells[5+11].Status)

	after := NewCalendarProjector(db).WithClock(fixedClock("2024-03-13"))
	page, err = after.Project(phone, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, page.Cells[5+11].Status)
}

func TestProjectNavigationRollover(t *testing.T) {
	db := setupTestDB(t)
	projector := NewCalendarProjector(db).WithClock(fixedClock("2024-06-15"))

	january, err := projector.Project("9000000023", 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, january.PrevMonth)
	assert.Equal(t, 2023, january.PrevYear)
	assert.Equal(t, 2, january.NextMonth)
	assert.Equal(t, 2024, january.NextYear)

	december, err := projector.Project("9000000023", 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, 11, december.PrevMonth)
	assert.Equal(t, 2024, december.PrevYear)
	assert.Equal(t, 1, december.NextMonth)
	assert.Equal(t, 2025, december.NextYear)
}

func TestProjectRejectsBadMonth(t *testing.T) {
	db := setupTestDB(t)
	projector := NewCalendarProjector(db)

	var validationErr *apperrors.ValidationError
	_, err := projector.Project("9000000024", 2024, 0)
	assert.ErrorAs(t, err, &validationErr)
	_, err = projector.Project("9000000024", 2024, 13)
	assert.ErrorAs(t, err, &validationErr)
}
