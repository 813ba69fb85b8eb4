package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
)

// DeliveryLedger records delivery completion events keyed by
// (customer phone, delivery date).
type DeliveryLedger struct {
	db *gorm.DB
}

// NewDeliveryLedger constructs a DeliveryLedger.
func NewDeliveryLedger(db *gorm.DB) *DeliveryLedger {
	return &DeliveryLedger{db: db}
}

// MarkDelivered upserts the delivery record for (customerPhone, date).
// Idempotent: marking an already delivered date re-asserts the same row.
// The write is a single ON CONFLICT statement so the uniqueness guarantee
// holds under concurrent marks.
func (l *DeliveryLedger) MarkDelivered(customerPhone, date string) error {
	if customerPhone == "" {
		return apperrors.NewValidation("customer phone is required")
	}
	if _, err := ParseDeliveryDate(date); err != nil {
		return err
	}

	delivery := models.Delivery{
		CustomerPhone: customerPhone,
		DeliveryDate:  date,
		Status:        models.DeliveryStatusDelivered,
	}

	err := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_phone"}, {Name: "delivery_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&delivery).Error
	if err != nil {
		return apperrors.NewStorage("mark delivered", err)
	}
	return nil
}

// IsDelivered reports whether (customerPhone, date) has a delivered record.
func (l *DeliveryLedger) IsDelivered(customerPhone, date string) (bool, error) {
	var delivery models.Delivery
	err := l.db.Where("customer_phone = ? AND delivery_date = ? AND status = ?",
		customerPhone, date, models.DeliveryStatusDelivered).
		First(&delivery).Error

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, apperrors.NewStorage("check delivery", err)
	}
}

// DeliveredDatesInMonth returns the set of delivered dates for the customer
// within the given month.
func (l *DeliveryLedger) DeliveredDatesInMonth(customerPhone string, year, month int) (map[string]bool, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	var deliveries []models.Delivery
	err := l.db.Where("customer_phone = ? AND delivery_date LIKE ? AND status = ?",
		customerPhone, prefix+"%", models.DeliveryStatusDelivered).
		Find(&deliveries).Error
	if err != nil {
		return nil, apperrors.NewStorage("list month deliveries", err)
	}

	dates := make(map[string]bool, len(deliveries))
	for _, d := range deliveries {
		dates[d.DeliveryDate] = true
	}
	return dates, nil
}

// DeliveredPhonesOn returns the set of customer phones with a delivered
// record on the given date. Used to flag roster entries.
func (l *DeliveryLedger) DeliveredPhonesOn(date string) (map[string]bool, error) {
	var deliveries []models.Delivery
	err := l.db.Where("delivery_date = ? AND status = ?", date, models.DeliveryStatusDelivered).
		Find(&deliveries).Error
	if err != nil {
		return nil, apperrors.NewStorage("list date deliveries", err)
	}

	phones := make(map[string]bool, len(deliveries))
	for _, d := range deliveries {
		phones[d.CustomerPhone] = true
	}
	return phones, nil
}
