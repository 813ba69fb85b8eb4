package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/services"
)

// PaymentHandler serves the customer's amount due and the milkman's payment
// QR reference. No payment is processed here; the page is informational.
type PaymentHandler struct {
	db      *gorm.DB
	billing *services.BillingAggregator
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(db *gorm.DB, billing *services.BillingAggregator) *PaymentHandler {
	return &PaymentHandler{db: db, billing: billing}
}

// GetPayment returns the gross amount due plus the linked milkman's QR path.
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	amountDue, err := h.billing.AmountDue(customer)
	if err != nil {
		return err
	}

	upiQR := ""
	milkmanName := ""
	var milkman models.Milkman
	err = h.db.Where("milkman_id = ?", customer.MilkmanID).First(&milkman).Error
	switch {
	case err == nil:
		upiQR = milkman.UPIQR
		milkmanName = milkman.Name
	case errors.Is(err, gorm.ErrRecordNotFound):
		// stale or unset milkman link; amount due still renders
	default:
		return apperrors.NewStorage("load milkman", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"amount_due":   amountDue,
			"upi_qr":       upiQR,
			"milkman_name": milkmanName,
		},
	})
}
