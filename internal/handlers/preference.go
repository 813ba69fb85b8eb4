package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/services"
)

// PreferenceHandler manages the customer's default preference and per-date
// override orders.
type PreferenceHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewPreferenceHandler constructs a PreferenceHandler.
func NewPreferenceHandler(db *gorm.DB, cfg *config.Config) *PreferenceHandler {
	return &PreferenceHandler{db: db, cfg: cfg}
}

// GetPreferences returns the customer's default preference, the brand list
// and every override order on file.
func (h *PreferenceHandler) GetPreferences(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	var orders []models.Order
	err = h.db.Where("customer_phone = ?", *customer.Phone).
		Order("delivery_date").
		Find(&orders).Error
	if err != nil {
		return apperrors.NewStorage("list orders", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"default_preference": fiber.Map{
				"brand":    customer.PrefBrand,
				"quantity": customer.PrefQuantity,
			},
			"brands": h.cfg.MilkBrands,
			"orders": orders,
		},
	})
}

type updatePreferenceRequest struct {
	Brand         string  `json:"brand"`
	Quantity      float64 `json:"quantity"`
	Date          string  `json:"date"`
	Notes         string  `json:"notes"`
	Price         float64 `json:"price"`
	UpdateDefault bool    `json:"update_default"`
}

// UpdatePreference upserts the override order for (customer, date) and
// optionally rewrites the default preference. The order write is one
// ON CONFLICT statement: last write wins, no duplicate rows under
// concurrent submissions.
func (h *PreferenceHandler) UpdatePreference(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	var req updatePreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !h.cfg.IsValidBrand(req.Brand) {
		return apperrors.NewValidation("unknown brand %q", req.Brand)
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidation("quantity must be positive")
	}
	if req.Price < 0 {
		return apperrors.NewValidation("price must not be negative")
	}
	if _, err := services.ParseDeliveryDate(req.Date); err != nil {
		return err
	}

	price := req.Price
	if price == 0 {
		price = h.cfg.DefaultOrderPrice
	}

	if req.UpdateDefault {
		err := h.db.Model(&models.User{}).
			Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"pref_brand":    req.Brand,
				"pref_quantity": req.Quantity,
				"updated_at":    time.Now(),
			}).Error
		if err != nil {
			return apperrors.NewStorage("update default preference", err)
		}
	}

	order := models.Order{
		CustomerPhone: *customer.Phone,
		DeliveryDate:  req.Date,
		Brand:         req.Brand,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		Price:         price,
	}

	err = h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_phone"}, {Name: "delivery_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"brand", "quantity", "notes", "price", "updated_at"}),
	}).Create(&order).Error
	if err != nil {
		return apperrors.NewStorage("upsert order", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// CancelOrder removes the override order for a strictly future date.
func (h *PreferenceHandler) CancelOrder(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	date := c.Params("date")
	if _, err := services.ParseDeliveryDate(date); err != nil {
		return err
	}

	if date <= time.Now().Format(services.DateLayout) {
		return apperrors.NewValidation("cannot cancel orders for today or past dates")
	}

	result := h.db.Where("customer_phone = ? AND delivery_date = ?", *customer.Phone, date).
		Delete(&models.Order{})
	if result.Error != nil {
		return apperrors.NewStorage("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("no order for %s", date)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "order cancelled",
	})
}
