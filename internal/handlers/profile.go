package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
)

// ProfileHandler manages customer profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated customer's profile with the linked
// milkman's name.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	milkmanName := "Unknown"
	var milkman models.Milkman
	if err := h.db.Where("milkman_id = ?", customer.MilkmanID).First(&milkman).Error; err == nil {
		milkmanName = milkman.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewStorage("load milkman", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"name":          customer.Name,
			"email":         customer.Email,
			"phone":         customer.Phone,
			"address":       customer.Address,
			"milkman_id":    customer.MilkmanID,
			"milkman_name":  milkmanName,
			"pref_brand":    customer.PrefBrand,
			"pref_quantity": customer.PrefQuantity,
			"created_at":    customer.CreatedAt,
			"updated_at":    customer.UpdatedAt,
		},
	})
}

type updateProfileRequest struct {
	Address   string `json:"address"`
	MilkmanID string `json:"milkman_id"`
}

// UpdateProfile changes the customer's address and milkman link. The new
// milkman ID must exist.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Address == "" || req.MilkmanID == "" {
		return apperrors.NewValidation("address and milkman_id are required")
	}

	var milkman models.Milkman
	if err := h.db.Where("milkman_id = ?", req.MilkmanID).First(&milkman).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("milkman id %s does not exist", req.MilkmanID)
		}
		return apperrors.NewStorage("check milkman id", err)
	}

	err = h.db.Model(&models.User{}).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"address":    req.Address,
			"milkman_id": req.MilkmanID,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return apperrors.NewStorage("update profile", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}
