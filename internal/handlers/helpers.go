package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/middleware"
	"github.com/example/dairydash/internal/models"
)

// currentCustomer loads the customer record for the authenticated principal
// (a phone number).
func currentCustomer(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	phone, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var customer models.User
	err := db.Where("phone = ? AND role = ?", phone, models.RoleCustomer).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unknown customer")
		}
		return nil, apperrors.NewStorage("load customer", err)
	}
	return &customer, nil
}

// currentMilkman loads the milkman record for the authenticated principal.
func currentMilkman(c *fiber.Ctx, db *gorm.DB) (*models.Milkman, error) {
	phone, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var milkman models.Milkman
	if err := db.Where("phone = ?", phone).First(&milkman).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unknown milkman")
		}
		return nil, apperrors.NewStorage("load milkman", err)
	}
	return &milkman, nil
}
