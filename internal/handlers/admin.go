package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/middleware"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/utils"
)

// AdminHandler serves farm-admin endpoints.
type AdminHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// GetProfile returns the authenticated admin's account.
func (h *AdminHandler) GetProfile(c *fiber.Ctx) error {
	email, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var admin models.User
	err := h.db.Where("email = ? AND role = ?", email, models.RoleAdmin).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "unknown admin")
		}
		return apperrors.NewStorage("load admin", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"name":      admin.Name,
			"email":     admin.Email,
			"farm_name": admin.FarmName,
		},
	})
}

// ListMilkmen returns a page of registered milkmen.
func (h *AdminHandler) ListMilkmen(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Milkman{}).Count(&total).Error; err != nil {
		return apperrors.NewStorage("count milkmen", err)
	}

	var milkmen []models.Milkman
	err := h.db.Order("created_at").Offset(pg.Offset).Limit(pg.Limit).Find(&milkmen).Error
	if err != nil {
		return apperrors.NewStorage("list milkmen", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    milkmen,
		"meta": fiber.Map{
			"page":  pg.Page,
			"limit": pg.Limit,
			"total": total,
		},
	})
}

type createMilkmanRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// CreateMilkman registers a milkman on the admin's behalf.
func (h *AdminHandler) CreateMilkman(c *fiber.Ctx) error {
	var req createMilkmanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	milkman, err := registerMilkman(h.db, h.cfg, req.Name, req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    milkman,
	})
}
