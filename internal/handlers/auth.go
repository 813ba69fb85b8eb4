package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/services"
	"github.com/example/dairydash/internal/utils"
)

// AuthHandler bundles dependencies for registration and login endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type registerAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FarmName string `json:"farm_name"`
}

// RegisterAdmin creates a farm-admin account.
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req registerAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.FarmName == "" {
		return apperrors.NewValidation("all fields are required")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	admin := models.User{
		Name:         req.Name,
		Email:        &req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		FarmName:     req.FarmName,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflict("email already registered")
		}
		return apperrors.NewStorage("create admin", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":        admin.ID,
			"name":      admin.Name,
			"email":     req.Email,
			"farm_name": admin.FarmName,
		},
	})
}

type registerMilkmanRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterMilkman creates a milkman account with a generated 6-digit ID and
// logs the milkman in.
func (h *AuthHandler) RegisterMilkman(c *fiber.Ctx) error {
	var req registerMilkmanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	milkman, err := registerMilkman(h.db, h.cfg, req.Name, req.Phone, req.Password)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, milkman.Phone, models.RoleMilkman, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         milkman.ID,
			"name":       milkman.Name,
			"phone":      milkman.Phone,
			"milkman_id": milkman.MilkmanID,
		},
		"token": token,
	})
}

// registerMilkman validates input, allocates a unique milkman ID and inserts
// the row. A duplicate milkman_id at insert time (concurrent registration)
// triggers a redraw; the attempt budget bounds the loop.
func registerMilkman(db *gorm.DB, cfg *config.Config, name, phone, password string) (*models.Milkman, error) {
	if name == "" || phone == "" || password == "" {
		return nil, apperrors.NewValidation("all fields are required")
	}

	var existing models.Milkman
	if err := db.Where("phone = ?", phone).First(&existing).Error; err == nil {
		return nil, apperrors.NewConflict("phone number already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewStorage("check milkman phone", err)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewStorage("hash password", err)
	}

	for attempt := 0; attempt < cfg.MilkmanIDAttempts; attempt++ {
		id, err := services.NewMilkmanID(db, cfg.MilkmanIDAttempts)
		if err != nil {
			return nil, err
		}

		milkman := models.Milkman{
			Name:         name,
			Phone:        phone,
			PasswordHash: passwordHash,
			MilkmanID:    id,
		}

		err = db.Create(&milkman).Error
		if err == nil {
			return &milkman, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, apperrors.NewStorage("create milkman", err)
	}

	return nil, apperrors.NewConflict("could not allocate a unique milkman id")
}

type registerCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Password  string `json:"password"`
	MilkmanID string `json:"milkman_id"`
}

// RegisterCustomer creates a customer account linked to an existing milkman
// and logs the customer in. New customers start with the default preference
// of one unit of the first configured brand.
func (h *AuthHandler) RegisterCustomer(c *fiber.Ctx) error {
	var req registerCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" ||
		req.Password == "" || req.MilkmanID == "" {
		return apperrors.NewValidation("all fields are required")
	}

	var milkman models.Milkman
	if err := h.db.Where("milkman_id = ?", req.MilkmanID).First(&milkman).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("milkman id %s does not exist", req.MilkmanID)
		}
		return apperrors.NewStorage("check milkman id", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	customer := models.User{
		Name:         req.Name,
		Email:        &req.Email,
		Phone:        &req.Phone,
		PasswordHash: passwordHash,
		Role:         models.RoleCustomer,
		Address:      req.Address,
		MilkmanID:    req.MilkmanID,
		PrefBrand:    h.cfg.DefaultBrand(),
		PrefQuantity: 1,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflict("phone or email already registered")
		}
		return apperrors.NewStorage("create customer", err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, req.Phone, models.RoleCustomer, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         customer.ID,
			"name":       customer.Name,
			"phone":      req.Phone,
			"milkman_id": customer.MilkmanID,
		},
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates an admin (or any user) by email.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return apperrors.NewStorage("find user", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	// Customers act under their phone; admins under their email.
	principal := req.Email
	if user.Role == models.RoleCustomer && user.Phone != nil {
		principal = *user.Phone
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, principal, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"name": user.Name,
			"role": user.Role,
		},
		"token": token,
	})
}

// LoginMilkman authenticates a milkman by phone.
func (h *AuthHandler) LoginMilkman(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var milkman models.Milkman
	if err := h.db.Where("phone = ?", req.Phone).First(&milkman).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return apperrors.NewStorage("find milkman", err)
	}

	if !utils.CheckPassword(milkman.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, milkman.Phone, models.RoleMilkman, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"name":       milkman.Name,
			"milkman_id": milkman.MilkmanID,
		},
		"token": token,
	})
}

// LoginCustomer authenticates a customer by phone.
func (h *AuthHandler) LoginCustomer(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var customer models.User
	err := h.db.Where("phone = ? AND role = ?", req.Phone, models.RoleCustomer).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return apperrors.NewStorage("find customer", err)
	}

	if !utils.CheckPassword(customer.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, req.Phone, models.RoleCustomer, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"name": customer.Name,
		},
		"token": token,
	})
}
