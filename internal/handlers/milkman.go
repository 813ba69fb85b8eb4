package handlers

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/services"
	"github.com/example/dairydash/internal/utils"
)

const maxQRSize = 5 << 20

var allowedQRExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".svg":  {},
}

// MilkmanHandler serves the milkman-side endpoints: daily roster, customer
// roster, delivery marking and QR upload.
type MilkmanHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	roster *services.RosterBuilder
	ledger *services.DeliveryLedger
}

// NewMilkmanHandler constructs a MilkmanHandler.
func NewMilkmanHandler(db *gorm.DB, cfg *config.Config, roster *services.RosterBuilder, ledger *services.DeliveryLedger) *MilkmanHandler {
	return &MilkmanHandler{db: db, cfg: cfg, roster: roster, ledger: ledger}
}

// GetProfile returns the authenticated milkman's record.
func (h *MilkmanHandler) GetProfile(c *fiber.Ctx) error {
	milkman, err := currentMilkman(c, h.db)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    milkman,
	})
}

// DailyRoster returns the delivery list for the requested date, defaulting
// to tomorrow.
func (h *MilkmanHandler) DailyRoster(c *fiber.Ctx) error {
	milkman, err := currentMilkman(c, h.db)
	if err != nil {
		return err
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().AddDate(0, 0, 1).Format(services.DateLayout)
	}

	entries, err := h.roster.DailyRoster(milkman.MilkmanID, date)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"date":    date,
			"entries": entries,
		},
	})
}

// Customers returns a page of the milkman's customer roster.
func (h *MilkmanHandler) Customers(c *fiber.Ctx) error {
	milkman, err := currentMilkman(c, h.db)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	customers, total, err := h.roster.Customers(milkman.MilkmanID, pg)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customers,
		"meta": fiber.Map{
			"page":  pg.Page,
			"limit": pg.Limit,
			"total": total,
		},
	})
}

type markDeliveredRequest struct {
	CustomerPhone string `json:"customer_phone"`
	DeliveryDate  string `json:"delivery_date"`
}

// MarkDelivered records a completed delivery. Marking the same
// (customer, date) twice is a no-op.
func (h *MilkmanHandler) MarkDelivered(c *fiber.Ctx) error {
	if _, err := currentMilkman(c, h.db); err != nil {
		return err
	}

	var req markDeliveredRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.ledger.MarkDelivered(req.CustomerPhone, req.DeliveryDate); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "marked as delivered",
	})
}

// UploadQR stores the milkman's payment QR image and persists its relative
// path. Only common image extensions are accepted.
func (h *MilkmanHandler) UploadQR(c *fiber.Ctx) error {
	milkman, err := currentMilkman(c, h.db)
	if err != nil {
		return err
	}

	file, err := c.FormFile("upi_qr")
	if err != nil {
		return apperrors.NewValidation("upi_qr file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedQRExtensions[ext]; !ok {
		return apperrors.NewValidation("invalid file type %q, expected an image", ext)
	}
	if file.Size > maxQRSize {
		return apperrors.NewValidation("file too large (max 5MB)")
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return apperrors.NewStorage("create upload dir", err)
	}

	filename := fmt.Sprintf("milkman_%s_qr%s", milkman.MilkmanID, ext)
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, filename)); err != nil {
		return apperrors.NewStorage("save qr image", err)
	}

	relative := path.Join("images", filename)
	err = h.db.Model(&models.Milkman{}).
		Where("milkman_id = ?", milkman.MilkmanID).
		Update("upi_qr", relative).Error
	if err != nil {
		return apperrors.NewStorage("update qr path", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"upi_qr": relative},
	})
}
