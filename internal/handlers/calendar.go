package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/services"
)

// CalendarHandler serves the customer's monthly calendar view.
type CalendarHandler struct {
	db        *gorm.DB
	projector *services.CalendarProjector
}

// NewCalendarHandler constructs a CalendarHandler.
func NewCalendarHandler(db *gorm.DB, projector *services.CalendarProjector) *CalendarHandler {
	return &CalendarHandler{db: db, projector: projector}
}

// GetCalendar projects the requested month (defaults to the current one).
func (h *CalendarHandler) GetCalendar(c *fiber.Ctx) error {
	customer, err := currentCustomer(c, h.db)
	if err != nil {
		return err
	}

	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	page, err := h.projector.Project(*customer.Phone, year, month)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    page,
	})
}
