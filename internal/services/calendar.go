package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
)

// Day-cell statuses.
const (
	StatusEmpty      = "empty"
	StatusNotOrdered = "not_ordered"
	StatusOrdered    = "ordered"
	StatusDelivered  = "delivered"
)

// OrderDetail is the explicit order shown on a calendar cell. Only override
// rows appear here; the default-preference fallback does not.
type OrderDetail struct {
	Brand    string  `json:"brand"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes"`
}

// DayCell is one calendar grid position. Day is 0 for padding cells.
type DayCell struct {
	Day    int          `json:"day"`
	Status string       `json:"status"`
	Order  *OrderDetail `json:"order,omitempty"`
}

// CalendarPage is a month grid plus navigation metadata.
type CalendarPage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	Cells     []DayCell `json:"cells"`
	PrevMonth int       `json:"prev_month"`
	PrevYear  int       `json:"prev_year"`
	NextMonth int       `json:"next_month"`
	NextYear  int       `json:"next_year"`
}

// CalendarProjector builds the customer's month view from order and delivery
// rows.
type CalendarProjector struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCalendarProjector constructs a CalendarProjector using the wall clock.
func NewCalendarProjector(db *gorm.DB) *CalendarProjector {
	return &CalendarProjector{db: db, now: time.Now}
}

// WithClock overrides the projector's notion of "now". Tests use this to pin
// the past-date policy.
func (p *CalendarProjector) WithClock(now func() time.Time) *CalendarProjector {
	p.now = now
	return p
}

// assumeDeliveredWhenPast reports whether an ordered date with no delivery
// record should display as delivered. Strictly-past order dates are assumed
// complete even though no record was made; this conflates missing data with
// completion and is kept in one place so it can be corrected without
// touching the rest of the projection.
func (p *CalendarProjector) assumeDeliveredWhenPast(date string) bool {
	return date < p.now().Format(DateLayout)
}

// Project returns the day-by-day grid for (customerPhone, year, month). The
// grid is left-padded so day 1 lands on its weekday (week starts Sunday) and
// right-padded to a multiple of 7.
func (p *CalendarProjector) Project(customerPhone string, year, month int) (*CalendarPage, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidation("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperrors.NewValidation("year must be positive")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	numDays := first.AddDate(0, 1, -1).Day()
	firstWeekday := int(first.Weekday()) // Sunday=0

	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	var deliveries []models.Delivery
	if err := p.db.Where("customer_phone = ? AND delivery_date LIKE ?", customerPhone, prefix+"%").
		Find(&deliveries).Error; err != nil {
		return nil, apperrors.NewStorage("list month deliveries", err)
	}

	var orders []models.Order
	if err := p.db.Where("customer_phone = ? AND delivery_date LIKE ?", customerPhone, prefix+"%").
		Find(&orders).Error; err != nil {
		return nil, apperrors.NewStorage("list month orders", err)
	}

	delivered := make(map[string]bool, len(deliveries))
	for _, d := range deliveries {
		delivered[d.DeliveryDate] = true
	}

	orderByDate := make(map[string]models.Order, len(orders))
	for _, o := range orders {
		orderByDate[o.DeliveryDate] = o
	}

	cells := make([]DayCell, 0, firstWeekday+numDays+6)
	for i := 0; i < firstWeekday; i++ {
		cells = append(cells, DayCell{Status: StatusEmpty})
	}

	for day := 1; day <= numDays; day++ {
		date := fmt.Sprintf("%s%02d", prefix, day)

		status := StatusNotOrdered
		order, hasOrder := orderByDate[date]
		switch {
		case delivered[date]:
			status = StatusDelivered
		case hasOrder && p.assumeDeliveredWhenPast(date):
			status = StatusDelivered
		case hasOrder:
			status = StatusOrdered
		}

		cell := DayCell{Day: day, Status: status}
		if hasOrder {
			cell.Order = &OrderDetail{
				Brand:    order.Brand,
				Quantity: order.Quantity,
				Notes:    order.Notes,
			}
		}
		cells = append(cells, cell)
	}

	for len(cells)%7 != 0 {
		cells = append(cells, DayCell{Status: StatusEmpty})
	}

	page := &CalendarPage{
		Year:      year,
		Month:     month,
		MonthName: first.Month().String(),
		Cells:     cells,
		PrevMonth: month - 1,
		PrevYear:  year,
		NextMonth: month + 1,
		NextYear:  year,
	}
	if month == 1 {
		page.PrevMonth = 12
		page.PrevYear = year - 1
	}
	if month == 12 {
		page.NextMonth = 1
		page.NextYear = year + 1
	}

	return page, nil
}
