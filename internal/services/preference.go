package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/models"
)

// EffectiveOrder is the resolved {brand, quantity, notes, price} for one
// customer and date after applying override/default precedence.
type EffectiveOrder struct {
	Brand    string  `json:"brand"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes"`
	Price    float64 `json:"price"`
}

// PreferenceResolver decides what a customer effectively ordered for a date:
// the explicit per-date order row wins, otherwise the customer's standing
// default preference at the flat default price.
type PreferenceResolver struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewPreferenceResolver constructs a PreferenceResolver.
func NewPreferenceResolver(db *gorm.DB, cfg *config.Config) *PreferenceResolver {
	return &PreferenceResolver{db: db, cfg: cfg}
}

// Resolve returns the effective order for customer on the given date.
// Read-only; never fails for a customer with a well-formed default
// preference.
func (r *PreferenceResolver) Resolve(customer *models.User, date string) (EffectiveOrder, error) {
	var order models.Order
	err := r.db.Where("customer_phone = ? AND delivery_date = ?", customerPhone(customer), date).
		First(&order).Error

	switch {
	case err == nil:
		price := order.Price
		if price == 0 {
			price = r.cfg.DefaultOrderPrice
		}
		return EffectiveOrder{
			Brand:    order.Brand,
			Quantity: order.Quantity,
			Notes:    order.Notes,
			Price:    price,
		}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return EffectiveOrder{
			Brand:    customer.PrefBrand,
			Quantity: customer.PrefQuantity,
			Notes:    "",
			Price:    r.cfg.DefaultOrderPrice,
		}, nil
	default:
		return EffectiveOrder{}, apperrors.NewStorage("resolve order", err)
	}
}
