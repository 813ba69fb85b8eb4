package services

import (
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/models"
)

// BillingAggregator computes the gross amount a customer owes across all
// delivered dates. There is no payments ledger; the total is not a running
// balance.
type BillingAggregator struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewBillingAggregator constructs a BillingAggregator.
func NewBillingAggregator(db *gorm.DB, cfg *config.Config) *BillingAggregator {
	return &BillingAggregator{db: db, cfg: cfg}
}

// AmountDue sums, over every delivered date, the order's quantity times its
// price. A missing order row falls back to the customer's default
// preference quantity at the flat default price; a stored zero price is
// billed at the flat default.
func (b *BillingAggregator) AmountDue(customer *models.User) (float64, error) {
	phone := customerPhone(customer)

	var deliveries []models.Delivery
	err := b.db.Where("customer_phone = ? AND status = ?", phone, models.DeliveryStatusDelivered).
		Find(&deliveries).Error
	if err != nil {
		return 0, apperrors.NewStorage("list deliveries", err)
	}

	var orders []models.Order
	if err := b.db.Where("customer_phone = ?", phone).Find(&orders).Error; err != nil {
		return 0, apperrors.NewStorage("list orders", err)
	}

	orderByDate := make(map[string]models.Order, len(orders))
	for _, o := range orders {
		orderByDate[o.DeliveryDate] = o
	}

	var total float64
	for _, d := range deliveries {
		if order, ok := orderByDate[d.DeliveryDate]; ok {
			price := order.Price
			if price == 0 {
				price = b.cfg.DefaultOrderPrice
			}
			total += order.Quantity * price
		} else {
			total += customer.PrefQuantity * b.cfg.DefaultOrderPrice
		}
	}

	return total, nil
}
