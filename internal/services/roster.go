package services

import (
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/utils"
)

// RosterEntry is one line of a milkman's daily delivery list: the customer,
// their effective order for the date and whether it was already delivered.
type RosterEntry struct {
	CustomerName string  `json:"customer_name"`
	Address      string  `json:"address"`
	Brand        string  `json:"brand"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes"`
	Phone        string  `json:"phone"`
	Delivered    bool    `json:"delivered"`
}

// CustomerSummary is a roster line independent of any date.
type CustomerSummary struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// RosterBuilder produces a milkman's delivery and customer lists.
type RosterBuilder struct {
	db       *gorm.DB
	resolver *PreferenceResolver
	ledger   *DeliveryLedger
}

// NewRosterBuilder constructs a RosterBuilder.
func NewRosterBuilder(db *gorm.DB, resolver *PreferenceResolver, ledger *DeliveryLedger) *RosterBuilder {
	return &RosterBuilder{db: db, resolver: resolver, ledger: ledger}
}

// DailyRoster lists, for every customer linked to milkmanID, the effective
// order for date plus the delivered flag. Entries come back in customer
// insertion order.
func (r *RosterBuilder) DailyRoster(milkmanID, date string) ([]RosterEntry, error) {
	if _, err := ParseDeliveryDate(date); err != nil {
		return nil, err
	}

	customers, err := r.linkedCustomers(milkmanID)
	if err != nil {
		return nil, err
	}

	delivered, err := r.ledger.DeliveredPhonesOn(date)
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(customers))
	for i := range customers {
		customer := &customers[i]
		effective, err := r.resolver.Resolve(customer, date)
		if err != nil {
			return nil, err
		}

		phone := customerPhone(customer)
		entries = append(entries, RosterEntry{
			CustomerName: customer.Name,
			Address:      customer.Address,
			Brand:        effective.Brand,
			Quantity:     effective.Quantity,
			Notes:        effective.Notes,
			Phone:        phone,
			Delivered:    delivered[phone],
		})
	}

	return entries, nil
}

// Customers returns a page of the milkman's customer roster plus the total
// linked-customer count.
func (r *RosterBuilder) Customers(milkmanID string, pg utils.Pagination) ([]CustomerSummary, int64, error) {
	var total int64
	err := r.db.Model(&models.User{}).
		Where("milkman_id = ? AND role = ?", milkmanID, models.RoleCustomer).
		Count(&total).Error
	if err != nil {
		return nil, 0, apperrors.NewStorage("count customers", err)
	}

	var customers []models.User
	err = r.db.Where("milkman_id = ? AND role = ?", milkmanID, models.RoleCustomer).
		Order("created_at").Offset(pg.Offset).Limit(pg.Limit).Find(&customers).Error
	if err != nil {
		return nil, 0, apperrors.NewStorage("list customers", err)
	}

	summaries := make([]CustomerSummary, 0, len(customers))
	for i := range customers {
		customer := &customers[i]
		email := ""
		if customer.Email != nil {
			email = *customer.Email
		}
		summaries = append(summaries, CustomerSummary{
			Name:    customer.Name,
			Phone:   customerPhone(customer),
			Address: customer.Address,
			Email:   email,
		})
	}

	return summaries, total, nil
}

func (r *RosterBuilder) linkedCustomers(milkmanID string) ([]models.User, error) {
	var customers []models.User
	err := r.db.Where("milkman_id = ? AND role = ?", milkmanID, models.RoleCustomer).
		Order("created_at").
		Find(&customers).Error
	if err != nil {
		return nil, apperrors.NewStorage("list linked customers", err)
	}
	return customers, nil
}
