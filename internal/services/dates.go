package services

import (
	"time"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
)

// DateLayout is the wire and storage format for delivery dates. The
// zero-padded form keeps string comparison equivalent to date comparison.
const DateLayout = "2006-01-02"

// ParseDeliveryDate validates a YYYY-MM-DD delivery date string.
func ParseDeliveryDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidation("invalid delivery date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func customerPhone(customer *models.User) string {
	if customer.Phone == nil {
		return ""
	}
	return *customer.Phone
}
