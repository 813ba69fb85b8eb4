package services

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"gorm.io/gorm"

	"github.com/example/dairydash/internal/apperrors"
	"github.com/example/dairydash/internal/models"
)

// Milkman identifiers are drawn uniformly from [100000, 999999].
const (
	milkmanIDMin  = 100000
	milkmanIDSpan = 900000
)

// NewMilkmanID draws a random 6-digit identifier not currently assigned to
// any milkman. The draw is retried up to attempts times; exhaustion yields
// a ConflictError. Callers still insert under the unique constraint, so a
// concurrent registration racing past this check fails at insert time and
// can redraw.
func NewMilkmanID(db *gorm.DB, attempts int) (string, error) {
	for i := 0; i < attempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(milkmanIDSpan))
		if err != nil {
			return "", apperrors.NewStorage("draw milkman id", err)
		}
		id := strconv.FormatInt(milkmanIDMin+n.Int64(), 10)

		var count int64
		if err := db.Model(&models.Milkman{}).Where("milkman_id = ?", id).Count(&count).Error; err != nil {
			return "", apperrors.NewStorage("check milkman id", err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", apperrors.NewConflict("could not allocate a unique milkman id")
}
