package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dairydash/internal/models"
)

func TestNewMilkmanIDIsSixDigits(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 20; i++ {
		id, err := NewMilkmanID(db, 5)
		require.NoError(t, err)
		require.Len(t, id, 6)

		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestNewMilkmanIDSkipsExistingIDs(t *testing.T) {
	db := setupTestDB(t)

	existing := models.Milkman{
		Name:      "Taken",
		Phone:     "8000000001",
		MilkmanID: "123456",
	}
	require.NoError(t, db.Create(&existing).Error)

	seen := map[string]bool{"123456": true}
	for i := 0; i < 10; i++ {
		id, err := NewMilkmanID(db, 5)
		require.NoError(t, err)
		assert.NotEqual(t, "123456", id)
		seen[id] = true
	}
}

func TestNewMilkmanIDDistinctAcrossRegistrations(t *testing.T) {
	db := setupTestDB(t)

	ids := map[string]bool{}
	for i := 0; i < 5; i++ {
		id, err := NewMilkmanID(db, 5)
		require.NoError(t, err)
		assert.False(t, ids[id], "duplicate id %s", id)
		ids[id] = true

		milkman := models.Milkman{
			Name:      "M" + id,
			Phone:     "80000000" + strconv.Itoa(i),
			MilkmanID: id,
		}
		require.NoError(t, db.Create(&milkman).Error)
	}
}
