package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/database"
	"github.com/example/dairydash/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultOrderPrice: 50,
		MilkBrands:        []string{"Premium", "Regular", "Toned", "Double-Toned", "Organic"},
		MilkmanIDAttempts: 5,
	}
}

func makeCustomer(t *testing.T, db *gorm.DB, phone, milkmanID, brand string, quantity float64) *models.User {
	t.Helper()

	email := phone + "@example.com"
	customer := &models.User{
		Name:         "Customer " + phone,
		Email:        &email,
		Phone:        &phone,
		Role:         models.RoleCustomer,
		Address:      "12 Dairy Lane",
		MilkmanID:    milkmanID,
		PrefBrand:    brand,
		PrefQuantity: quantity,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	return customer
}

func makeOrder(t *testing.T, db *gorm.DB, phone, date, brand string, quantity, price float64, notes string) {
	t.Helper()

	order := &models.Order{
		CustomerPhone: phone,
		DeliveryDate:  date,
		Brand:         brand,
		Quantity:      quantity,
		Notes:         notes,
		Price:         price,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
}
