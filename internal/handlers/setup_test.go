package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/database"
	"github.com/example/dairydash/internal/middleware"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/routes"
	"github.com/example/dairydash/internal/utils"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
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

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		TokenExpires:      time.Hour,
		UploadDir:         t.TempDir(),
		DefaultOrderPrice: 50,
		MilkBrands:        []string{"Premium", "Regular", "Toned", "Double-Toned", "Organic"},
		MilkmanIDAttempts: 5,
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	routes.Register(app, db, cfg)

	return app, db, cfg
}

func seedMilkman(t *testing.T, db *gorm.DB, phone, milkmanID string) *models.Milkman {
	t.Helper()

	milkman := &models.Milkman{
		Name:      "Milkman " + milkmanID,
		Phone:     phone,
		MilkmanID: milkmanID,
	}
	if err := db.Create(milkman).Error; err != nil {
		t.Fatalf("failed to seed milkman: %v", err)
	}
	return milkman
}

func seedCustomer(t *testing.T, db *gorm.DB, phone, milkmanID string) *models.User {
	t.Helper()

	email := phone + "@example.com"
	customer := &models.User{
		Name:         "Customer " + phone,
		Email:        &email,
		Phone:        &phone,
		Role:         models.RoleCustomer,
		Address:      "12 Dairy Lane",
		MilkmanID:    milkmanID,
		PrefBrand:    "Regular",
		PrefQuantity: 1,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

func tokenFor(t *testing.T, cfg *config.Config, principal, role string) string {
	t.Helper()

	token, err := utils.GenerateToken(cfg.JWTSecret, principal, role, cfg.TokenExpires)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return payload
}
