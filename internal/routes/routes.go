package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/handlers"
	"github.com/example/dairydash/internal/middleware"
	"github.com/example/dairydash/internal/models"
	"github.com/example/dairydash/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	resolver := services.NewPreferenceResolver(db, cfg)
	ledger := services.NewDeliveryLedger(db)
	projector := services.NewCalendarProjector(db)
	billing := services.NewBillingAggregator(db, cfg)
	roster := services.NewRosterBuilder(db, resolver, ledger)

	authHandler := handlers.NewAuthHandler(db, cfg)
	preferenceHandler := handlers.NewPreferenceHandler(db, cfg)
	calendarHandler := handlers.NewCalendarHandler(db, projector)
	paymentHandler := handlers.NewPaymentHandler(db, billing)
	profileHandler := handlers.NewProfileHandler(db)
	milkmanHandler := handlers.NewMilkmanHandler(db, cfg, roster, ledger)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.RegisterAdmin)
	auth.Post("/register-milkman", authHandler.RegisterMilkman)
	auth.Post("/register-customer", authHandler.RegisterCustomer)
	auth.Post("/login", authHandler.Login)
	auth.Post("/login-milkman", authHandler.LoginMilkman)
	auth.Post("/login-customer", authHandler.LoginCustomer)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	customer := protected.Group("", middleware.RequireRole(models.RoleCustomer))
	customer.Get("/profile", profileHandler.GetProfile)
	customer.Put("/profile", profileHandler.UpdateProfile)
	customer.Get("/preferences", preferenceHandler.GetPreferences)
	customer.Post("/preferences", preferenceHandler.UpdatePreference)
	customer.Delete("/orders/:date", preferenceHandler.CancelOrder)
	customer.Get("/calendar", calendarHandler.GetCalendar)
	customer.Get("/payment", paymentHandler.GetPayment)

	milkman := protected.Group("/milkman", middleware.RequireRole(models.RoleMilkman))
	milkman.Get("/profile", milkmanHandler.GetProfile)
	milkman.Get("/roster", milkmanHandler.DailyRoster)
	milkman.Get("/customers", milkmanHandler.Customers)
	milkman.Post("/deliveries", milkmanHandler.MarkDelivered)
	milkman.Post("/qr", milkmanHandler.UploadQR)

	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/profile", adminHandler.GetProfile)
	admin.Get("/milkmen", adminHandler.ListMilkmen)
	admin.Post("/milkmen", adminHandler.CreateMilkman)
}
