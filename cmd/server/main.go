package main

import (
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/dairydash/internal/config"
	"github.com/example/dairydash/internal/database"
	"github.com/example/dairydash/internal/middleware"
	"github.com/example/dairydash/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "DairyDash Backend",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// Uploaded QR images live under <UploadDir> and are served as
	// /static/images/... so the persisted relative paths resolve.
	app.Static("/static", filepath.Dir(cfg.UploadDir))

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
