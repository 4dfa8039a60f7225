package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "fuelpass/docs"
	"fuelpass/internal/adapters/http/middleware"
	"fuelpass/internal/adapters/http/routes"
	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/adapters/persistence/repositories"
	"fuelpass/internal/config"
	"fuelpass/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title FuelPass API
// @version 1.0
// @description Fuel delivery order management for aircraft operators
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := config.CloseDatabase(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if cfg.IsDev() {
		if err := config.SeedDemoUsers(db); err != nil {
			log.Printf("failed to seed demo users: %v", err)
		}
	}

	cronService := services.NewCronService(repositories.NewOrderRepository(db))
	cronService.Start()
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "FuelPass API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg)

	go gracefulShutdown(app)

	log.Printf("server starting on port %s (%s mode)", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// gracefulShutdown waits for SIGINT/SIGTERM and drains in-flight requests
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
