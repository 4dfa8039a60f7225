package routes

import (
	"fuelpass/internal/adapters/http/handlers"
	"fuelpass/internal/adapters/http/middleware"
	"fuelpass/internal/adapters/persistence/repositories"
	"fuelpass/internal/config"
	"fuelpass/internal/core/access"
	"fuelpass/internal/core/services"
	"fuelpass/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers and registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	// Services
	tokenService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer)
	identityResolver := services.NewIdentityResolver(tokenService, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	orderService := services.NewOrderService(orderRepo)
	userService := services.NewUserService(userRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService)
	userHandler := handlers.NewUserHandler(userService)

	authenticate := middleware.Authenticate(identityResolver)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authenticate, authHandler.Me)

	// Fuel order routes
	orders := api.Group("/orders", authenticate)
	orders.Post("/", middleware.Gate(access.OpOrderCreate), orderHandler.Create)
	orders.Get("/", middleware.Gate(access.OpOrderList), orderHandler.List)
	orders.Get("/my", middleware.Gate(access.OpMyOrders), orderHandler.MyOrders)
	orders.Get("/statistics", middleware.Gate(access.OpOrderStatistics), orderHandler.Statistics)
	orders.Get("/:id", middleware.Gate(access.OpOrderGet), orderHandler.GetByID)
	orders.Patch("/:id/status", middleware.Gate(access.OpOrderTransition), orderHandler.UpdateStatus)

	// User management routes (manager only)
	users := api.Group("/users", authenticate, middleware.Gate(access.OpUserManage))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id/activate", userHandler.Activate)
	users.Patch("/:id/deactivate", userHandler.Deactivate)
}
