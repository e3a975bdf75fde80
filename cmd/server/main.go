package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"koshub/internal/adapters/http/middleware"
	"koshub/internal/adapters/http/routes"
	"koshub/internal/adapters/persistence/models"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/config"
	"koshub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "koshub/docs" // Swagger docs
)

// @title KosHub API
// @version 1.0
// @description Boarding house (kos) rental marketplace API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@koshub.id

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.koshub.id
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Connect to redis (optional, listing cache)
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to redis: %v", err)
	}

	// Connect to cloudinary (optional, image storage)
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to cloudinary: %v", err)
	}

	// Start cron service for nightly token cleanup
	cronService := services.NewCronService(repositories.NewRefreshTokenRepository(db))
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "KosHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, redis, cloudinary and cfg for dependency injection)
	routes.Setup(app, db, rdb, cld, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
