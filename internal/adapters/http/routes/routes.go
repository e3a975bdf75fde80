package routes

import (
	"time"

	"koshub/internal/adapters/http/handlers"
	"koshub/internal/adapters/http/middleware"
	"koshub/internal/adapters/persistence/repositories"
	"koshub/internal/config"
	"koshub/internal/core/services"
	"koshub/internal/pkg/cache"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, rdb *redis.Client, cld *cloudinary.Cloudinary, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	kosRepo := repositories.NewKosRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cld)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, storageService, cfg)
	kosService := services.NewKosService(kosRepo, cache.New(rdb))
	bookingService := services.NewBookingService(bookingRepo, kosRepo)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, kosRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, kosRepo)
	ownerKosService := services.NewOwnerKosService(kosRepo, storageService)
	reportService := services.NewReportService(bookingRepo, kosRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	kosHandler := handlers.NewKosHandler(kosService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	ownerKosHandler := handlers.NewOwnerKosHandler(ownerKosService, kosService)
	ownerBookingHandler := handlers.NewOwnerBookingHandler(bookingService, reviewService, reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Public catalog routes
	kosRoutes := apiV1.Group("/kos")
	kosRoutes.Use(middleware.CacheControl(1 * time.Minute))
	kosRoutes.Get("/", kosHandler.List)
	kosRoutes.Get("/:id", kosHandler.Get)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Use(middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Society routes (authenticated tenants)
	societyRoutes := apiV1.Group("")
	societyRoutes.Use(middleware.NoCacheHeaders())
	societyRoutes.Use(middleware.AuthMiddleware(cfg))
	societyRoutes.Use(middleware.SocietyOnly())
	setupSocietyRoutes(societyRoutes, bookingHandler, reviewHandler, favoriteHandler)

	// Owner routes
	ownerRoutes := apiV1.Group("/owner")
	ownerRoutes.Use(middleware.NoCacheHeaders())
	ownerRoutes.Use(middleware.AuthMiddleware(cfg))
	ownerRoutes.Use(middleware.OwnerOnly())
	setupOwnerRoutes(ownerRoutes, ownerKosHandler, ownerBookingHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Put("/profile", middleware.AuthMiddleware(cfg), handler.UpdateProfile)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupSocietyRoutes configures booking, review and favorite routes for tenants
func setupSocietyRoutes(
	router fiber.Router,
	bookingHandler *handlers.BookingHandler,
	reviewHandler *handlers.ReviewHandler,
	favoriteHandler *handlers.FavoriteHandler,
) {
	// Bookings
	router.Post("/bookings", bookingHandler.Create)
	router.Get("/bookings", bookingHandler.List)
	router.Get("/bookings/:id", bookingHandler.Get)
	router.Get("/bookings/:id/receipt", bookingHandler.Receipt)

	// Reviews
	router.Post("/kos/:id/reviews", reviewHandler.Create)
	router.Put("/reviews/:id", reviewHandler.Update)
	router.Delete("/reviews/:id", reviewHandler.Delete)

	// Favorites
	router.Post("/favorites", favoriteHandler.Add)
	router.Get("/favorites", favoriteHandler.List)
	router.Delete("/favorites/:id", favoriteHandler.Remove)
}

// setupOwnerRoutes configures listing management and reporting routes for owners
func setupOwnerRoutes(
	router fiber.Router,
	kosHandler *handlers.OwnerKosHandler,
	bookingHandler *handlers.OwnerBookingHandler,
) {
	// Kos management
	router.Post("/kos", kosHandler.Create)
	router.Get("/kos", kosHandler.List)
	router.Get("/kos/:id", kosHandler.Get)
	router.Put("/kos/:id", kosHandler.Update)
	router.Delete("/kos/:id", kosHandler.Delete)

	// Rooms
	router.Post("/kos/:id/rooms", kosHandler.AddRooms)
	router.Put("/kos/:id/rooms/:roomId", kosHandler.UpdateRoom)
	router.Delete("/kos/:id/rooms/:roomId", kosHandler.DeleteRoom)

	// Facilities & payment methods
	router.Post("/kos/:id/facilities", kosHandler.AddFacilities)
	router.Post("/kos/:id/payment-methods", kosHandler.AddPaymentMethods)

	// Images
	router.Post("/kos/:id/images", kosHandler.UploadImages)
	router.Delete("/kos/:id/images/:imageId", kosHandler.DeleteImage)
	router.Put("/kos/:id/images/:imageId/primary", kosHandler.SetPrimaryImage)

	// Incoming bookings
	router.Get("/bookings", bookingHandler.List)
	router.Get("/bookings/:id", bookingHandler.Get)
	router.Put("/bookings/:id/status", bookingHandler.UpdateStatus)

	// Reviews
	router.Get("/reviews", bookingHandler.ListReviews)
	router.Post("/reviews/:id/reply", bookingHandler.ReplyReview)

	// Reporting
	router.Get("/statistics", kosHandler.Statistics)
	router.Get("/reports/bookings", bookingHandler.Report)
	router.Get("/reports/analytics", bookingHandler.Analytics)
}
