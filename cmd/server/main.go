package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/database"
	"invoice-dashboard-backend/internal/handler"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/server"
	"invoice-dashboard-backend/internal/service"
	"invoice-dashboard-backend/internal/session"
	"invoice-dashboard-backend/internal/telemetry"
	"invoice-dashboard-backend/internal/viewcache"
)

// @title Invoice Dashboard API
// @version 1.0
// @description Server-side form handling, authentication and read endpoints for the invoice management dashboard.
// @BasePath /
func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Connect to Postgres
	appLogger.Info("connecting to database")
	db, err := database.NewPostgresDB()
	if err != nil {
		appLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis for the view cache
	appLogger.Info("connecting to redis", zap.String("addr", cfg.RedisAddr))
	redisClient, err := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		appLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	metrics := telemetry.NewMetrics()
	viewCache := viewcache.NewCache(redisClient, appLogger, metrics)

	// Initialize repositories
	invoiceRepo := repository.NewPostgresInvoiceRepository(db.GetPool())
	customerRepo := repository.NewPostgresCustomerRepository(db.GetPool())
	userRepo := repository.NewPostgresUserRepository(db.GetPool())

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, viewCache, appLogger, metrics)
	customerService := service.NewCustomerService(customerRepo)
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   userRepo,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Metrics:    metrics,
	})

	sessions := session.NewManager(session.DefaultCookieName, cfg.SecureCookies)

	// Initialize handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	customerHandler := handler.NewCustomerHandler(customerService)
	dashboardHandler := handler.NewDashboardHandler(invoiceService)
	authHandler := handler.NewAuthHandler(authService, sessions)

	// Create and configure server
	appServer := server.NewServer(cfg, appLogger, metrics)

	authMiddleware := middleware.AuthMiddleware(authService, sessions)
	listingCache := viewcache.CacheView(viewCache, viewcache.InvoiceListingView, cfg.ListingCacheTTL)

	router := appServer.GetRouter()
	invoiceHandler.RegisterRoutes(router, authMiddleware, listingCache)
	customerHandler.RegisterRoutes(router, authMiddleware)
	dashboardHandler.RegisterRoutes(router, authMiddleware)
	authHandler.RegisterRoutes(router, authMiddleware)

	// Start server (blocking call)
	appLogger.Info("starting server", zap.Int("port", cfg.Port))
	if err := appServer.Start(); err != nil {
		appLogger.Fatal("server error", zap.Error(err))
	}

	fmt.Println("Server shutdown complete")
}
