package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/cache"
	"boutique-backend/internal/config"
	"boutique-backend/internal/database"
	"boutique-backend/internal/db"
	"boutique-backend/internal/handlers"
	"boutique-backend/internal/health"
	h "boutique-backend/internal/http"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/services"
	"boutique-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (responses will not be cached)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize S3 uploader (optional - product photos degrade gracefully)
	uploader, err := storage.NewUploader(context.Background(), cfg)
	if err != nil {
		log.Printf("[S3] Image storage unavailable: %v (product photos disabled)", err)
		uploader = nil
	}

	// Initialize JWT manager and credential encryption
	jwtManager := auth.NewJWTManager(cfg)
	secretBox, err := auth.NewSecretBox(cfg.Security.EncryptionKey)
	if err != nil {
		log.Printf("[Security] Credential encryption unavailable: %v (payment links disabled)", err)
		secretBox = nil
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	systemRepo := repositories.NewSystemRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	processorRepo := repositories.NewProcessorRepository(pool)
	analyticsRepo := repositories.NewAnalyticsRepository(pool)

	// Initialize services
	authService := services.NewAuthService(userRepo, systemRepo)
	userService := services.NewUserService(userRepo, systemRepo)
	clientService := services.NewClientService(clientRepo)
	productService := services.NewProductService(productRepo, uploader)
	paymentService := services.NewPaymentService(paymentRepo, purchaseRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, clientRepo, productRepo, paymentService)
	processorService := services.NewProcessorService(processorRepo, secretBox)
	payLinkService := services.NewPayLinkService(purchaseRepo, clientRepo, processorService)
	analyticsService := services.NewAnalyticsService(analyticsRepo)
	reportService := services.NewReportService(analyticsService)

	// Start the overdue/delivery sweep scheduler
	scheduler := services.NewSchedulerService(purchaseRepo, cfg)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg, jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, jwtManager, authService)
	userHandler := handlers.NewUserHandler(cfg, userService)
	clientHandler := handlers.NewClientHandler(clientService)
	productHandler := handlers.NewProductHandler(productService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, payLinkService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, reportService)
	processorHandler := handlers.NewProcessorHandler(processorService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		clientHandler,
		productHandler,
		purchaseHandler,
		paymentHandler,
		analyticsHandler,
		processorHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
