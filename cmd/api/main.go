package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanhaiyya/billing-api/internal/application/service"
	"github.com/kanhaiyya/billing-api/internal/config"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/archive"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/database"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/repository"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/handler"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/routes"
	"github.com/kanhaiyya/billing-api/pkg/oauth"
	"github.com/kanhaiyya/billing-api/pkg/printer"
	"github.com/kanhaiyya/billing-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the admin account when configured
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize services
	receiptArchive := archive.NewReceiptArchive(cfg.Storage.Path)
	cartService := service.NewCartService()
	billingService := service.NewBillingService(itemRepo, billRepo, cartService, receiptArchive, cfg.Store, nil)
	itemService := service.NewItemService(itemRepo)
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	dashboardService := service.NewDashboardService(billRepo, nil)

	// Initialize thermal printer
	thermalPrinter, err := printer.FromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billingService, cfg.Store, cfg.Printer)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Item:      handler.NewItemHandler(itemService),
		Cart:      handler.NewCartHandler(cartService, billingService),
		Bill:      handler.NewBillHandler(billingService, printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Purge expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to purge expired idempotency keys: %v", err)
			}
		}
	}()

	// Setup router and start the server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
