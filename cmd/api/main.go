package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/application/service"
	"github.com/instabill/instabill-api/internal/config"
	"github.com/instabill/instabill-api/internal/infrastructure/database"
	"github.com/instabill/instabill-api/internal/infrastructure/repository"
	"github.com/instabill/instabill-api/internal/presentation/http/handler"
	"github.com/instabill/instabill-api/internal/presentation/http/routes"
	"github.com/instabill/instabill-api/pkg/identify"
	"github.com/instabill/instabill-api/pkg/printer"
	"github.com/instabill/instabill-api/pkg/utils"
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

	// Seed the default catalog and store profile
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

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

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	receiptService := service.NewReceiptService(thermalPrinter, settingsRepo, cfg.Printer.Type, cfg.Printer.CharWidth)
	billingService := service.NewBillingService(
		productRepo,
		customerRepo,
		transactionRepo,
		sessionRepo,
		identify.NewDisabledIdentifier(),
		receiptService,
		cfg.Billing.ScanCooldown,
	)
	catalogService := service.NewCatalogService(productRepo)
	customerService := service.NewCustomerService(customerRepo, transactionRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(cfg.Admin.PasswordHash, jwtManager)

	// Resume any sale that was in progress before the last shutdown
	if err := billingService.RestoreSession(context.Background()); err != nil {
		log.Printf("Warning: Failed to restore session state: %v", err)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Billing:     handler.NewBillingHandler(billingService),
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(catalogService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Settings:    handler.NewSettingsHandler(settingsService, receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
