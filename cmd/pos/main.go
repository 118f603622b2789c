package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	"github.com/kirekcahs/codebrew-pos/internal/infrastructure/database"
	infraRepo "github.com/kirekcahs/codebrew-pos/internal/infrastructure/repository"
	"github.com/kirekcahs/codebrew-pos/internal/infrastructure/upstream"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/handler"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/routes"
	"github.com/kirekcahs/codebrew-pos/pkg/printer"
	"github.com/kirekcahs/codebrew-pos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Optional receipt journal. The terminal works without a database;
	// the journal only adds durable sale records for reconciliation.
	var journalRepo repository.ReceiptJournalRepository
	if cfg.Journal.Enabled {
		db, err := database.NewPostgresDB(&cfg.Journal.Database)
		if err != nil {
			log.Fatalf("Failed to connect to journal database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run journal migrations: %v", err)
		}
		journalRepo = infraRepo.NewReceiptJournalRepository(db)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.Session.Secret, cfg.Session.Expiry)

	// Upstream gateway and session registry
	gateway := upstream.NewClient(&cfg.Upstream)
	sessions := service.NewSessionRegistry()

	// Idempotency cache for checkout retries
	idempotencyStore := infraRepo.NewMemoryIdempotencyStore(24 * time.Hour)

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
	authService := service.NewAuthService(gateway, sessions, jwtManager, cfg.POS)
	catalogService := service.NewCatalogService(gateway)
	cartService := service.NewCartService(catalogService)
	checkoutService := service.NewCheckoutService(gateway, journalRepo)
	receiptService := service.NewReceiptService(thermalPrinter, cfg.Printer, cfg.POS.StoreName)
	journalService := service.NewJournalService(journalRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Journal:  handler.NewJournalHandler(journalService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:       jwtManager,
		Cfg:              cfg,
		Sessions:         sessions,
		IdempotencyStore: idempotencyStore,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8081"
	}

	log.Printf("Starting %s terminal on port %s...", cfg.App.Name, port)
	log.Printf("Upstream API: %s", cfg.Upstream.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
