package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecoenergi/meu-contrato-solar/config"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/controller"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/service"
	"github.com/ecoenergi/meu-contrato-solar/internal/db"
	"github.com/ecoenergi/meu-contrato-solar/internal/document"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/ecoenergi/meu-contrato-solar/internal/router"
	"github.com/ecoenergi/meu-contrato-solar/internal/scheduler"
	"github.com/ecoenergi/meu-contrato-solar/internal/storage"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"github.com/ecoenergi/meu-contrato-solar/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Meu Contrato Solar Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Wizard sessions live in Redis when available; without it they fall
	// back to process memory and do not survive a restart.
	var progressStore service.ProgressStore
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, using in-memory progress store", map[string]interface{}{
			"error": err.Error(),
		})
		progressStore = service.NewMemoryProgressStore()
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		progressStore = service.NewRedisProgressStore(redis.GetClient(), cfg.Redis.ProgressTTL)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	locationRepo := repository.NewLocationRepository(db.GetDB())
	technicalRepo := repository.NewTechnicalRepository(db.GetDB())
	financialRepo := repository.NewFinancialRepository(db.GetDB())
	poaRepo := repository.NewPowerOfAttorneyRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	wizardService := service.NewWizardService(
		customerRepo,
		locationRepo,
		technicalRepo,
		financialRepo,
		progressStore,
	)
	customerService := service.NewCustomerService(customerRepo)
	poaService := service.NewPowerOfAttorneyService(poaRepo, customerRepo)

	company := document.CompanyInfo{
		Name:           cfg.Company.Name,
		TaxID:          cfg.Company.TaxID,
		Address:        cfg.Company.Address,
		Representative: cfg.Company.Representative,
		RepTaxID:       cfg.Company.RepTaxID,
	}

	var archive storage.DocumentArchive
	if cfg.S3.Enabled {
		archive = storage.NewS3Archive(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		)
		logger.Info("Document archival enabled", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
		})
	}
	documentService := service.NewDocumentService(customerRepo, poaRepo, company, archive)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	wizardController := controller.NewWizardController(wizardService)
	customerController := controller.NewCustomerController(customerService)
	poaController := controller.NewPowerOfAttorneyController(poaService)
	documentController := controller.NewDocumentController(documentService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		wizardController,
		customerController,
		poaController,
		documentController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start retention purge scheduler
	retentionScheduler := scheduler.NewRetentionScheduler(
		customerRepo,
		cfg.Retention.PurgeSchedule,
		cfg.Retention.PurgeAfter,
	)
	if err := retentionScheduler.Start(); err != nil {
		logger.Fatal("Failed to start retention scheduler", err)
	}
	defer retentionScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
