package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"mailmate/internal/ai"
	"mailmate/internal/config"
	"mailmate/internal/gmail"
	"mailmate/internal/handler"
	"mailmate/internal/logger"
	"mailmate/internal/pipeline"
	"mailmate/internal/repository"
	"mailmate/internal/repository/memory"
	"mailmate/internal/repository/postgres"
	"mailmate/internal/router"
	"mailmate/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	// Initialize logger
	appLogger := logger.NewWithConfig(cfg.Env, cfg.LogFile)
	defer appLogger.Sync()

	// Initialize repositories (postgres when DATABASE_URL is set, in-memory
	// otherwise)
	var userRepo repository.UserRepository
	var emailRepo repository.EmailRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		userRepo = postgres.NewPostgresUserRepository(db)
		emailRepo = postgres.NewPostgresEmailRepository(db)

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		userRepo = memory.NewInMemoryUserRepository()
		emailRepo = memory.NewInMemoryEmailRepository()

		appLogger.Info("Using in-memory repositories")
	}

	// In-flight guard: Redis when available so multiple instances share it,
	// process-local otherwise
	var guard pipeline.Guard
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to parse REDIS_URL:", err)
		}
		guard = pipeline.NewRedisGuard(redis.NewClient(opts))
		appLogger.Info("Using Redis processing guard")
	} else {
		guard = pipeline.NewInMemoryGuard()
		appLogger.Info("Using in-memory processing guard")
	}

	// Initialize clients and the enrichment pipeline
	summarizer := ai.NewClient(cfg.AIProvider, cfg.AIKey, appLogger)
	gmailClient := gmail.NewClient(appLogger)
	processor := pipeline.NewProcessor(emailRepo, summarizer, guard, appLogger, cfg.EnrichConcurrency)

	// Initialize services
	authService := service.NewAuthService(userRepo, appLogger)
	emailService := service.NewEmailService(emailRepo, userRepo, gmailClient, processor, appLogger)
	dossierService := service.NewDossierService(emailRepo, userRepo, appLogger)

	// Initialize handlers
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	authHandler := handler.NewAuthHandler(authService, cfg, e.Logger)
	emailHandler := handler.NewEmailHandler(emailService, e.Logger)
	dossierHandler := handler.NewDossierHandler(dossierService, e.Logger)
	gmailHandler := handler.NewGmailHandler(emailService, e.Logger)

	// Setup routes - templates are served from the project root
	templatesPath := filepath.Join(getProjectRoot(), "internal", "templates")
	router.SetupRoutes(e, authHandler, emailHandler, dossierHandler, gmailHandler, templatesPath)

	// Start server
	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Server stopped:", err)
	}
}

// getProjectRoot returns the absolute path to the project root directory
func getProjectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	// Walk up until the templates directory is found
	current := wd
	for {
		if _, err := os.Stat(filepath.Join(current, "internal", "templates")); err == nil {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			return wd
		}
		current = parent
	}
}
