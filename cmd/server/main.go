package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "lendloop-backend/internal/api/http"
	"lendloop-backend/internal/config"
	"lendloop-backend/internal/logger"
	"lendloop-backend/internal/repository/postgres"
	"lendloop-backend/internal/security"
	"lendloop-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LendLoop Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.Repos, store, tokenManager, cfg.Credits.SignupGrant)
	querySvc := service.NewQueryService(store.Repos)
	itemSvc := service.NewItemService(store.Repos.Items, store.Repos.Users)
	userSvc := service.NewUserService(store.Repos.Users, querySvc)
	bookingSvc := service.NewBookingService(store.Repos, store, emailSvc)
	noteSvc := service.NewNotificationService(store.Repos.Notifications)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Item:         httpapi.NewItemHandler(itemSvc),
		Booking:      httpapi.NewBookingHandler(bookingSvc, querySvc),
		Profile:      httpapi.NewProfileHandler(userSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, authMiddleware)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
