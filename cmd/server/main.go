package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"

	httpapi "ecoshare-backend/internal/api/http"
	"ecoshare-backend/internal/config"
	"ecoshare-backend/internal/jobs"
	"ecoshare-backend/internal/logger"
	"ecoshare-backend/internal/payment"
	"ecoshare-backend/internal/repository/postgres"
	"ecoshare-backend/internal/scheduler"
	"ecoshare-backend/internal/security"
	"ecoshare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EcoShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Payment Verifier
	var verifier payment.Verifier
	switch cfg.Payment.Mode {
	case "", "mock":
		logger.Info("Using mock payment verification")
		verifier = payment.NewMockVerifier()
	default:
		logger.Error("Unsupported payment mode", "mode", cfg.Payment.Mode)
		log.Fatalf("Payment mode '%s' not yet implemented", cfg.Payment.Mode)
	}

	clock := clockwork.NewRealClock()

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.AdminEmail,
	)

	// Initialize Services
	donationSvc := service.NewDonationService(
		store.DonationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		clock,
		cfg.Rewards.PointsPerKg,
		cfg.Transport.RatePerKmCents,
	)
	rewardSvc := service.NewRewardService(
		store.VoucherRepository,
		store.SponsorRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		clock,
	)
	fundSvc := service.NewFundService(
		store.FundRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		verifier,
		clock,
	)
	ledgerSvc := service.NewLedgerService(store.UserRepository)
	bannerSvc := service.NewBannerService(store.SponsorRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Start the background sweeps alongside the API server
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg, clock)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	router := httpapi.NewRouter(&httpapi.Services{
		Donation:     donationSvc,
		Reward:       rewardSvc,
		Fund:         fundSvc,
		Ledger:       ledgerSvc,
		Banner:       bannerSvc,
		Notification: noteSvc,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
