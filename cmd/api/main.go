package main

//go:generate swag init -g cmd/api/main.go

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/abagtas/listahan/docs"
	"github.com/abagtas/listahan/internal/audit"
	"github.com/abagtas/listahan/internal/config"
	"github.com/abagtas/listahan/internal/customer"
	"github.com/abagtas/listahan/internal/database"
	"github.com/abagtas/listahan/internal/ledger"
	"github.com/abagtas/listahan/internal/notification"
	"github.com/abagtas/listahan/internal/statement"
	"github.com/abagtas/listahan/pkg/keylock"
	mw "github.com/abagtas/listahan/pkg/middleware"
)

// @title           Listahan Ledger API
// @version         1.0
// @description     Categorized debt ledger and repayment allocation for small merchants.
// @host            localhost:8080
// @BasePath        /api/v1

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("Connected to database successfully")

	// One lock table serializes ledger mutations and audit corrections
	// per customer.
	locks := keylock.New()

	// Customer feature
	customerRepo := customer.NewRepository(db)
	customerService := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerService)

	// Notification feature
	mailer := notification.NewMailer(cfg, logger)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, mailer, logger)
	notificationHandler := notification.NewHandler(notificationService)

	// Ledger feature (debts, repayments, categories)
	ledgerRepo := ledger.NewRepository(db)
	ledgerService := ledger.NewService(ledgerRepo, customerRepo, notificationService, locks, logger)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Statement feature (live balances + as-of reconstruction)
	statementRepo := statement.NewRepository(db)
	statementService := statement.NewService(statementRepo)
	statementHandler := statement.NewHandler(statementService)

	// Audit feature (balance recalibration)
	auditRepo := audit.NewRepository(db)
	auditService := audit.NewService(auditRepo, locks, logger)
	auditHandler := audit.NewHandler(auditService)

	// Scheduled recalibration
	scheduler := cron.New()
	if cfg.RecalibrateSchedule != "" {
		_, err := scheduler.AddFunc(cfg.RecalibrateSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			if _, err := auditService.RecalibrateAll(ctx, nil); err != nil {
				logger.WithError(err).Error("scheduled recalibration failed")
			}
		})
		if err != nil {
			logger.Fatalf("Invalid recalibrate schedule %q: %v", cfg.RecalibrateSchedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if cfg.JWTSecret != "" {
		r.Use(mw.Auth(cfg.JWTSecret))
	} else {
		r.Use(mw.TestUserMiddleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/customers", customerHandler.Routes())
		r.Mount("/debts", ledgerHandler.DebtRoutes())
		r.Mount("/repayments", ledgerHandler.RepaymentRoutes())
		r.Mount("/categories", ledgerHandler.CategoryRoutes())
		r.Mount("/balances", statementHandler.Routes())
		r.Mount("/audit", auditHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Infof("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
