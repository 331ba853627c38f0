package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tresmastres/or-hayeladim/internal"
	"github.com/tresmastres/or-hayeladim/internal/auth"
	"github.com/tresmastres/or-hayeladim/internal/billing"
	"github.com/tresmastres/or-hayeladim/internal/bootstrap"
	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/email"
	"github.com/tresmastres/or-hayeladim/internal/handler"
	"github.com/tresmastres/or-hayeladim/internal/handler/webhook"
	"github.com/tresmastres/or-hayeladim/internal/middleware"
	"github.com/tresmastres/or-hayeladim/internal/notify"
	"github.com/tresmastres/or-hayeladim/internal/pdf"
	"github.com/tresmastres/or-hayeladim/internal/postgres"
	"github.com/tresmastres/or-hayeladim/internal/router"
	"github.com/tresmastres/or-hayeladim/internal/routes"
	"github.com/tresmastres/or-hayeladim/internal/service"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool, logger)

	// Metrics
	httpMetrics := middleware.NewMetrics("orhayeladim")
	businessMetrics := telemetry.NewBusinessMetrics("orhayeladim")

	// Initial admin account
	if err := bootstrap.EnsureAdmin(ctx, store, cfg.Admin.Email, cfg.Admin.Password, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// Billing provider. Online payments are optional: without credentials the
	// rest of the API works and the pay endpoint reports not configured.
	var billingProvider billing.Provider
	stripeProvider, err := billing.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	switch {
	case err == nil:
		billingProvider = stripeProvider
		logger.Info("Stripe billing provider initialized")
	case errors.Is(err, billing.ErrNotConfigured):
		logger.Warn("Stripe not configured, online payments disabled")
	default:
		return fmt.Errorf("failed to initialize Stripe provider: %w", err)
	}

	// Email and invoice documents
	sender := email.NewSMTPSender(&email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	}, logger)
	generator := pdf.NewGenerator(pdf.Issuer{
		Name:    cfg.Invoice.IssuerName,
		TaxID:   cfg.Invoice.IssuerTaxID,
		Address: cfg.Invoice.IssuerAddress,
	})
	notifier := notify.NewNotifier(generator, sender, businessMetrics, logger)

	// Services
	tokens := auth.NewTokenService(cfg.JWTSecret, auth.DefaultTokenTTL)
	userService := service.NewUserService(store, tokens, businessMetrics, logger)
	directoryService := service.NewDirectoryService(store, logger)
	paymentService := service.NewPaymentService(store, notifier, businessMetrics, logger)
	invoiceService := service.NewInvoiceService(store, domain.YearSeries, notifier, billingProvider, businessMetrics, logger)
	donationService := service.NewDonationService(store, businessMetrics, logger)
	webhookService := service.NewWebhookService(paymentService, donationService, businessMetrics, logger)

	// Route dependencies
	apiDeps := routes.APIDeps{
		AuthHandler:     handler.NewAuthHandler(userService, logger),
		FamilyHandler:   handler.NewFamilyHandler(directoryService, logger),
		MemberHandler:   handler.NewMemberHandler(directoryService, logger),
		BankHandler:     handler.NewBankHandler(directoryService, logger),
		InvoiceHandler:  handler.NewInvoiceHandler(invoiceService, paymentService, logger),
		PaymentHandler:  handler.NewPaymentHandler(paymentService, logger),
		DonationHandler: handler.NewDonationHandler(donationService, logger),
		RequireAuth:     middleware.RequireAuth(tokens, logger),
	}
	webhookDeps := routes.WebhookDeps{
		StripeHandler: webhook.NewStripeHandler(billingProvider, webhookService, businessMetrics, logger),
	}

	// Router
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		router.Logger(logger),
		router.CORS([]string{"*"}),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		httpMetrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Service banner
	r.Get("/{$}", func(w http.ResponseWriter, req *http.Request) {
		handler.JSON(w, http.StatusOK, map[string]string{"service": "or-hayeladim", "status": "ok"})
	})

	routes.RegisterAPIRoutes(r, apiDeps)
	if billingProvider != nil {
		routes.RegisterWebhookRoutes(r, webhookDeps)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
