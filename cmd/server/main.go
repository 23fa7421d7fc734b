package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/app"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/config"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/handler"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/pricing"
	internalRedis "github.com/nabeelmumtaz92/ReturnIt-sub009/internal/redis"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/repository/postgres"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/service"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/taxoracle"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	quoteCache := internalRedis.NewQuoteCache(redisClient)
	claimStore := internalRedis.NewClaimStore(redisClient)

	// Initialize repositories.
	orderRepo := postgres.NewOrderRepository(db)

	// Initialize the tax oracle. A disabled oracle means every tax
	// calculation falls back to the fail-open zero-tax result.
	var oracle pricing.Oracle
	if cfg.TaxOracle.Enabled && cfg.TaxOracle.APIKey != "" {
		oracle = taxoracle.NewClient(cfg.TaxOracle.BaseURL, cfg.TaxOracle.APIKey, cfg.TaxOracle.Timeout)
		log.Println("Tax oracle enabled")
	} else {
		log.Println("Tax oracle disabled: tax falls back to zero collection")
	}

	// Initialize services.
	taxService := pricing.NewTaxService(oracle, log.Default())
	fareService := pricing.NewFareService(ratesFromConfig(cfg.Pricing), taxService)
	notificationService := service.NewNotificationService()
	orderService := service.NewOrderService(orderRepo, fareService, claimStore, notificationService)
	quoteService := service.NewQuoteService(fareService, quoteCache)

	// Initialize handlers.
	orderHandler := handler.NewOrderHandler(orderService)
	quoteHandler := handler.NewQuoteHandler(quoteService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		OrderHandler: orderHandler,
		QuoteHandler: quoteHandler,
		RedisClient:  redisClient,
		NewRelicApp:  nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// ratesFromConfig maps the pricing config section onto the fare rate table.
func ratesFromConfig(cfg config.PricingConfig) pricing.Rates {
	return pricing.Rates{
		BasePay:            cfg.BasePay,
		BasePrice:          cfg.BasePrice,
		DistancePayPerMile: cfg.DistancePayPerMile,
		DistanceFeePerMile: cfg.DistanceFeePerMile,
		TimePayPerHour:     cfg.TimePayPerHour,
		TimeFeePerHour:     cfg.TimeFeePerHour,
		SizeBonusLarge:     cfg.SizeBonusLarge,
		SizeBonusXL:        cfg.SizeBonusXL,
		SizeSurchargeLarge: cfg.SizeSurchargeLarge,
		SizeSurchargeXL:    cfg.SizeSurchargeXL,
	}
}
