package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shipping-rates/internal/api"
	"shipping-rates/internal/config"
	"shipping-rates/internal/modules/carrier"
	"shipping-rates/internal/modules/packing"
	"shipping-rates/internal/modules/quotes"
	"shipping-rates/pkg/cache"
	"shipping-rates/pkg/logger"
	"shipping-rates/pkg/notify"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	// Load application configuration from environment variables or a config file.
	// This includes the server settings plus the carrier, packing and quote
	// policy the rate pipeline consumes.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{ // Configure CORS appropriately
		AllowOrigins: []string{"http://localhost:5173", cfg.ClientOrigin}, // Storefront dev and prod origins
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Shared Key-Value Store ---
	// Tokens, rate-limit flags and quote responses all live in the same
	// store; the backend is swappable per deployment.
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		redisStore, err := cache.NewRedisStore(context.Background(), cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Fatalf("Unable to connect to redis: %v", err)
		}
		store = redisStore
	case "postgres":
		dbConfig, err := pgxpool.ParseConfig(cfg.Cache.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to parse database configuration: %v", err)
		}
		dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
		if err != nil {
			log.Fatalf("Unable to create connection pool: %v\n", err)
		}
		defer dbPool.Close()
		pgStore, err := cache.NewPostgresStore(context.Background(), dbPool)
		if err != nil {
			log.Fatalf("Unable to prepare transient store: %v", err)
		}
		store = pgStore
	default:
		store = cache.NewMemoryStore()
	}

	// --- Operator Notices ---
	var notifier notify.Notifier
	if cfg.Notify.Backend == "ses" {
		sesNotifier, err := notify.NewSESNotifier(context.Background(), cfg.Notify.SESRegion, cfg.Notify.FromEmail, cfg.Notify.OwnerEmail, appLog)
		if err != nil {
			log.Fatalf("Unable to initialize SES notifier: %v", err)
		}
		notifier = sesNotifier
	} else {
		notifier = notify.NewLogNotifier(appLog)
	}

	// 4. --- Dependency Injection (Wiring everything up) ---
	// --- Carrier Module ---
	var tokens carrier.TokenSource
	if cfg.Carrier.AuthMode == "oauth" {
		tokens = carrier.NewOAuthTokenSource(cfg.Carrier.Credentials, cfg.Carrier.TokenURL)
	} else {
		tokens = carrier.NewBasicTokenSource(cfg.Carrier.Credentials, store, appLog)
	}
	httpClient := &http.Client{}
	var clientOpts []carrier.ClientOption
	if strings.EqualFold(cfg.LogLevel, "debug") {
		debugLog := appLog.WithComponent("carrier_debug")
		clientOpts = append(clientOpts, carrier.WithDebugSink(func(entry carrier.DebugEntry) {
			debugLog.Debug("carrier exchange", "id", entry.ID, "kind", entry.Kind, "payload", entry.Payload)
		}))
	}
	rateClient := carrier.NewClient(cfg.Carrier, httpClient, tokens, store, appLog, clientOpts...)
	rateMapper := carrier.NewMapper(cfg.Carrier, appLog)
	addressValidator := carrier.NewAddressValidator(cfg.Carrier, httpClient, tokens, appLog)

	// --- Packing Module ---
	if len(cfg.Packing.Boxes) == 0 {
		cfg.Packing.Boxes = packing.DefaultBoxes(cfg.Packing.DimensionUnit, cfg.Packing.WeightUnit)
	}
	packageBuilder := packing.NewBuilder(cfg.Packing, nil, appLog)

	// --- Quotes Module ---
	quoteSettings, err := cfg.QuoteSettings()
	if err != nil {
		log.Fatalf("Invalid quote settings: %v", err)
	}
	quoteService := quotes.NewService(quoteSettings, packageBuilder, rateClient, rateMapper, addressValidator, rateClient, notifier, appLog)
	quoteHandler := quotes.NewHandler(quoteService)

	// 5. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret, quoteHandler)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
