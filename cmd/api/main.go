package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkart/internal/cart"
	"shopkart/internal/catalog"
	"shopkart/internal/checkout"
	"shopkart/internal/config"
	"shopkart/internal/coupon"
	"shopkart/internal/database"
	"shopkart/internal/handler"
	"shopkart/internal/pricing"
	"shopkart/internal/router"
	"shopkart/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopkart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalogue database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize the single-device store for cart, wishlist and invoice
	store, err := storage.NewFileStore(cfg.Storage.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize cart store and hydrate it from the persisted records
	cartStore := cart.NewStore(store, logger)
	if err := cartStore.Load(ctx); err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	// Initialize coupon registry with S3 and local fallback
	fileLoader := coupon.NewFileLoader(logger)
	var registryLoader coupon.Loader = fileLoader

	if cfg.Coupons.S3Enabled {
		s3Loader, err := coupon.NewS3Loader(ctx, cfg.Coupons.S3Bucket, cfg.Coupons.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			registryLoader = coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.Coupons.S3Key, true, logger)
		}
	}

	registry, err := registryLoader.Load(ctx, cfg.Coupons.RegistryPath)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("path", cfg.Coupons.RegistryPath).
			Msg("failed to load coupon registry, using built-in defaults")
		registry = coupon.DefaultRegistry()
	}
	validator := coupon.NewValidator(registry, logger)

	// Initialize pricing engine and payment gateway
	engine := pricing.NewEngine(cfg.Pricing, logger)
	gateway := checkout.NewSimulatedGateway(
		time.Duration(cfg.Payment.AckDelayMillis)*time.Millisecond,
		logger,
	)

	// Initialize checkout orchestrator
	orchestrator := checkout.NewOrchestrator(cartStore, engine, validator, gateway, store, logger)

	// Initialize catalogue
	catalogRepo := catalog.NewRepository(pool, logger)
	catalogService := catalog.NewService(catalogRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartStore, catalogService, orchestrator, logger)
	wishlistHandler := handler.NewWishlistHandler(cartStore, catalogService, logger)
	checkoutHandler := handler.NewCheckoutHandler(orchestrator, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, wishlistHandler, checkoutHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
