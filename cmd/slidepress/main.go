// Package main is the entry point for the SlidePress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slidepress/internal/cache"
	"slidepress/internal/carousel"
	"slidepress/internal/compose"
	"slidepress/internal/config"
	"slidepress/internal/database"
	"slidepress/internal/handlers"
	"slidepress/internal/imaging"
	"slidepress/internal/router"
	"slidepress/internal/storage"
	"slidepress/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the rendered-slide cache. The cache is
	// optional like S3: without it renders are lost when the request
	// ends, so exports keep answering 409 until Valkey is back.
	var renderCache *cache.RenderCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable — render cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		renderCache = cache.NewRenderCache(valkeyClient, cache.DefaultRenderTTL)
	}

	// Start libvips for upload preview generation.
	imaging.Startup(cfg.VipsConcurrency)
	defer imaging.Shutdown()

	// Initialize data stores.
	projectStore := store.NewProjectStore(db)
	assetStore := store.NewAssetStore(db)
	templateStore := store.NewTemplateStore(db)
	carouselStore := store.NewCarouselStore(db)

	// Connect to S3-compatible object storage (optional — solid-color
	// carousels work without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketAssets, cfg.S3BucketExports, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"assets_bucket", cfg.S3BucketAssets,
				"exports_bucket", cfg.S3BucketExports,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — background uploads disabled")
	}

	// Build the slide composer and renderer.
	composer, err := compose.New()
	if err != nil {
		slog.Error("failed to initialize composer", "error", err)
		os.Exit(1)
	}
	source := handlers.NewStorageSource(storageClient, assetStore)
	renderer := carousel.NewRenderer(composer, source)

	// Create the handler group with its dependencies.
	api := handlers.NewAPI(projectStore, assetStore, templateStore, carouselStore, storageClient, renderCache, renderer)

	// Set up the Chi router with all middleware and routes.
	r, stopLimiters := router.New(api)
	defer stopLimiters()

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate rendering a full deck and building
	// the PDF, which can take tens of seconds for image-heavy carousels.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
