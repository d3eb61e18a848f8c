// Package main is the entry point for the fiches server.
// It loads configuration, opens the document store, wires the optional
// cache and export storage, sets up routing, and starts the HTTP server
// with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fiches/internal/cache"
	"fiches/internal/config"
	"fiches/internal/database"
	"fiches/internal/documents"
	"fiches/internal/handlers"
	"fiches/internal/render"
	"fiches/internal/router"
	"fiches/internal/storage"
	"fiches/internal/store"
	"fiches/internal/theme"
	"fiches/web"
)

func main() {
	// The level is raised or lowered once the configuration is known.
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.SlogLevel())

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreDriver,
		"templates", cfg.TemplatesDir,
	)

	ctx := context.Background()

	templateStore := store.NewTemplateStore(cfg.TemplatesDir)
	if summaries, err := templateStore.Summaries(); err != nil {
		slog.Warn("templates directory unreadable", "dir", cfg.TemplatesDir, "error", err)
	} else {
		slog.Info("templates loaded", "count", len(summaries))
	}

	presets := theme.DefaultPresets()
	if cfg.PalettesFile != "" {
		presets, err = theme.LoadPresets(cfg.PalettesFile)
		if err != nil {
			slog.Error("failed to load palette presets", "file", cfg.PalettesFile, "error", err)
			os.Exit(1)
		}
	}
	catalog, err := theme.NewCatalog(presets)
	if err != nil {
		slog.Error("invalid palette presets", "error", err)
		os.Exit(1)
	}

	// The data directory is always opened: it is the file store, and the
	// seed source when documents move to PostgreSQL.
	fileStore, err := store.NewFileDocumentStore(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open data directory", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	var docStore store.DocumentStore = fileStore
	if cfg.StoreDriver == config.StorePostgres {
		db, err := openPostgres(ctx, cfg, fileStore)
		if err != nil {
			slog.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		docStore = store.NewPGDocumentStore(db)
	}

	// Connect to Valkey (optional, caches print pages).
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to print cache", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		pageCache = cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
		// Templates may have changed since the last run.
		pageCache.InvalidateAll(ctx)
	} else {
		slog.Info("valkey not configured, print cache disabled")
	}

	// Connect to S3-compatible object storage (optional, app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var exporter documents.Exporter
	if storageClient != nil {
		exporter = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, export disabled")
	}

	docs := documents.New(docStore, templateStore, catalog, pageCache, exporter)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	printer, err := handlers.NewPrinter(docs, renderer)
	if err != nil {
		slog.Error("failed to load print stylesheets", "error", err)
		os.Exit(1)
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to open static assets", "error", err)
		os.Exit(1)
	}

	r := router.New(
		handlers.NewAPI(docs, templateStore, printer),
		handlers.NewPages(docs, templateStore, renderer, printer),
		static,
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openPostgres connects, migrates and seeds the documents table from the
// data directory when the table is still empty.
func openPostgres(ctx context.Context, cfg *config.Config, seed *store.FileDocumentStore) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	existing, err := seed.All(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := database.Seed(ctx, db, existing); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
