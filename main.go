package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listing-monitor/api"
	"listing-monitor/config"
	"listing-monitor/scraper/browser"
	"listing-monitor/scraper/fetcher"
	"listing-monitor/services"
	"listing-monitor/storage"
	"listing-monitor/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	logger.Info("=== Listing monitor starting ===")
	logger.Info("Config: vendor=%s store=%s port=%s upserts=%d",
		cfg.Vendor.URL, cfg.StoreDriver, cfg.Port, cfg.UpsertConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open listing store: %v", err)
		logger.Error("Check POSTGRES_* or DATABASE_URL, or run with STORE_DRIVER=memory")
		os.Exit(1)
	}
	defer store.Close()

	var audit storage.CandidateWriter
	if cfg.CSVOutputPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
			os.Exit(1)
		}
		defer csvWriter.Close()
		audit = csvWriter
		logger.Info("Raw candidates will be appended to %s", cfg.CSVOutputPath)
	}

	svc, err := services.NewListingService(services.ListingServiceConfig{
		Vendor:            cfg.Vendor,
		Renderer:          browser.NewChromeRenderer(cfg.ChromeBin, cfg.RenderTimeout, cfg.SelectorTimeout, logger),
		Fetcher:           fetcher.NewCollyFetcher(cfg.DetailTimeout, logger),
		Store:             store,
		Audit:             audit,
		Logger:            logger,
		UpsertConcurrency: cfg.UpsertConcurrency,
		UpsertRatePerSec:  cfg.UpsertRatePerSec,
	})
	if err != nil {
		logger.Error("Failed to build listing service: %v", err)
		os.Exit(1)
	}

	errLog := logger.Writer("error")
	defer errLog.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(api.NewListingHandler(svc), logger, cfg.FrontendURL),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(errLog, "", 0),
	}

	go func() {
		logger.Info("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.SnapshotStore, error) {
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("Using the in-memory store; the snapshot is lost on restart")
		return storage.NewMemoryStore(), nil
	case "postgres", "":
		return storage.NewPostgresStore(ctx, cfg.DSN(), logger)
	default:
		return nil, errors.New("unknown STORE_DRIVER " + cfg.StoreDriver)
	}
}
