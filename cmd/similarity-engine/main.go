package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandsec/similarity-engine/internal/adapters/httpapi"
	"github.com/brandsec/similarity-engine/internal/adapters/registry"
	"github.com/brandsec/similarity-engine/internal/application"
	"github.com/brandsec/similarity-engine/internal/config"
	"github.com/brandsec/similarity-engine/internal/domain/generation"
	"github.com/brandsec/similarity-engine/internal/platform/httpserver"
	"github.com/brandsec/similarity-engine/internal/platform/metrics"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	store, err := registry.NewPostgresStore(cfg.DatabaseURL, cfg.BatchSize, cfg.MaxParallel)
	if err != nil {
		logger.Error("registry store connection failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(cfg.InitTLDs) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := store.InitSchema(ctx, cfg.InitTLDs); err != nil {
			cancel()
			logger.Error("partition initialization failed", "error", err)
			os.Exit(1)
		}
		cancel()
		logger.Info("registry partitions ready", "tlds", cfg.InitTLDs)
	}

	service := application.NewDetectionService(
		store,
		generation.NewGenerator(logger),
		application.Options{
			MaxVariations:   cfg.MaxVariations,
			ScanLimitPerTLD: cfg.ScanLimitPerTLD,
			LengthTolerance: cfg.LengthTolerance,
		},
		logger,
		metrics.New(),
	)

	router := httpapi.NewRouter(httpapi.NewHandler(service, logger))
	srv := httpserver.New(cfg.ListenAddr, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("similarity engine listening", "addr", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("stopped")
}
