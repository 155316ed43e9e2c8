package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medguide/internal/catalog"
	"medguide/internal/database"
	httpapi "medguide/internal/http"
	"medguide/internal/repository"
	"medguide/internal/service"
	"medguide/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedSample loads the built-in catalog into an empty store and drops cached
// catalog lists so they cannot outlive the seed. Failures are logged.
func seedSample(ctx context.Context, repos *repository.Repositories, kv store.KV) {
	sample, err := catalog.Sample()
	if err != nil {
		logger.Warn("sample seed failed", zap.Error(err))
		return
	}
	res, err := catalog.Seed(ctx, repos, sample, false)
	if err != nil {
		logger.Warn("sample seed failed", zap.Error(err))
		return
	}
	if res.Skipped {
		return
	}
	logger.Info("sample catalog seeded",
		zap.Int("medicines", res.Medicines),
		zap.Int("diseases", res.Diseases),
	)
	if err := service.InvalidateCatalogCache(ctx, kv); err != nil {
		logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

// buildHandler wires store, cache and services into the HTTP handler.
// The returned cleanup closes whatever was opened.
func buildHandler(ctx context.Context) (http.Handler, func()) {
	db, repos, backend := openStoreOrMemory(ctx)

	var kv store.KV
	redisKV := openCache(ctx)
	if redisKV != nil {
		kv = redisKV
	}

	if cfg.SeedSample {
		seedSample(ctx, repos, kv)
	}

	api := httpapi.NewAPI(
		service.NewCatalogService(repos.Medicines, repos.Diseases, kv, cfg.Cache.TTL, logger),
		service.NewSymptomService(repos.SymptomChecks, logger),
		service.NewConsultationService(repos.Consultations, logger),
		service.NewImageService(cfg.UploadDir, logger),
		backend,
		logger,
	)

	cleanup := func() {
		if redisKV != nil {
			_ = redisKV.Close()
		}
		_ = database.Close(db)
	}
	return httpapi.NewHandler(api, logger), cleanup
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, cleanup := buildHandler(ctx)
	defer cleanup()

	srv := service.NewServer(cfg.HTTP.Addr, handler, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var serveErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	return serveErr
}
