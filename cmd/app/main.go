package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/vstore/internal/bootstrap"
	"github.com/osse101/vstore/internal/config"
	"github.com/osse101/vstore/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(cfg.LoggerConfig())
	logger.Info(bootstrap.LogMsgStarting,
		"environment", cfg.Environment,
		"storage", cfg.StorageDriver,
		"market", cfg.MarketMode)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		logger.Warn(bootstrap.LogMsgConfigWarning, "error", err)
	}
	for _, w := range warnings {
		logger.Warn(bootstrap.LogMsgConfigWarning, "detail", w)
	}
	logger.Info(bootstrap.LogMsgConfigurationLoaded, "port", cfg.Port, "catalog", cfg.CatalogPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := app.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	app.GracefulShutdown(shutdownCtx)
}
