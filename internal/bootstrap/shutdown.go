package bootstrap

import (
	"context"

	"github.com/osse101/vstore/internal/logger"
)

// GracefulShutdown stops the app in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Market worker pool (settle queued purchases)
// 3. Key-value store
//
// Errors are logged and do not stop the sequence.
func (a *App) GracefulShutdown(ctx context.Context) {
	logger.Info(LogMsgShuttingDownServer)

	if a.Server != nil {
		if err := a.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if a.pool != nil {
		logger.Info(LogMsgStoppingMarket)
		a.pool.Stop()
	}

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			logger.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	logger.Info(LogMsgServerStopped)
}
