package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/vstore/internal/config"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/kvstore/postgres"
	"github.com/osse101/vstore/internal/kvstore/sqlite"
	"github.com/osse101/vstore/internal/logger"
)

// OpenStore opens the configured kv backend, wrapped in the read cache when
// CacheSize is positive. Persistent backends are migrated on open.
func OpenStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	var (
		store kvstore.Store
		err   error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store = kvstore.NewMemory()
	case config.StorageSQLite:
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
	case config.StoragePostgres:
		store, err = postgres.Open(ctx, cfg.GetDBConnString(), cfg.PoolConfig())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageDriver, err)
	}

	logger.Info(LogMsgStoreOpened, "driver", cfg.StorageDriver, "cache_size", cfg.CacheSize)
	if cfg.CacheSize > 0 {
		store = kvstore.NewCached(store, cfg.CacheSize, cfg.CacheTTL)
	}
	return store, nil
}
