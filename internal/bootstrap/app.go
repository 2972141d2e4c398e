package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/vstore/internal/catalog"
	"github.com/osse101/vstore/internal/config"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/inventory"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/logger"
	"github.com/osse101/vstore/internal/market"
	"github.com/osse101/vstore/internal/metrics"
	"github.com/osse101/vstore/internal/server"
	"github.com/osse101/vstore/internal/storage"
	"github.com/osse101/vstore/internal/worker"
)

// App holds the wired components of a running ledger
type App struct {
	Config    *config.Config
	Store     kvstore.Store
	Catalog   *catalog.Catalog
	Bus       *event.MemoryBus
	Inventory inventory.Service
	Server    *server.Server

	pool *worker.Pool
}

// LoadCatalog reads the store assets file. A malformed entry stops loading
// but the items read before it remain usable.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.LoadFile(cfg.CatalogPath, cfg.CatalogValidate)
	if err != nil {
		if catalog.IsLoadError(err) && cat != nil {
			logger.Warn(LogMsgCatalogPartial, "path", cfg.CatalogPath, "error", err, "items", cat.Len())
			return cat, nil
		}
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	logger.Info(LogMsgCatalogLoaded, "path", cfg.CatalogPath, "items", cat.Len())
	return cat, nil
}

// Build wires storage, events, market and HTTP from cfg
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat, err := LoadCatalog(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	bus := event.NewMemoryBus()
	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("register event metrics: %w", err)
	}
	deferred := event.NewDeferred(bus)
	mgr := storage.NewManager(store, deferred, cat)

	app := &App{Config: cfg, Store: store, Catalog: cat, Bus: bus}

	var client market.Client
	var sim *market.Simulator
	if cfg.MarketMode == config.MarketSimulated {
		outcome, err := market.ParseOutcome(cfg.MarketOutcome)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		app.pool = worker.NewPool(cfg.MarketWorkers, cfg.MarketQueue)
		app.pool.Start()
		sim = market.NewSimulator(app.pool, outcome)
		client = sim
		logger.Info(LogMsgMarketSimulated, "workers", cfg.MarketWorkers, "outcome", outcome)
	} else {
		logger.Warn(LogMsgMarketDisabled)
	}

	app.Inventory = inventory.NewService(cat, mgr, client, deferred)
	if sim != nil {
		sim.SetHandler(app.Inventory)
	}

	opts := server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Inventory:      app.Inventory,
		Catalog:        cat,
		Store:          store,
	}
	if cached, ok := store.(*kvstore.Cached); ok {
		opts.Cache = cached
	}
	app.Server = server.NewServer(opts)
	return app, nil
}
