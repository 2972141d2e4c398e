package main

import (
	"context"
	"flag"
	"log"

	"github.com/osse101/vstore/internal/bootstrap"
	"github.com/osse101/vstore/internal/config"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/storage"
)

// reset wipes every persisted balance, equip flag and upgrade pointer from
// the configured store. The catalog is only read to resolve key layout.
// A running app with a read cache keeps serving its cached balances until
// POST /api/v1/cache/purge is called or it restarts.
func main() {
	force := flag.Bool("force", false, "skip the confirmation guard")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Environment == "production" && !*force {
		log.Fatal("Refusing to reset a production store without -force")
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	mgr := storage.NewManager(store, event.NewMemoryBus(), cat)
	log.Printf("Clearing %s store...\n", cfg.StorageDriver)
	if err := mgr.ClearCurrentState(ctx); err != nil {
		log.Fatalf("Failed to clear store: %v", err)
	}
	log.Println("✅ Store reset complete!")
}
