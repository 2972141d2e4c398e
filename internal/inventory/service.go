// Package inventory is the public face of the economy ledger. It resolves
// items in the catalog, applies kind-specific rules and persists the result
// through the storage layer.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/vstore/internal/catalog"
	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/logger"
	"github.com/osse101/vstore/internal/market"
	"github.com/osse101/vstore/internal/metrics"
	"github.com/osse101/vstore/internal/storage"
)

// Service defines the inventory operations
type Service interface {
	// Buy purchases one unit of itemID through its purchase type
	Buy(ctx context.Context, itemID, payload string) error
	Balance(ctx context.Context, itemID string) (int, error)
	// Give credits amount units without any purchase checks
	Give(ctx context.Context, itemID string, amount int) error
	// Take debits amount units. A debit below zero is rejected.
	Take(ctx context.Context, itemID string, amount int) error

	Equip(ctx context.Context, goodID string) error
	Unequip(ctx context.Context, goodID string) error
	IsEquipped(ctx context.Context, goodID string) (bool, error)

	UpgradeLevel(ctx context.Context, goodID string) (int, error)
	CurrentUpgrade(ctx context.Context, goodID string) (string, error)
	Upgrade(ctx context.Context, goodID string) error
	ForceUpgrade(ctx context.Context, upgradeID string) error
	RemoveUpgrades(ctx context.Context, goodID string) error

	ExportBalances(ctx context.Context) (domain.Balances, error)
	ImportBalances(ctx context.Context, snapshot domain.Balances) (*ImportReport, error)

	market.CompletionHandler
}

type service struct {
	catalog *catalog.Catalog
	storage *storage.Manager
	market  market.Client
	bus     *event.Deferred

	// mu serializes every mutation; queries share it
	mu sync.RWMutex
}

// NewService creates the inventory service. The storage manager must publish
// to the same Deferred bus so its notifications are delivered after the
// service releases its lock. A nil client disables market purchases.
func NewService(cat *catalog.Catalog, store *storage.Manager, client market.Client, bus *event.Deferred) Service {
	if client == nil {
		client = market.Disabled{}
	}
	return &service{
		catalog: cat,
		storage: store,
		market:  client,
		bus:     bus,
	}
}

// mutate runs fn under the write lock. Events raised inside fn are
// delivered once the lock is released, whether or not fn failed.
func (s *service) mutate(ctx context.Context, fn func() error) error {
	var (
		err    error
		events []event.Event
	)
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.bus.Hold()
		defer func() { events = s.bus.Release() }()
		err = fn()
	}()
	s.bus.Flush(ctx, events)
	return err
}

func (s *service) Balance(ctx context.Context, itemID string) (int, error) {
	item, err := s.catalog.Item(itemID)
	if err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance(ctx, item)
}

// balance reads an item's own balance. Packs hold none and always read 0.
func (s *service) balance(ctx context.Context, item *domain.VirtualItem) (int, error) {
	switch item.Kind {
	case domain.KindCurrencyPack, domain.KindSingleUsePack:
		return 0, nil
	}
	st, err := s.storage.Storage(item)
	if err != nil {
		return 0, err
	}
	return st.Balance(ctx, item.ID)
}

// publish queues evt while a mutation is running, otherwise delivers it
func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.bus.Publish(ctx, evt); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func invalidAmount(itemID string, amount int) error {
	return fmt.Errorf("%w: amount %d for %s", domain.ErrInvalidInput, amount, itemID)
}
