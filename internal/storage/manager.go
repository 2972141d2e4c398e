// Package storage persists balances, equip flags and current-upgrade pointers
// on a kvstore.Store. It applies no locking of its own; callers serialize
// read-modify-write sequences.
package storage

import (
	"context"
	"fmt"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/logger"
)

// UpgradeResolver resolves the upgrade a stored pointer names
type UpgradeResolver interface {
	Upgrade(itemID string) (*domain.VirtualItem, error)
}

// Manager owns the per-kind storages sharing one key-value store
type Manager struct {
	store kvstore.Store

	Currencies *CurrencyStorage
	Goods      *GoodsStorage
}

// NewManager creates the storages. Notifications go to bus.
func NewManager(store kvstore.Store, bus event.Bus, upgrades UpgradeResolver) *Manager {
	return &Manager{
		store: store,
		Currencies: &CurrencyStorage{balances{
			store:    store,
			bus:      bus,
			prefix:   CurrencyPrefix,
			newEvent: event.NewCurrencyBalanceChangedEvent,
		}},
		Goods: newGoodsStorage(store, bus, upgrades),
	}
}

// ClearCurrentState deletes every persisted currency, good and legacy
// non-consumable key. No notifications are sent.
func (m *Manager) ClearCurrentState(ctx context.Context) error {
	removed, err := kvstore.DeleteWithPrefix(ctx, m.store, CurrencyPrefix, GoodPrefix, NonConsumablePrefix)
	if err != nil {
		return fmt.Errorf("failed to clear state after %d keys: %w", removed, err)
	}
	logger.FromContext(ctx).Info(LogMsgClearedState, "keys_removed", removed)
	return nil
}

// Ping checks the backing store
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

// Storage returns the balance storage for an item, or ErrWrongItemType for
// items that carry no balance of their own (packs)
func (m *Manager) Storage(item *domain.VirtualItem) (BalanceStorage, error) {
	switch {
	case item.IsCurrency():
		return m.Currencies, nil
	case item.IsGood() && item.Kind != domain.KindSingleUsePack:
		return m.Goods, nil
	}
	return nil, fmt.Errorf("%w: %s has no balance storage", domain.ErrWrongItemType, item.ID)
}

// BalanceStorage is the balance API shared by currencies and goods
type BalanceStorage interface {
	Balance(ctx context.Context, itemID string) (int, error)
	SetBalance(ctx context.Context, itemID string, balance int, notify bool) (int, error)
	Add(ctx context.Context, itemID string, amount int, notify bool) (int, error)
	Remove(ctx context.Context, itemID string, amount int, notify bool) (int, error)
}
