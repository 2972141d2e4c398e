package storage

import (
	"context"
	"fmt"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/logger"
)

// GoodsStorage holds good balances plus the equip flag and current-upgrade
// pointer of each good
type GoodsStorage struct {
	balances
	upgrades UpgradeResolver
}

func newGoodsStorage(store kvstore.Store, bus event.Bus, upgrades UpgradeResolver) *GoodsStorage {
	return &GoodsStorage{
		balances: balances{
			store:    store,
			bus:      bus,
			prefix:   GoodPrefix,
			newEvent: event.NewGoodBalanceChangedEvent,
		},
		upgrades: upgrades,
	}
}

func (g *GoodsStorage) equippedKey(goodID string) string {
	return GoodPrefix + goodID + equippedSuffix
}

func (g *GoodsStorage) currentUpgradeKey(goodID string) string {
	return GoodPrefix + goodID + currentUpgradeSuffix
}

// IsEquipped reports the stored equip flag
func (g *GoodsStorage) IsEquipped(ctx context.Context, goodID string) (bool, error) {
	raw, ok, err := g.store.Get(ctx, g.equippedKey(goodID))
	if err != nil {
		return false, fmt.Errorf("failed to read equip state of %s: %w", goodID, err)
	}
	return ok && raw == equippedValue, nil
}

// Equip sets the equip flag. Nothing is written or sent when the good is
// already equipped.
func (g *GoodsStorage) Equip(ctx context.Context, goodID string, notify bool) error {
	equipped, err := g.IsEquipped(ctx, goodID)
	if err != nil || equipped {
		return err
	}
	if err := g.store.Set(ctx, g.equippedKey(goodID), equippedValue); err != nil {
		return fmt.Errorf("failed to equip %s: %w", goodID, err)
	}
	if notify {
		g.publish(ctx, event.NewGoodEquippedEvent(goodID))
	}
	return nil
}

// Unequip clears the equip flag. Nothing is written or sent when the good is
// not equipped.
func (g *GoodsStorage) Unequip(ctx context.Context, goodID string, notify bool) error {
	equipped, err := g.IsEquipped(ctx, goodID)
	if err != nil || !equipped {
		return err
	}
	if err := g.store.Delete(ctx, g.equippedKey(goodID)); err != nil {
		return fmt.Errorf("failed to unequip %s: %w", goodID, err)
	}
	if notify {
		g.publish(ctx, event.NewGoodUnequippedEvent(goodID))
	}
	return nil
}

// CurrentUpgrade returns the good's current upgrade, or nil when it has
// none. A pointer to an id that is not an upgrade of this good reads as none.
func (g *GoodsStorage) CurrentUpgrade(ctx context.Context, goodID string) (*domain.VirtualItem, error) {
	upgradeID, ok, err := g.store.Get(ctx, g.currentUpgradeKey(goodID))
	if err != nil {
		return nil, fmt.Errorf("failed to read current upgrade of %s: %w", goodID, err)
	}
	if !ok || upgradeID == "" {
		return nil, nil
	}
	upgrade, err := g.upgrades.Upgrade(upgradeID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnknownUpgrade, "good_id", goodID, "upgrade_id", upgradeID, "error", err)
		return nil, nil
	}
	if upgrade.GoodID != goodID {
		logger.FromContext(ctx).Warn(LogMsgUnknownUpgrade, "good_id", goodID, "upgrade_id", upgradeID, "upgrades_good", upgrade.GoodID)
		return nil, nil
	}
	return upgrade, nil
}

// AssignCurrentUpgrade points the good at upgradeID. Assigning the stored
// pointer again writes and sends nothing.
func (g *GoodsStorage) AssignCurrentUpgrade(ctx context.Context, goodID, upgradeID string, notify bool) error {
	if upgradeID == "" {
		return g.RemoveUpgrades(ctx, goodID, notify)
	}
	stored, ok, err := g.store.Get(ctx, g.currentUpgradeKey(goodID))
	if err != nil {
		return fmt.Errorf("failed to read current upgrade of %s: %w", goodID, err)
	}
	if ok && stored == upgradeID {
		return nil
	}
	if err := g.store.Set(ctx, g.currentUpgradeKey(goodID), upgradeID); err != nil {
		return fmt.Errorf("failed to assign upgrade %s to %s: %w", upgradeID, goodID, err)
	}
	if notify {
		g.publish(ctx, event.NewGoodUpgradedEvent(goodID, upgradeID))
	}
	return nil
}

// RemoveUpgrades clears the good's current-upgrade pointer. Nothing is
// written or sent when no pointer is stored.
func (g *GoodsStorage) RemoveUpgrades(ctx context.Context, goodID string, notify bool) error {
	_, ok, err := g.store.Get(ctx, g.currentUpgradeKey(goodID))
	if err != nil {
		return fmt.Errorf("failed to read current upgrade of %s: %w", goodID, err)
	}
	if !ok {
		return nil
	}
	if err := g.store.Delete(ctx, g.currentUpgradeKey(goodID)); err != nil {
		return fmt.Errorf("failed to remove upgrades of %s: %w", goodID, err)
	}
	if notify {
		g.publish(ctx, event.NewGoodUpgradedEvent(goodID, ""))
	}
	return nil
}
