package inventory

import (
	"context"
	"errors"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/logger"
)

func (s *service) CurrentUpgrade(ctx context.Context, goodID string) (string, error) {
	good, err := s.catalog.Good(goodID)
	if err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, err := s.storage.Goods.CurrentUpgrade(ctx, good.ID)
	if err != nil || current == nil {
		return "", err
	}
	return current.ID, nil
}

// UpgradeLevel is 0 without a current upgrade, otherwise the 1-based
// position of the current upgrade in the good's chain
func (s *service) UpgradeLevel(ctx context.Context, goodID string) (int, error) {
	good, err := s.catalog.Good(goodID)
	if err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, err := s.storage.Goods.CurrentUpgrade(ctx, good.ID)
	if err != nil || current == nil {
		return 0, err
	}
	for i, up := range s.catalog.Upgrades(good.ID) {
		if up.ID == current.ID {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Upgrade buys the good's next upgrade, or its first one when it has none.
// At the end of the chain nothing happens.
func (s *service) Upgrade(ctx context.Context, goodID string) error {
	good, err := s.catalog.Good(goodID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	current, err := s.storage.Goods.CurrentUpgrade(ctx, good.ID)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	var nextID string
	switch {
	case current != nil:
		nextID = current.NextID
	default:
		if first, ok := s.catalog.FirstUpgrade(good.ID); ok {
			nextID = first.ID
		}
	}
	if nextID == "" {
		logger.FromContext(ctx).Info(LogMsgUpgradeAtChainEnd, "good_id", good.ID)
		return nil
	}
	// Buy re-checks the chain position under the write lock
	return s.Buy(ctx, nextID, "")
}

// ForceUpgrade grants an upgrade without charging for it. An id that names
// something other than an upgrade is logged and ignored.
func (s *service) ForceUpgrade(ctx context.Context, upgradeID string) error {
	upgrade, err := s.catalog.Upgrade(upgradeID)
	if errors.Is(err, domain.ErrWrongItemType) {
		logger.FromContext(ctx).Warn(LogMsgForceUpgradeSkipped, "item_id", upgradeID, "error", err)
		return nil
	}
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		return s.give(ctx, upgrade, 1, true)
	})
}

// RemoveUpgrades zeroes every upgrade of the good and clears its pointer
func (s *service) RemoveUpgrades(ctx context.Context, goodID string) error {
	good, err := s.catalog.Good(goodID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		if err := s.removeUpgrades(ctx, good, true); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgUpgradesRemoved, "good_id", good.ID)
		return nil
	})
}

func (s *service) removeUpgrades(ctx context.Context, good *domain.VirtualItem, notify bool) error {
	goods := s.storage.Goods
	for _, up := range s.catalog.Upgrades(good.ID) {
		if _, err := goods.SetBalance(ctx, up.ID, 0, notify); err != nil {
			return err
		}
	}
	return goods.RemoveUpgrades(ctx, good.ID, notify)
}

// canBuyUpgrade reports whether the upgrade is the next step for its good:
// the chain's first upgrade when the good has none, or a neighbour of the
// current one. An upgrade already owned cannot be bought again.
func (s *service) canBuyUpgrade(ctx context.Context, upgrade *domain.VirtualItem) (bool, error) {
	current, err := s.storage.Goods.CurrentUpgrade(ctx, upgrade.GoodID)
	if err != nil {
		return false, err
	}
	var inOrder bool
	switch {
	case current == nil:
		inOrder = upgrade.PrevID == ""
	default:
		inOrder = current.NextID == upgrade.ID || current.PrevID == upgrade.ID
	}
	if !inOrder {
		return false, nil
	}
	owned, err := s.storage.Goods.Balance(ctx, upgrade.ID)
	if err != nil {
		return false, err
	}
	return owned < 1, nil
}
