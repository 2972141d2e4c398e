package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/logger"
)

func (s *service) Equip(ctx context.Context, goodID string) error {
	logger.FromContext(ctx).Info(LogMsgEquipCalled, "good_id", goodID)
	good, err := s.catalog.Equippable(goodID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		return s.equip(ctx, good, true)
	})
}

func (s *service) Unequip(ctx context.Context, goodID string) error {
	logger.FromContext(ctx).Info(LogMsgUnequipCalled, "good_id", goodID)
	good, err := s.catalog.Equippable(goodID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		return s.storage.Goods.Unequip(ctx, good.ID, true)
	})
}

func (s *service) IsEquipped(ctx context.Context, goodID string) (bool, error) {
	good, err := s.catalog.Equippable(goodID)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage.Goods.IsEquipped(ctx, good.ID)
}

// equip unequips every other good in the target's scope, then equips the
// target. Keys are written one by one in that order, so an interrupted equip
// leaves at most the target unequipped, never two goods equipped.
//
// Callers hold the write lock.
func (s *service) equip(ctx context.Context, good *domain.VirtualItem, notify bool) error {
	goods := s.storage.Goods
	balance, err := goods.Balance(ctx, good.ID)
	if err != nil {
		return err
	}
	if balance < 1 {
		return fmt.Errorf("%w: %s is not owned", domain.ErrNotEnoughGoods, good.ID)
	}

	for _, otherID := range s.equipScope(good) {
		if err := goods.Unequip(ctx, otherID, notify); err != nil {
			return err
		}
	}
	return goods.Equip(ctx, good.ID, notify)
}

// equipScope lists the other equippable goods an equip of good displaces
func (s *service) equipScope(good *domain.VirtualItem) []string {
	var ids []string
	switch good.EquipMode {
	case domain.EquipCategory:
		cat, ok := s.catalog.CategoryOf(good.ID)
		if !ok {
			return nil
		}
		for _, id := range cat.GoodIDs {
			if id == good.ID {
				continue
			}
			if other, err := s.catalog.Equippable(id); err == nil {
				ids = append(ids, other.ID)
			}
		}
	case domain.EquipGlobal:
		for _, other := range s.catalog.Goods() {
			if other.IsEquippable() && other.ID != good.ID {
				ids = append(ids, other.ID)
			}
		}
	}
	return ids
}
