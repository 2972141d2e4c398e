package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/logger"
)

func (s *service) Give(ctx context.Context, itemID string, amount int) error {
	logger.FromContext(ctx).Info(LogMsgGiveCalled, "item_id", itemID, "amount", amount)
	item, err := s.catalog.Item(itemID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		return s.give(ctx, item, amount, true)
	})
}

func (s *service) Take(ctx context.Context, itemID string, amount int) error {
	logger.FromContext(ctx).Info(LogMsgTakeCalled, "item_id", itemID, "amount", amount)
	item, err := s.catalog.Item(itemID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		return s.take(ctx, item, amount, true)
	})
}

// give credits amount units of item following its kind:
//   - currencies and single-use goods add amount
//   - lifetime goods are set to 1
//   - packs credit their contents amount times
//   - upgrades become the current upgrade of their good
//
// Callers hold the write lock.
func (s *service) give(ctx context.Context, item *domain.VirtualItem, amount int, notify bool) error {
	if amount < 0 {
		return invalidAmount(item.ID, amount)
	}
	goods := s.storage.Goods
	switch item.Kind {
	case domain.KindCurrency:
		_, err := s.storage.Currencies.Add(ctx, item.ID, amount, notify)
		return err
	case domain.KindSingleUse:
		_, err := goods.Add(ctx, item.ID, amount, notify)
		return err
	case domain.KindCurrencyPack:
		units, err := packUnits(item, item.CurrencyAmount, amount)
		if err != nil {
			return err
		}
		_, err = s.storage.Currencies.Add(ctx, item.CurrencyID, units, notify)
		return err
	case domain.KindSingleUsePack:
		units, err := packUnits(item, item.GoodAmount, amount)
		if err != nil {
			return err
		}
		_, err = goods.Add(ctx, item.GoodID, units, notify)
		return err
	case domain.KindLifetime, domain.KindEquippable:
		if amount == 0 {
			return nil
		}
		_, err := goods.SetBalance(ctx, item.ID, 1, notify)
		return err
	case domain.KindUpgrade:
		if amount == 0 {
			return nil
		}
		if err := goods.AssignCurrentUpgrade(ctx, item.GoodID, item.ID, notify); err != nil {
			return err
		}
		_, err := goods.SetBalance(ctx, item.ID, 1, notify)
		return err
	}
	return fmt.Errorf("%w: cannot give %s of kind %s", domain.ErrWrongItemType, item.ID, item.Kind)
}

// take debits amount units of item, mirroring give. Lifetime goods drop to
// 0, equippable goods are unequipped first, and an upgrade can only be taken
// while it is the current one, stepping its good back one level.
//
// Callers hold the write lock.
func (s *service) take(ctx context.Context, item *domain.VirtualItem, amount int, notify bool) error {
	if amount < 0 {
		return invalidAmount(item.ID, amount)
	}
	goods := s.storage.Goods
	switch item.Kind {
	case domain.KindCurrency:
		_, err := s.storage.Currencies.Remove(ctx, item.ID, amount, notify)
		return err
	case domain.KindSingleUse:
		_, err := goods.Remove(ctx, item.ID, amount, notify)
		return err
	case domain.KindCurrencyPack:
		units, err := packUnits(item, item.CurrencyAmount, amount)
		if err != nil {
			return err
		}
		_, err = s.storage.Currencies.Remove(ctx, item.CurrencyID, units, notify)
		return err
	case domain.KindSingleUsePack:
		units, err := packUnits(item, item.GoodAmount, amount)
		if err != nil {
			return err
		}
		_, err = goods.Remove(ctx, item.GoodID, units, notify)
		return err
	case domain.KindLifetime, domain.KindEquippable:
		if amount == 0 {
			return nil
		}
		if item.IsEquippable() {
			if err := goods.Unequip(ctx, item.ID, notify); err != nil {
				return err
			}
		}
		_, err := goods.Remove(ctx, item.ID, 1, notify)
		return err
	case domain.KindUpgrade:
		if amount == 0 {
			return nil
		}
		return s.takeUpgrade(ctx, item, notify)
	}
	return fmt.Errorf("%w: cannot take %s of kind %s", domain.ErrWrongItemType, item.ID, item.Kind)
}

func (s *service) takeUpgrade(ctx context.Context, upgrade *domain.VirtualItem, notify bool) error {
	goods := s.storage.Goods
	current, err := goods.CurrentUpgrade(ctx, upgrade.GoodID)
	if err != nil {
		return err
	}
	if current == nil || current.ID != upgrade.ID {
		return fmt.Errorf("%w: %s is not the current upgrade of %s", domain.ErrInvalidInput, upgrade.ID, upgrade.GoodID)
	}
	if err := goods.AssignCurrentUpgrade(ctx, upgrade.GoodID, upgrade.PrevID, notify); err != nil {
		return err
	}
	_, err = goods.Remove(ctx, upgrade.ID, 1, notify)
	return err
}

// packUnits is the content count of amount packs of size perPack
func packUnits(pack *domain.VirtualItem, perPack, amount int) (int, error) {
	if perPack > 0 && amount > math.MaxInt/perPack {
		return 0, fmt.Errorf("%w: %d of pack %s overflows", domain.ErrInvalidInput, amount, pack.ID)
	}
	return perPack * amount, nil
}
