package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/logger"
)

// SkippedEntry is one snapshot entry that could not be fully applied
type SkippedEntry struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// ImportReport summarizes a balance import. An entry whose balance was
// written but whose equip state or upgrade was rejected counts as skipped.
type ImportReport struct {
	Applied int            `json:"applied"`
	Skipped []SkippedEntry `json:"skipped,omitempty"`
}

func (r *ImportReport) skip(itemID, reason string, err error) {
	r.Skipped = append(r.Skipped, SkippedEntry{ItemID: itemID, Reason: reason, Error: err.Error()})
}

// ExportBalances snapshots every currency and good under one lock. Goods
// carry their equip flag when equippable and their current upgrade when
// upgradeable. Packs hold no balance of their own and are left out.
func (s *service) ExportBalances(ctx context.Context) (domain.Balances, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.Balances)
	for _, cur := range s.catalog.Currencies() {
		n, err := s.storage.Currencies.Balance(ctx, cur.ID)
		if err != nil {
			return nil, err
		}
		out[cur.ID] = domain.BalanceRecord{Balance: n}
	}

	goods := s.storage.Goods
	for _, good := range s.catalog.Goods() {
		if good.Kind == domain.KindSingleUsePack {
			continue
		}
		n, err := goods.Balance(ctx, good.ID)
		if err != nil {
			return nil, err
		}
		rec := domain.BalanceRecord{Balance: n}
		if good.IsEquippable() {
			equipped, err := goods.IsEquipped(ctx, good.ID)
			if err != nil {
				return nil, err
			}
			rec.Equipped = &equipped
		}
		if s.catalog.HasUpgrades(good.ID) {
			current, err := goods.CurrentUpgrade(ctx, good.ID)
			if err != nil {
				return nil, err
			}
			var upgradeID string
			if current != nil {
				upgradeID = current.ID
			}
			rec.CurrentUpgrade = &upgradeID
		}
		out[good.ID] = rec
	}
	return out, nil
}

// ImportBalances replaces the persisted state with snapshot. All currency
// and good keys are cleared first, then entries are replayed in item id
// order without notifications. Rejected entries are logged and reported,
// never fatal. Storage failures and panics abort the import and are
// returned as an error, leaving whatever was replayed so far.
func (s *service) ImportBalances(ctx context.Context, snapshot domain.Balances) (report *ImportReport, err error) {
	log := logger.FromContext(ctx)
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil balance snapshot", domain.ErrInvalidInput)
	}
	log.Info(LogMsgImportStarted, "entries", len(snapshot))

	report = &ImportReport{}
	err = s.mutate(ctx, func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(LogMsgImportPanicked, "panic", fmt.Sprint(r))
				err = fmt.Errorf("balance import panicked: %v", r)
			}
		}()
		if err := s.storage.ClearCurrentState(ctx); err != nil {
			return err
		}
		ids := make([]string, 0, len(snapshot))
		for id := range snapshot {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if err := s.importEntry(ctx, report, id, snapshot[id]); err != nil {
				return err
			}
		}
		s.publish(ctx, event.NewBalancesImportedEvent(report.Applied, len(report.Skipped)))
		return nil
	})
	if err != nil {
		log.Error(LogMsgImportFailed, "error", err, "applied", report.Applied)
		return nil, err
	}
	log.Info(LogMsgImportCompleted, "applied", report.Applied, "skipped", len(report.Skipped))
	return report, nil
}

// importEntry applies one record. Domain rejections are recorded in the
// report; anything else is returned and aborts the import.
func (s *service) importEntry(ctx context.Context, report *ImportReport, itemID string, rec domain.BalanceRecord) error {
	log := logger.FromContext(ctx)
	skip := func(reason string, err error) error {
		if !isDomainRejection(err) {
			return err
		}
		log.Warn(LogMsgImportEntrySkipped, "item_id", itemID, "reason", reason, "error", err)
		report.skip(itemID, reason, err)
		return nil
	}

	item, err := s.catalog.Item(itemID)
	if err != nil {
		return skip(SkipReasonUnknownItem, err)
	}
	if rec.Balance < 0 {
		return skip(SkipReasonInvalidBalance, fmt.Errorf("%w: balance %d", domain.ErrInvalidInput, rec.Balance))
	}
	st, err := s.storage.Storage(item)
	if err != nil {
		return skip(SkipReasonNoBalance, err)
	}
	if _, err := st.SetBalance(ctx, item.ID, rec.Balance, false); err != nil {
		return skip(SkipReasonInvalidBalance, err)
	}

	if rec.Equipped != nil {
		if err := s.importEquipped(ctx, item, *rec.Equipped); err != nil {
			return skip(SkipReasonEquip, err)
		}
	}
	if rec.CurrentUpgrade != nil && *rec.CurrentUpgrade != "" {
		if err := s.importUpgrade(ctx, item, *rec.CurrentUpgrade); err != nil {
			return skip(SkipReasonUpgrade, err)
		}
	}
	report.Applied++
	return nil
}

// importEquipped restores the flag as recorded. Other goods in the equip
// scope are left alone since the snapshot carries their own flags.
func (s *service) importEquipped(ctx context.Context, item *domain.VirtualItem, equipped bool) error {
	if !item.IsEquippable() {
		return fmt.Errorf("%w: %s is not equippable", domain.ErrWrongItemType, item.ID)
	}
	goods := s.storage.Goods
	if !equipped {
		return goods.Unequip(ctx, item.ID, false)
	}
	balance, err := goods.Balance(ctx, item.ID)
	if err != nil {
		return err
	}
	if balance < 1 {
		return fmt.Errorf("%w: %s is not owned", domain.ErrNotEnoughGoods, item.ID)
	}
	return goods.Equip(ctx, item.ID, false)
}

// importUpgrade grants the upgrade for free, as ForceUpgrade does
func (s *service) importUpgrade(ctx context.Context, good *domain.VirtualItem, upgradeID string) error {
	upgrade, err := s.catalog.Upgrade(upgradeID)
	if err != nil {
		return err
	}
	if upgrade.GoodID != good.ID {
		return fmt.Errorf("%w: %s upgrades %s, not %s", domain.ErrWrongItemType, upgrade.ID, upgrade.GoodID, good.ID)
	}
	return s.give(ctx, upgrade, 1, false)
}

// isDomainRejection reports whether err is a business-rule refusal rather
// than an infrastructure failure
func isDomainRejection(err error) bool {
	for _, target := range []error{
		domain.ErrItemNotFound,
		domain.ErrWrongItemType,
		domain.ErrInsufficientFunds,
		domain.ErrNotEnoughGoods,
		domain.ErrInvalidInput,
		domain.ErrNotPurchasable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
