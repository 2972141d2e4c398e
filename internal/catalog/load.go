package catalog

import (
	"errors"
	"fmt"

	"github.com/osse101/vstore/internal/domain"
)

// Catalog sections, in load order
const (
	SectionCurrencies    = "currencies"
	SectionCurrencyPacks = "currencyPacks"
	SectionSingleUse     = "goods.singleUse"
	SectionLifetime      = "goods.lifetime"
	SectionEquippable    = "goods.equippable"
	SectionGoodPacks     = "goods.goodPacks"
	SectionUpgrades      = "goods.goodUpgrades"
	SectionCategories    = "categories"
)

// LoadError reports the entity that stopped a catalog load. Everything
// loaded before it stays in the returned catalog.
type LoadError struct {
	Section string
	Index   int
	ItemID  string
	Err     error
}

func (e *LoadError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("catalog %s[%d] %q: %v", e.Section, e.Index, e.ItemID, e.Err)
	}
	return fmt.Sprintf("catalog %s[%d]: %v", e.Section, e.Index, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load builds a catalog from a document. Currencies load first, then
// currency packs, then goods (single-use, lifetime, equippable, packs,
// upgrades) and finally categories. Each entity may only reference entities
// loaded before it, except an upgrade's next link which is checked once all
// upgrades are in. The first invalid entity stops the load: the catalog
// holding the valid prefix is returned along with a *LoadError.
func Load(doc *Document) (*Catalog, error) {
	l := &loader{c: New(), declaredNext: make(map[string]string)}
	if doc == nil {
		return l.c, &LoadError{Err: fmt.Errorf("%w: nil catalog document", domain.ErrInvalidInput)}
	}
	steps := []func(*Document) error{
		l.loadCurrencies,
		l.loadCurrencyPacks,
		l.loadSingleUse,
		l.loadLifetime,
		l.loadEquippable,
		l.loadGoodPacks,
		l.loadUpgrades,
		l.checkUpgradeLinks,
		l.loadCategories,
	}
	for _, step := range steps {
		if err := step(doc); err != nil {
			return l.c, err
		}
	}
	return l.c, nil
}

type loader struct {
	c *Catalog
	// next ids as written in the document, checked after all upgrades load
	declaredNext map[string]string
}

func fail(section string, index int, itemID string, err error) error {
	return &LoadError{Section: section, Index: index, ItemID: itemID, Err: err}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (l *loader) loadCurrencies(doc *Document) error {
	for i, d := range doc.Currencies {
		item := d.item(domain.KindCurrency)
		if err := l.checkID(item.ID); err != nil {
			return fail(SectionCurrencies, i, d.ItemID, err)
		}
		l.add(item)
		l.c.currencies = append(l.c.currencies, item)
	}
	return nil
}

func (l *loader) loadCurrencyPacks(doc *Document) error {
	for i, d := range doc.CurrencyPacks {
		item := d.item(domain.KindCurrencyPack)
		item.CurrencyID = d.CurrencyID
		item.CurrencyAmount = d.CurrencyAmount
		err := l.checkID(item.ID)
		if err == nil {
			err = l.checkCurrencyTarget(item)
		}
		if err == nil {
			item.Purchase, err = l.purchase(item.ID, d.Purchasable)
		}
		if err != nil {
			return fail(SectionCurrencyPacks, i, d.ItemID, err)
		}
		l.add(item)
		l.c.currencyPacks = append(l.c.currencyPacks, item)
	}
	return nil
}

func (l *loader) loadSingleUse(doc *Document) error {
	return l.loadPlainGoods(SectionSingleUse, domain.KindSingleUse, doc.Goods.SingleUse)
}

// Non-consumable items of older catalogs are owned-once goods, so they load
// with the lifetime goods
func (l *loader) loadLifetime(doc *Document) error {
	if err := l.loadPlainGoods(SectionLifetime, domain.KindLifetime, doc.Goods.Lifetime); err != nil {
		return err
	}
	return l.loadPlainGoods("nonConsumables", domain.KindLifetime, doc.NonConsumables)
}

func (l *loader) loadPlainGoods(section string, kind domain.ItemKind, docs []GoodDoc) error {
	for i, d := range docs {
		item, err := l.good(d, kind)
		if err != nil {
			return fail(section, i, d.ItemID, err)
		}
		l.addGood(item)
	}
	return nil
}

func (l *loader) loadEquippable(doc *Document) error {
	for i, d := range doc.Goods.Equippable {
		item, err := l.good(d.GoodDoc, domain.KindEquippable)
		if err == nil {
			item.EquipMode, err = parseEquipMode(d.Equipping)
		}
		if err != nil {
			return fail(SectionEquippable, i, d.ItemID, err)
		}
		l.addGood(item)
	}
	return nil
}

func (l *loader) loadGoodPacks(doc *Document) error {
	for i, d := range doc.Goods.GoodPacks {
		item, err := l.good(d.GoodDoc, domain.KindSingleUsePack)
		if err == nil {
			item.GoodID = d.GoodID
			item.GoodAmount = d.GoodAmount
			err = l.checkPackTarget(item)
		}
		if err != nil {
			return fail(SectionGoodPacks, i, d.ItemID, err)
		}
		l.addGood(item)
	}
	return nil
}

// loadUpgrades requires each good's upgrades to appear in chain order: the
// first has no previous upgrade and every later one names the current tail
func (l *loader) loadUpgrades(doc *Document) error {
	for i, d := range doc.Goods.Upgrades {
		item, err := l.good(d.GoodDoc, domain.KindUpgrade)
		if err == nil {
			item.GoodID = d.GoodID
			item.PrevID = d.PrevID
			err = l.checkUpgrade(item)
		}
		if err != nil {
			return fail(SectionUpgrades, i, d.ItemID, err)
		}
		if item.PrevID != "" {
			l.c.items[item.PrevID].NextID = item.ID
		}
		l.addGood(item)
		l.c.upgrades[item.GoodID] = append(l.c.upgrades[item.GoodID], item)
		if d.NextID != "" {
			l.declaredNext[item.ID] = d.NextID
		}
	}
	return nil
}

// checkUpgradeLinks verifies every declared next link was satisfied by the
// upgrade that followed it
func (l *loader) checkUpgradeLinks(doc *Document) error {
	for i, d := range doc.Goods.Upgrades {
		want, ok := l.declaredNext[d.ItemID]
		if !ok {
			continue
		}
		if got := l.c.items[d.ItemID].NextID; got != want {
			return fail(SectionUpgrades, i, d.ItemID,
				fmt.Errorf("%w: next upgrade %s is not linked back to %s", domain.ErrItemNotFound, want, d.ItemID))
		}
	}
	return nil
}

func (l *loader) loadCategories(doc *Document) error {
	names := make(map[string]bool, len(doc.Categories))
	for i, d := range doc.Categories {
		if d.Name == "" {
			return fail(SectionCategories, i, "", invalid("category name is required"))
		}
		if names[d.Name] {
			return fail(SectionCategories, i, "", invalid("duplicate category %q", d.Name))
		}
		cat := &domain.VirtualCategory{Name: d.Name, GoodIDs: append([]string(nil), d.GoodIDs...)}
		for _, goodID := range cat.GoodIDs {
			if _, err := l.c.Good(goodID); err != nil {
				return fail(SectionCategories, i, goodID, err)
			}
			if other, ok := l.c.goodCategory[goodID]; ok {
				return fail(SectionCategories, i, goodID, invalid("good already listed in category %q", other.Name))
			}
		}
		names[d.Name] = true
		for _, goodID := range cat.GoodIDs {
			l.c.goodCategory[goodID] = cat
		}
		l.c.categories = append(l.c.categories, cat)
	}
	return nil
}

func (l *loader) good(d GoodDoc, kind domain.ItemKind) (*domain.VirtualItem, error) {
	item := d.item(kind)
	if err := l.checkID(item.ID); err != nil {
		return nil, err
	}
	purchase, err := l.purchase(item.ID, d.Purchasable)
	if err != nil {
		return nil, err
	}
	item.Purchase = purchase
	return item, nil
}

func (l *loader) checkID(itemID string) error {
	if itemID == "" {
		return invalid("item id is required")
	}
	if _, exists := l.c.items[itemID]; exists {
		return invalid("duplicate item id %s", itemID)
	}
	return nil
}

func (l *loader) checkCurrencyTarget(item *domain.VirtualItem) error {
	if item.CurrencyAmount <= 0 {
		return invalid("currency amount must be positive, got %d", item.CurrencyAmount)
	}
	target, err := l.c.Item(item.CurrencyID)
	if err != nil {
		return err
	}
	if !target.IsCurrency() {
		return fmt.Errorf("%w: pack target %s is not a currency", domain.ErrWrongItemType, target.ID)
	}
	return nil
}

func (l *loader) checkPackTarget(item *domain.VirtualItem) error {
	if item.GoodAmount <= 0 {
		return invalid("good amount must be positive, got %d", item.GoodAmount)
	}
	target, err := l.c.Good(item.GoodID)
	if err != nil {
		return err
	}
	if target.Kind != domain.KindSingleUse {
		return fmt.Errorf("%w: pack target %s is not a single-use good", domain.ErrWrongItemType, target.ID)
	}
	return nil
}

func (l *loader) checkUpgrade(item *domain.VirtualItem) error {
	target, err := l.c.Good(item.GoodID)
	if err != nil {
		return err
	}
	if target.IsUpgrade() {
		return fmt.Errorf("%w: upgrade target %s is itself an upgrade", domain.ErrWrongItemType, target.ID)
	}
	chain := l.c.upgrades[item.GoodID]
	if item.PrevID == "" {
		if len(chain) > 0 {
			return invalid("good %s already has a first upgrade %s", item.GoodID, chain[0].ID)
		}
		return nil
	}
	if len(chain) == 0 || chain[len(chain)-1].ID != item.PrevID {
		if _, err := l.c.Upgrade(item.PrevID); err != nil {
			return err
		}
		return invalid("previous upgrade %s is not the last upgrade of %s", item.PrevID, item.GoodID)
	}
	return nil
}

// purchase converts a purchasable block; virtual-item prices must name an
// item that is already loaded
func (l *loader) purchase(itemID string, p *PurchasableDoc) (*domain.PurchaseType, error) {
	pt, err := p.purchaseType()
	if err != nil {
		return nil, invalid("%v", err)
	}
	if pt == nil {
		return nil, nil
	}
	switch pt.Kind {
	case domain.PurchaseWithVirtualItem:
		if pt.ItemID == itemID {
			return nil, invalid("item %s cannot be priced in itself", itemID)
		}
		if _, err := l.c.Item(pt.ItemID); err != nil {
			return nil, err
		}
	case domain.PurchaseWithMarket:
		if other, exists := l.c.byProductID[pt.Market.ProductID]; exists {
			return nil, invalid("product id %s already sells %s", pt.Market.ProductID, other.ID)
		}
	}
	return pt, nil
}

func (l *loader) add(item *domain.VirtualItem) {
	l.c.items[item.ID] = item
	if item.Purchase != nil && item.Purchase.Kind == domain.PurchaseWithMarket {
		l.c.byProductID[item.Purchase.Market.ProductID] = item
	}
}

func (l *loader) addGood(item *domain.VirtualItem) {
	l.add(item)
	l.c.goods = append(l.c.goods, item)
}

func parseEquipMode(s string) (domain.EquipMode, error) {
	switch domain.EquipMode(s) {
	case "", domain.EquipLocal:
		return domain.EquipLocal, nil
	case domain.EquipCategory, domain.EquipGlobal:
		return domain.EquipMode(s), nil
	}
	return "", invalid("unknown equipping mode %q", s)
}

// IsLoadError reports whether err came from a partial catalog load
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
