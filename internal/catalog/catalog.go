// Package catalog holds the immutable registry of every virtual item the
// store knows about. A Catalog is built once by Load and only read afterwards,
// so its methods are safe for concurrent use without locking.
package catalog

import (
	"fmt"

	"github.com/osse101/vstore/internal/domain"
)

// Catalog resolves item ids to virtual items and answers structural queries.
// Returned items are shared and must not be modified by callers.
type Catalog struct {
	items         map[string]*domain.VirtualItem
	byProductID   map[string]*domain.VirtualItem
	currencies    []*domain.VirtualItem
	currencyPacks []*domain.VirtualItem
	goods         []*domain.VirtualItem
	categories    []*domain.VirtualCategory
	goodCategory  map[string]*domain.VirtualCategory
	upgrades      map[string][]*domain.VirtualItem
}

// New returns an empty catalog
func New() *Catalog {
	return &Catalog{
		items:        make(map[string]*domain.VirtualItem),
		byProductID:  make(map[string]*domain.VirtualItem),
		goodCategory: make(map[string]*domain.VirtualCategory),
		upgrades:     make(map[string][]*domain.VirtualItem),
	}
}

// Item resolves any virtual item by id
func (c *Catalog) Item(itemID string) (*domain.VirtualItem, error) {
	item, ok := c.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return item, nil
}

// Good resolves a virtual good of any subtype
func (c *Catalog) Good(itemID string) (*domain.VirtualItem, error) {
	return c.itemWith(itemID, (*domain.VirtualItem).IsGood, "virtual good")
}

// Equippable resolves an equippable good
func (c *Catalog) Equippable(itemID string) (*domain.VirtualItem, error) {
	return c.itemWith(itemID, (*domain.VirtualItem).IsEquippable, "equippable good")
}

// Upgrade resolves an upgrade good
func (c *Catalog) Upgrade(itemID string) (*domain.VirtualItem, error) {
	return c.itemWith(itemID, (*domain.VirtualItem).IsUpgrade, "upgrade good")
}

// Purchasable resolves an item that carries a purchase type
func (c *Catalog) Purchasable(itemID string) (*domain.VirtualItem, error) {
	item, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsPurchasable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPurchasable, itemID)
	}
	return item, nil
}

func (c *Catalog) itemWith(itemID string, has func(*domain.VirtualItem) bool, want string) (*domain.VirtualItem, error) {
	item, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}
	if !has(item) {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", domain.ErrWrongItemType, itemID, item.Kind, want)
	}
	return item, nil
}

// ItemByProductID resolves the market-purchasable item sold under a platform product id
func (c *Catalog) ItemByProductID(productID string) (*domain.VirtualItem, error) {
	item, ok := c.byProductID[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", domain.ErrItemNotFound, productID)
	}
	return item, nil
}

// FirstUpgrade returns the upgrade with no predecessor in the good's chain
func (c *Catalog) FirstUpgrade(goodID string) (*domain.VirtualItem, bool) {
	chain := c.upgrades[goodID]
	if len(chain) == 0 {
		return nil, false
	}
	return chain[0], true
}

// Upgrades returns the good's upgrade chain in chain order
func (c *Catalog) Upgrades(goodID string) []*domain.VirtualItem {
	chain := c.upgrades[goodID]
	out := make([]*domain.VirtualItem, len(chain))
	copy(out, chain)
	return out
}

// HasUpgrades reports whether the good has at least one upgrade
func (c *Catalog) HasUpgrades(goodID string) bool {
	return len(c.upgrades[goodID]) > 0
}

// CategoryOf returns the category listing the good, if any
func (c *Catalog) CategoryOf(goodID string) (*domain.VirtualCategory, bool) {
	cat, ok := c.goodCategory[goodID]
	return cat, ok
}

// Currencies returns a copy of the currency list in catalog order
func (c *Catalog) Currencies() []*domain.VirtualItem {
	return copyItems(c.currencies)
}

// CurrencyPacks returns a copy of the currency pack list in catalog order
func (c *Catalog) CurrencyPacks() []*domain.VirtualItem {
	return copyItems(c.currencyPacks)
}

// Goods returns a copy of the goods list in load order
func (c *Catalog) Goods() []*domain.VirtualItem {
	return copyItems(c.goods)
}

// Categories returns a copy of the category list
func (c *Catalog) Categories() []*domain.VirtualCategory {
	out := make([]*domain.VirtualCategory, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of resolvable items
func (c *Catalog) Len() int {
	return len(c.items)
}

func copyItems(in []*domain.VirtualItem) []*domain.VirtualItem {
	out := make([]*domain.VirtualItem, len(in))
	copy(out, in)
	return out
}
