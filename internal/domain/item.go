package domain

import (
	"github.com/shopspring/decimal"
)

// ItemKind identifies which concrete virtual item an entry is
type ItemKind string

const (
	KindCurrency      ItemKind = "currency"
	KindCurrencyPack  ItemKind = "currency_pack"
	KindSingleUse     ItemKind = "single_use"
	KindLifetime      ItemKind = "lifetime"
	KindEquippable    ItemKind = "equippable"
	KindSingleUsePack ItemKind = "single_use_pack"
	KindUpgrade       ItemKind = "upgrade"
)

// EquipMode controls which other goods are unequipped when a good is equipped
type EquipMode string

const (
	// EquipLocal goods are equipped independently of every other good
	EquipLocal EquipMode = "local"
	// EquipCategory allows one equipped good per category
	EquipCategory EquipMode = "category"
	// EquipGlobal allows one equipped good across all equippable goods
	EquipGlobal EquipMode = "global"
)

// PurchaseKind identifies how a purchasable item is paid for
type PurchaseKind string

const (
	PurchaseWithMarket      PurchaseKind = "market"
	PurchaseWithVirtualItem PurchaseKind = "virtual_item"
)

// MarketItem describes the platform store product behind a market purchase
type MarketItem struct {
	ProductID         string          `json:"product_id"`
	Price             decimal.Decimal `json:"price"`
	Consumable        bool            `json:"consumable"`
	MarketPrice       string          `json:"market_price,omitempty"`
	MarketTitle       string          `json:"market_title,omitempty"`
	MarketDescription string          `json:"market_description,omitempty"`
}

// PurchaseType is attached to every purchasable item.
// Market is set for PurchaseWithMarket, ItemID/Amount for PurchaseWithVirtualItem.
type PurchaseType struct {
	Kind   PurchaseKind `json:"kind"`
	Market *MarketItem  `json:"market,omitempty"`
	ItemID string       `json:"item_id,omitempty"`
	Amount int          `json:"amount,omitempty"`
}

// VirtualItem is a catalog entry. Kind decides which of the optional
// fields carry meaning:
//   - currency_pack: CurrencyID, CurrencyAmount
//   - equippable: EquipMode
//   - single_use_pack: GoodID, GoodAmount
//   - upgrade: GoodID, PrevID, NextID
type VirtualItem struct {
	ID          string        `json:"item_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Kind        ItemKind      `json:"kind"`
	Purchase    *PurchaseType `json:"purchase,omitempty"`

	CurrencyID     string `json:"currency_id,omitempty"`
	CurrencyAmount int    `json:"currency_amount,omitempty"`

	EquipMode EquipMode `json:"equip_mode,omitempty"`

	GoodID     string `json:"good_id,omitempty"`
	GoodAmount int    `json:"good_amount,omitempty"`
	PrevID     string `json:"prev_id,omitempty"`
	NextID     string `json:"next_id,omitempty"`
}

// IsCurrency reports whether the item's balance lives in currency storage
func (i *VirtualItem) IsCurrency() bool {
	return i.Kind == KindCurrency
}

// IsGood reports whether the item's balance lives in goods storage
func (i *VirtualItem) IsGood() bool {
	switch i.Kind {
	case KindSingleUse, KindLifetime, KindEquippable, KindSingleUsePack, KindUpgrade:
		return true
	}
	return false
}

// IsLifetime reports whether the item can be owned at most once.
// Equippable goods and upgrades are lifetime goods.
func (i *VirtualItem) IsLifetime() bool {
	switch i.Kind {
	case KindLifetime, KindEquippable, KindUpgrade:
		return true
	}
	return false
}

// IsEquippable reports whether the item carries equip state
func (i *VirtualItem) IsEquippable() bool {
	return i.Kind == KindEquippable
}

// IsUpgrade reports whether the item is a link in an upgrade chain
func (i *VirtualItem) IsUpgrade() bool {
	return i.Kind == KindUpgrade
}

// IsPurchasable reports whether the item has a purchase type attached
func (i *VirtualItem) IsPurchasable() bool {
	return i.Purchase != nil
}

// VirtualCategory groups goods for display and for EquipCategory scoping
type VirtualCategory struct {
	Name    string   `json:"name"`
	GoodIDs []string `json:"goods_item_ids"`
}

// Contains reports whether the category lists the given good
func (c *VirtualCategory) Contains(goodID string) bool {
	for _, id := range c.GoodIDs {
		if id == goodID {
			return true
		}
	}
	return false
}
