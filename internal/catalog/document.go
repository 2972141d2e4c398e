package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/osse101/vstore/internal/domain"
)

// Store-assets JSON values for purchaseType and equipping
const (
	docPurchaseMarket      = "market"
	docPurchaseVirtualItem = "virtualItem"
)

// Document is the declarative store-assets catalog, in the field layout the
// mobile store SDKs publish it with
type Document struct {
	Currencies     []CurrencyDoc     `json:"currencies"`
	CurrencyPacks  []CurrencyPackDoc `json:"currencyPacks"`
	Goods          GoodsDoc          `json:"goods"`
	Categories     []CategoryDoc     `json:"categories"`
	NonConsumables []GoodDoc         `json:"nonConsumables,omitempty"`
}

// GoodsDoc groups goods by subtype. Load walks the groups in field order.
type GoodsDoc struct {
	SingleUse  []GoodDoc       `json:"singleUse"`
	Lifetime   []GoodDoc       `json:"lifetime"`
	Equippable []EquippableDoc `json:"equippable"`
	GoodPacks  []GoodPackDoc   `json:"goodPacks"`
	Upgrades   []UpgradeDoc    `json:"goodUpgrades"`
}

// ItemDoc carries the fields every item shares
type ItemDoc struct {
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CurrencyDoc struct {
	ItemDoc
}

type PurchasableDoc struct {
	PurchaseType string         `json:"purchaseType"`
	MarketItem   *MarketItemDoc `json:"marketItem,omitempty"`
	ItemID       string         `json:"pvi_itemId,omitempty"`
	Amount       int            `json:"pvi_amount,omitempty"`
}

type MarketItemDoc struct {
	ProductID   string          `json:"productId"`
	Consumable  int             `json:"consumable"`
	Price       decimal.Decimal `json:"price"`
	MarketPrice string          `json:"marketPrice"`
	MarketTitle string          `json:"marketTitle"`
	MarketDesc  string          `json:"marketDesc"`
}

type CurrencyPackDoc struct {
	ItemDoc
	Purchasable    *PurchasableDoc `json:"purchasableItem,omitempty"`
	CurrencyAmount int             `json:"currency_amount"`
	CurrencyID     string          `json:"currency_itemId"`
}

type GoodDoc struct {
	ItemDoc
	Purchasable *PurchasableDoc `json:"purchasableItem,omitempty"`
}

type EquippableDoc struct {
	GoodDoc
	Equipping string `json:"equipping"`
}

type GoodPackDoc struct {
	GoodDoc
	GoodID     string `json:"good_itemId"`
	GoodAmount int    `json:"good_amount"`
}

type UpgradeDoc struct {
	GoodDoc
	GoodID string `json:"good_itemId"`
	PrevID string `json:"prev_itemId"`
	NextID string `json:"next_itemId"`
}

type CategoryDoc struct {
	Name    string   `json:"name"`
	GoodIDs []string `json:"goods_itemIds"`
}

// ParseDocument decodes a store-assets document. When validate is set the
// bytes are checked against the embedded store-assets schema first.
func ParseDocument(data []byte, validate bool) (*Document, error) {
	if validate {
		if err := ValidateDocument(data); err != nil {
			return nil, err
		}
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}
	return &doc, nil
}

// LoadFile reads, parses and loads a catalog document from disk. Like Load,
// it may return a partial catalog together with a *LoadError.
func LoadFile(path string, validate bool) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	doc, err := ParseDocument(data, validate)
	if err != nil {
		return nil, err
	}
	return Load(doc)
}

func (d ItemDoc) item(kind domain.ItemKind) *domain.VirtualItem {
	return &domain.VirtualItem{
		ID:          d.ItemID,
		Name:        d.Name,
		Description: d.Description,
		Kind:        kind,
	}
}

func (p *PurchasableDoc) purchaseType() (*domain.PurchaseType, error) {
	if p == nil {
		return nil, nil
	}
	switch p.PurchaseType {
	case docPurchaseMarket:
		if p.MarketItem == nil || p.MarketItem.ProductID == "" {
			return nil, fmt.Errorf("market purchase requires a product id")
		}
		if p.MarketItem.Price.IsNegative() {
			return nil, fmt.Errorf("market price %s is negative", p.MarketItem.Price)
		}
		m := p.MarketItem
		return &domain.PurchaseType{
			Kind: domain.PurchaseWithMarket,
			Market: &domain.MarketItem{
				ProductID:         m.ProductID,
				Price:             m.Price,
				Consumable:        m.Consumable != 0,
				MarketPrice:       m.MarketPrice,
				MarketTitle:       m.MarketTitle,
				MarketDescription: m.MarketDesc,
			},
		}, nil
	case docPurchaseVirtualItem:
		if p.ItemID == "" {
			return nil, fmt.Errorf("virtual item purchase requires a price item")
		}
		if p.Amount < 0 {
			return nil, fmt.Errorf("virtual item price %d is negative", p.Amount)
		}
		return &domain.PurchaseType{
			Kind:   domain.PurchaseWithVirtualItem,
			ItemID: p.ItemID,
			Amount: p.Amount,
		}, nil
	default:
		return nil, fmt.Errorf("unknown purchase type %q", p.PurchaseType)
	}
}
