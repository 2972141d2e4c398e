package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/vstore/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Ledger event types
const (
	CurrencyBalanceChanged  Type = domain.EventTypeCurrencyBalanceChanged
	GoodBalanceChanged      Type = domain.EventTypeGoodBalanceChanged
	GoodEquipped            Type = domain.EventTypeGoodEquipped
	GoodUnequipped          Type = domain.EventTypeGoodUnequipped
	GoodUpgraded            Type = domain.EventTypeGoodUpgraded
	ItemPurchaseStarted     Type = domain.EventTypeItemPurchaseStarted
	ItemPurchased           Type = domain.EventTypeItemPurchased
	MarketPurchaseStarted   Type = domain.EventTypeMarketPurchaseStarted
	MarketPurchased         Type = domain.EventTypeMarketPurchased
	MarketPurchaseCancelled Type = domain.EventTypeMarketPurchaseCancelled
	MarketRefunded          Type = domain.EventTypeMarketRefunded
	MarketPurchaseFailed    Type = domain.EventTypeMarketPurchaseFailed
	BalancesImported        Type = domain.EventTypeBalancesImported
)

// Typed event payloads for type safety

// BalanceChangedPayloadV1 is the payload for currency and good balance events
type BalanceChangedPayloadV1 struct {
	ItemID      string `json:"item_id"`
	Balance     int    `json:"balance"`
	AmountAdded int    `json:"amount_added"`
}

// GoodPayloadV1 is the payload for equip and unequip events
type GoodPayloadV1 struct {
	GoodID string `json:"good_id"`
}

// GoodUpgradedPayloadV1 is the payload for upgrade events.
// UpgradeID is empty when the good's upgrades were removed.
type GoodUpgradedPayloadV1 struct {
	GoodID    string `json:"good_id"`
	UpgradeID string `json:"upgrade_id,omitempty"`
}

// ItemPurchasePayloadV1 is the payload for purchase lifecycle events
type ItemPurchasePayloadV1 struct {
	ItemID  string `json:"item_id"`
	Payload string `json:"payload,omitempty"`
}

// MarketPayloadV1 is the payload for market purchase lifecycle events
type MarketPayloadV1 struct {
	ItemID        string `json:"item_id"`
	ProductID     string `json:"product_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	Payload       string `json:"payload,omitempty"`
	Receipt       string `json:"receipt,omitempty"`
	Message       string `json:"message,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// BalancesImportedPayloadV1 is the payload for bulk reconciliation events
type BalancesImportedPayloadV1 struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// Type-safe event constructors

// NewCurrencyBalanceChangedEvent creates a currency balance event
func NewCurrencyBalanceChangedEvent(currencyID string, balance, amountAdded int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CurrencyBalanceChanged,
		Payload: BalanceChangedPayloadV1{ItemID: currencyID, Balance: balance, AmountAdded: amountAdded},
	}
}

// NewGoodBalanceChangedEvent creates a good balance event
func NewGoodBalanceChangedEvent(goodID string, balance, amountAdded int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GoodBalanceChanged,
		Payload: BalanceChangedPayloadV1{ItemID: goodID, Balance: balance, AmountAdded: amountAdded},
	}
}

// NewGoodEquippedEvent creates an equip event
func NewGoodEquippedEvent(goodID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GoodEquipped,
		Payload: GoodPayloadV1{GoodID: goodID},
	}
}

// NewGoodUnequippedEvent creates an unequip event
func NewGoodUnequippedEvent(goodID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GoodUnequipped,
		Payload: GoodPayloadV1{GoodID: goodID},
	}
}

// NewGoodUpgradedEvent creates an upgrade event
func NewGoodUpgradedEvent(goodID, upgradeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GoodUpgraded,
		Payload: GoodUpgradedPayloadV1{GoodID: goodID, UpgradeID: upgradeID},
	}
}

// NewItemPurchaseStartedEvent creates a purchase started event
func NewItemPurchaseStartedEvent(itemID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemPurchaseStarted,
		Payload: ItemPurchasePayloadV1{ItemID: itemID},
	}
}

// NewItemPurchasedEvent creates a purchase completed event
func NewItemPurchasedEvent(itemID, payload string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemPurchased,
		Payload: ItemPurchasePayloadV1{ItemID: itemID, Payload: payload},
	}
}

// NewMarketEvent creates one of the market lifecycle events
func NewMarketEvent(eventType Type, payload MarketPayloadV1) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
		Metadata: map[string]interface{}{
			"product_id": payload.ProductID,
		},
	}
}

// NewBalancesImportedEvent creates a reconciliation summary event
func NewBalancesImportedEvent(applied, skipped int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BalancesImported,
		Payload: BalancesImportedPayloadV1{Applied: applied, Skipped: skipped},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
