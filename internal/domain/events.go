package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "good.equipped")
const (
	// EventTypeCurrencyBalanceChanged is published after a currency balance write
	EventTypeCurrencyBalanceChanged = "currency.balance_changed"

	// EventTypeGoodBalanceChanged is published after a good balance write
	EventTypeGoodBalanceChanged = "good.balance_changed"

	// EventTypeGoodEquipped is published after a good is equipped
	EventTypeGoodEquipped = "good.equipped"

	// EventTypeGoodUnequipped is published after a good is unequipped
	EventTypeGoodUnequipped = "good.unequipped"

	// EventTypeGoodUpgraded is published when a good's current upgrade changes
	EventTypeGoodUpgraded = "good.upgraded"

	// EventTypeItemPurchaseStarted is published before a virtual-item purchase deducts funds
	EventTypeItemPurchaseStarted = "item.purchase_started"

	// EventTypeItemPurchased is published once a purchased item has been credited
	EventTypeItemPurchased = "item.purchased"

	// EventTypeMarketPurchaseStarted is published before handing a purchase to the market client
	EventTypeMarketPurchaseStarted = "market.purchase_started"

	// EventTypeMarketPurchased is published when the market reports a completed purchase
	EventTypeMarketPurchased = "market.purchased"

	// EventTypeMarketPurchaseCancelled is published when the user cancels in the market flow
	EventTypeMarketPurchaseCancelled = "market.purchase_cancelled"

	// EventTypeMarketRefunded is published when the market reports a refund
	EventTypeMarketRefunded = "market.refunded"

	// EventTypeMarketPurchaseFailed is published when the market reports an error
	EventTypeMarketPurchaseFailed = "market.purchase_failed"

	// EventTypeBalancesImported is published after a bulk balance reconciliation
	EventTypeBalancesImported = "balances.imported"
)
