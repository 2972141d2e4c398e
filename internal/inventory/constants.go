package inventory

// ==================== Log Messages ====================

// Operation log messages
const (
	LogMsgBuyCalled            = "Buy called"
	LogMsgItemPurchased        = "Item purchased"
	LogMsgPriceRefunded        = "Purchased item could not be credited, price refunded"
	LogMsgRefundPriceFailed    = "Purchased item could not be credited and the price refund failed"
	LogMsgLifetimeAlreadyOwned = "Lifetime good already owned, purchase skipped"
	LogMsgUpgradeOutOfOrder    = "Upgrade is not next in chain, purchase skipped"
	LogMsgMarketPurchaseSent   = "Market purchase handed to market client"
	LogMsgGiveCalled           = "Give called"
	LogMsgTakeCalled           = "Take called"
	LogMsgEquipCalled          = "Equip called"
	LogMsgUnequipCalled        = "Unequip called"
	LogMsgUpgradeAtChainEnd    = "Good is at its last upgrade, nothing to do"
	LogMsgForceUpgradeSkipped  = "Force upgrade skipped"
	LogMsgUpgradesRemoved      = "Upgrades removed"
	LogMsgPublishFailed        = "Failed to publish inventory event"
)

// Market completion log messages
const (
	LogMsgMarketPurchased = "Market purchase completed"
	LogMsgMarketCancelled = "Market purchase cancelled"
	LogMsgMarketRefunded  = "Market purchase refunded"
	LogMsgRefundNotTaken  = "Refunded unit was already spent, balance left unchanged"
	LogMsgMarketFailed    = "Market purchase failed"
)

// Reconciliation log messages
const (
	LogMsgImportStarted      = "Balance import started"
	LogMsgImportCompleted    = "Balance import completed"
	LogMsgImportFailed       = "Balance import failed"
	LogMsgImportEntrySkipped = "Balance import entry skipped"
	LogMsgImportPanicked     = "Balance import panicked"
)

// Import skip reasons
const (
	SkipReasonUnknownItem    = "unknown_item"
	SkipReasonNoBalance      = "no_balance"
	SkipReasonInvalidBalance = "invalid_balance"
	SkipReasonEquip          = "equip_failed"
	SkipReasonUpgrade        = "upgrade_failed"
)
