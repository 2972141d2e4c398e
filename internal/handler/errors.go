package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
)

// Success messages for API responses
const (
	MsgItemBought        = "Purchase accepted"
	MsgItemGiven         = "Item given"
	MsgItemTaken         = "Item taken"
	MsgGoodEquipped      = "Good equipped"
	MsgGoodUnequipped    = "Good unequipped"
	MsgGoodUpgraded      = "Good upgraded"
	MsgUpgradesRemoved   = "Upgrades removed"
	MsgUpgradeForced     = "Upgrade granted"
	MsgMarketCallbackAck = "Market callback applied"
	MsgCachePurged       = "Cache purged"
	MsgCacheDisabled     = "No cache configured"
)

// Log messages
const (
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgOperationFailed  = "Ledger operation failed"
	LogMsgDecodeFailed     = "Failed to decode %s request"
	LogMsgRequestDecoded   = "%s request decoded"
	LogMsgMarketCallback   = "Market callback received"
	LogMsgBalancesImported = "Balances imported through API"
	LogMsgCachePurged      = "Read cache purged through API"
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreFailed    = "kv store ping failed"
)

// URL parameters
const (
	ParamItemID = "itemID"
)
