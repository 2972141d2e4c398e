package storage

// Key layout. Every key is <prefix><item id><suffix>.
const (
	CurrencyPrefix      = "currency."
	GoodPrefix          = "good."
	NonConsumablePrefix = "nonconsumable."

	balanceSuffix        = ".balance"
	equippedSuffix       = ".equipped"
	currentUpgradeSuffix = ".currentUpgrade"

	equippedValue = "equipped"
)

// Log messages
const (
	LogMsgUnparsableBalance = "Stored balance is not a number, reading as zero"
	LogMsgNegativeBalance   = "Stored balance is negative, reading as zero"
	LogMsgUnknownUpgrade    = "Stored current upgrade does not resolve, reading as none"
	LogMsgPublishFailed     = "Failed to publish storage notification"
	LogMsgClearedState      = "Cleared persisted economy state"
)
