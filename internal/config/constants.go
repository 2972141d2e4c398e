package config

const (
	// Configuration file paths
	ConfigPathStoreAssets = "configs/store_assets.json"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Market modes
const (
	MarketSimulated = "simulated"
	MarketDisabled  = "disabled"
)
