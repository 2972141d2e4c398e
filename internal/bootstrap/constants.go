package bootstrap

import "time"

// Log messages for startup and shutdown
const (
	LogMsgStarting            = "Starting vstore"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgStoreOpened         = "Key-value store opened"
	LogMsgCatalogLoaded       = "Catalog loaded"
	LogMsgCatalogPartial      = "Catalog loaded with errors, continuing with the items read so far"
	LogMsgMarketDisabled      = "Market disabled, market purchases will be rejected"
	LogMsgMarketSimulated     = "Simulated market started"

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoppingMarket       = "Draining market worker pool"
	LogMsgStoreCloseFailed     = "Failed to close key-value store"
	LogMsgServerStopped        = "Server stopped"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 15 * time.Second
