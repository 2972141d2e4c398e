package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Ledger metric names
const (
	MetricNameUnitsCredited    = "ledger_units_credited_total"
	MetricNameUnitsDebited     = "ledger_units_debited_total"
	MetricNameItemsPurchased   = "ledger_items_purchased_total"
	MetricNameMarketOutcomes   = "ledger_market_outcomes_total"
	MetricNameGoodsEquipped    = "ledger_goods_equipped_total"
	MetricNameGoodsUnequipped  = "ledger_goods_unequipped_total"
	MetricNameGoodsUpgraded    = "ledger_goods_upgraded_total"
	MetricNameImportedEntries  = "ledger_import_entries_total"
	MetricNameCurrencyBalances = "ledger_currency_balance"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Ledger metric help text
const (
	HelpTextUnitsCredited    = "Total units credited to balances"
	HelpTextUnitsDebited     = "Total units debited from balances"
	HelpTextItemsPurchased   = "Total number of completed purchases"
	HelpTextMarketOutcomes   = "Total number of market purchase outcomes"
	HelpTextGoodsEquipped    = "Total number of equip operations"
	HelpTextGoodsUnequipped  = "Total number of unequip operations"
	HelpTextGoodsUpgraded    = "Total number of current upgrade changes"
	HelpTextImportedEntries  = "Total number of balance import entries"
	HelpTextCurrencyBalances = "Last observed balance per currency"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelKind    = "kind"
	LabelItem    = "item"
	LabelOutcome = "outcome"
	LabelResult  = "result"
)

// Label values
const (
	KindCurrency   = "currency"
	KindGood       = "good"
	ResultApplied  = "applied"
	ResultSkipped  = "skipped"
	UnmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has an unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
