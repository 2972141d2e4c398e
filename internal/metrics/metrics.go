package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Ledger Metrics
var (
	UnitsCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsCredited,
			Help: HelpTextUnitsCredited,
		},
		[]string{LabelKind, LabelItem},
	)

	UnitsDebited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsDebited,
			Help: HelpTextUnitsDebited,
		},
		[]string{LabelKind, LabelItem},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	MarketOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketOutcomes,
			Help: HelpTextMarketOutcomes,
		},
		[]string{LabelOutcome},
	)

	GoodsEquipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsEquipped,
			Help: HelpTextGoodsEquipped,
		},
		[]string{LabelItem},
	)

	GoodsUnequipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsUnequipped,
			Help: HelpTextGoodsUnequipped,
		},
		[]string{LabelItem},
	)

	GoodsUpgraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsUpgraded,
			Help: HelpTextGoodsUpgraded,
		},
		[]string{LabelItem},
	)

	ImportedEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameImportedEntries,
			Help: HelpTextImportedEntries,
		},
		[]string{LabelResult},
	)

	CurrencyBalances = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameCurrencyBalances,
			Help: HelpTextCurrencyBalances,
		},
		[]string{LabelItem},
	)
)
