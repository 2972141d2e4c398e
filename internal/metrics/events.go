package metrics

import (
	"context"

	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/logger"
)

// EventMetricsCollector subscribes to ledger events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// marketOutcomes maps market events to their outcome label
var marketOutcomes = map[event.Type]string{
	event.MarketPurchased:         "purchased",
	event.MarketPurchaseCancelled: "cancelled",
	event.MarketRefunded:          "refunded",
	event.MarketPurchaseFailed:    "failed",
}

// Register subscribes to all ledger events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CurrencyBalanceChanged,
		event.GoodBalanceChanged,
		event.GoodEquipped,
		event.GoodUnequipped,
		event.GoodUpgraded,
		event.ItemPurchaseStarted,
		event.ItemPurchased,
		event.MarketPurchaseStarted,
		event.MarketPurchased,
		event.MarketPurchaseCancelled,
		event.MarketRefunded,
		event.MarketPurchaseFailed,
		event.BalancesImported,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case event.BalanceChangedPayloadV1:
		kind := KindGood
		if evt.Type == event.CurrencyBalanceChanged {
			kind = KindCurrency
			CurrencyBalances.WithLabelValues(p.ItemID).Set(float64(p.Balance))
		}
		switch {
		case p.AmountAdded > 0:
			UnitsCredited.WithLabelValues(kind, p.ItemID).Add(float64(p.AmountAdded))
		case p.AmountAdded < 0:
			UnitsDebited.WithLabelValues(kind, p.ItemID).Add(float64(-p.AmountAdded))
		}

	case event.GoodPayloadV1:
		switch evt.Type {
		case event.GoodEquipped:
			GoodsEquipped.WithLabelValues(p.GoodID).Inc()
		case event.GoodUnequipped:
			GoodsUnequipped.WithLabelValues(p.GoodID).Inc()
		}

	case event.GoodUpgradedPayloadV1:
		GoodsUpgraded.WithLabelValues(p.GoodID).Inc()

	case event.ItemPurchasePayloadV1:
		if evt.Type == event.ItemPurchased {
			ItemsPurchased.WithLabelValues(p.ItemID).Inc()
		}

	case event.MarketPayloadV1:
		if outcome, ok := marketOutcomes[evt.Type]; ok {
			MarketOutcomes.WithLabelValues(outcome).Inc()
		}

	case event.BalancesImportedPayloadV1:
		ImportedEntries.WithLabelValues(ResultApplied).Add(float64(p.Applied))
		ImportedEntries.WithLabelValues(ResultSkipped).Add(float64(p.Skipped))

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
