package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/vstore/internal/event"
)

func TestEventMetricsCollector_BalanceChanges(t *testing.T) {
	// ARRANGE
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()
	credited := testutil.ToFloat64(UnitsCredited.WithLabelValues(KindCurrency, "metrics_gold"))
	debited := testutil.ToFloat64(UnitsDebited.WithLabelValues(KindGood, "metrics_potion"))

	// ACT
	require.NoError(t, bus.Publish(ctx, event.NewCurrencyBalanceChangedEvent("metrics_gold", 30, 30)))
	require.NoError(t, bus.Publish(ctx, event.NewGoodBalanceChangedEvent("metrics_potion", 1, -2)))

	// ASSERT
	assert.Equal(t, credited+30, testutil.ToFloat64(UnitsCredited.WithLabelValues(KindCurrency, "metrics_gold")))
	assert.Equal(t, debited+2, testutil.ToFloat64(UnitsDebited.WithLabelValues(KindGood, "metrics_potion")))
	assert.Equal(t, float64(30), testutil.ToFloat64(CurrencyBalances.WithLabelValues("metrics_gold")))
}

func TestEventMetricsCollector_PurchasesAndMarket(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()
	purchased := testutil.ToFloat64(ItemsPurchased.WithLabelValues("metrics_sword"))
	refunded := testutil.ToFloat64(MarketOutcomes.WithLabelValues("refunded"))
	started := testutil.ToFloat64(ItemsPurchased.WithLabelValues("metrics_started"))

	require.NoError(t, bus.Publish(ctx, event.NewItemPurchaseStartedEvent("metrics_started")))
	require.NoError(t, bus.Publish(ctx, event.NewItemPurchasedEvent("metrics_sword", "")))
	require.NoError(t, bus.Publish(ctx, event.NewMarketEvent(event.MarketRefunded, event.MarketPayloadV1{ItemID: "metrics_sword"})))

	assert.Equal(t, purchased+1, testutil.ToFloat64(ItemsPurchased.WithLabelValues("metrics_sword")))
	assert.Equal(t, started, testutil.ToFloat64(ItemsPurchased.WithLabelValues("metrics_started")), "started purchases are not counted")
	assert.Equal(t, refunded+1, testutil.ToFloat64(MarketOutcomes.WithLabelValues("refunded")))
}

func TestEventMetricsCollector_EquipAndUpgrade(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()
	equipped := testutil.ToFloat64(GoodsEquipped.WithLabelValues("metrics_hat"))
	unequipped := testutil.ToFloat64(GoodsUnequipped.WithLabelValues("metrics_hat"))
	upgraded := testutil.ToFloat64(GoodsUpgraded.WithLabelValues("metrics_oven"))

	require.NoError(t, c.HandleEvent(ctx, event.NewGoodEquippedEvent("metrics_hat")))
	require.NoError(t, c.HandleEvent(ctx, event.NewGoodUnequippedEvent("metrics_hat")))
	require.NoError(t, c.HandleEvent(ctx, event.NewGoodUnequippedEvent("metrics_hat")))
	require.NoError(t, c.HandleEvent(ctx, event.NewGoodUpgradedEvent("metrics_oven", "metrics_oven_2")))

	assert.Equal(t, equipped+1, testutil.ToFloat64(GoodsEquipped.WithLabelValues("metrics_hat")))
	assert.Equal(t, unequipped+2, testutil.ToFloat64(GoodsUnequipped.WithLabelValues("metrics_hat")))
	assert.Equal(t, upgraded+1, testutil.ToFloat64(GoodsUpgraded.WithLabelValues("metrics_oven")))
}

func TestEventMetricsCollector_Import(t *testing.T) {
	c := NewEventMetricsCollector()
	applied := testutil.ToFloat64(ImportedEntries.WithLabelValues(ResultApplied))
	skipped := testutil.ToFloat64(ImportedEntries.WithLabelValues(ResultSkipped))

	require.NoError(t, c.HandleEvent(context.Background(), event.NewBalancesImportedEvent(4, 1)))

	assert.Equal(t, applied+4, testutil.ToFloat64(ImportedEntries.WithLabelValues(ResultApplied)))
	assert.Equal(t, skipped+1, testutil.ToFloat64(ImportedEntries.WithLabelValues(ResultSkipped)))
}

func TestEventMetricsCollector_UnknownPayload(t *testing.T) {
	c := NewEventMetricsCollector()

	err := c.HandleEvent(context.Background(), event.Event{Type: "custom", Payload: map[string]interface{}{}})

	assert.NoError(t, err)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	// ARRANGE
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{itemID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{itemID}", "418"))

	// ACT
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/gems", nil))

	// ASSERT
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{itemID}", "418")))
}
