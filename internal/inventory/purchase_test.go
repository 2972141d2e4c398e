package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/market"
)

// =============================================================================
// Virtual item purchases
// =============================================================================

func TestBuy_GemsAndSwordScenario(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "gems", 5)

	// ACT / ASSERT
	err := f.svc.Buy(ctx, "sword", "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 5, f.balance(t, "gems"))
	assert.Zero(t, f.balance(t, "sword"))

	require.NoError(t, f.svc.Take(ctx, "gems", 5))
	f.give(t, "gems", 10)
	assert.Equal(t, 10, f.balance(t, "gems"))

	require.NoError(t, f.svc.Buy(ctx, "sword", ""))
	assert.Zero(t, f.balance(t, "gems"))
	assert.Equal(t, 1, f.balance(t, "sword"))
}

func TestBuy_InsufficientFundsLeavesBalances(t *testing.T) {
	f := newFixture(t)
	f.give(t, "gems", 9)
	f.give(t, "potion", 2)
	f.events.reset()

	err := f.svc.Buy(context.Background(), "potion", "")

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 9, f.balance(t, "gems"))
	assert.Equal(t, 2, f.balance(t, "potion"))
	assert.Equal(t, []event.Type{event.ItemPurchaseStarted}, f.events.types())
}

func TestBuy_LifetimeAlreadyOwnedIsNoop(t *testing.T) {
	f := newFixture(t)
	f.give(t, "gems", 30)
	require.NoError(t, f.svc.Buy(context.Background(), "sword", ""))
	f.events.reset()

	err := f.svc.Buy(context.Background(), "sword", "")

	require.NoError(t, err)
	assert.Equal(t, 1, f.balance(t, "sword"))
	assert.Equal(t, 20, f.balance(t, "gems"))
	assert.Empty(t, f.events.types())
}

func TestBuy_EventOrder(t *testing.T) {
	f := newFixture(t)
	f.give(t, "gems", 10)
	f.events.reset()

	require.NoError(t, f.svc.Buy(context.Background(), "potion", "receipt-42"))

	assert.Equal(t, []event.Type{
		event.ItemPurchaseStarted,
		event.CurrencyBalanceChanged,
		event.GoodBalanceChanged,
		event.ItemPurchased,
	}, f.events.types())
	last := f.events.events[3]
	assert.Equal(t, event.ItemPurchasePayloadV1{ItemID: "potion", Payload: "receipt-42"}, last.Payload)
}

func TestBuy_PackCreditsContents(t *testing.T) {
	f := newFixture(t)
	f.give(t, "gems", 40)

	require.NoError(t, f.svc.Buy(context.Background(), "potion_5", ""))

	assert.Equal(t, 5, f.balance(t, "potion"))
	assert.Zero(t, f.balance(t, "gems"))
}

func TestBuy_FailedCreditRefundsPrice(t *testing.T) {
	// ARRANGE
	kv := &failingStore{Memory: kvstore.NewMemory()}
	f := newFixtureOn(t, kv)
	ctx := context.Background()
	f.give(t, "gems", 10)
	kv.failOn = "potion"
	f.events.reset()

	// ACT
	err := f.svc.Buy(ctx, "potion", "")

	// ASSERT
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 10, f.balance(t, "gems"))
	assert.Equal(t, 0, f.balance(t, "potion"))
	assert.NotContains(t, f.events.types(), event.ItemPurchased)
}

func TestBuy_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Buy(ctx, "nothing", ""), domain.ErrItemNotFound)
	assert.ErrorIs(t, f.svc.Buy(ctx, "gems", ""), domain.ErrNotPurchasable)
}

// =============================================================================
// Market purchases
// =============================================================================

func TestBuy_MarketHandsOff(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	f.client.On("Purchase", mock.Anything, mock.MatchedBy(func(r market.Request) bool {
		return r.ItemID == "gems_100" && r.ProductID == "gems_100" && r.Payload == "p1" && r.Price.String() == "0.99"
	})).Return(nil).Once()

	// ACT
	err := f.svc.Buy(ctx, "gems_100", "p1")

	// ASSERT
	require.NoError(t, err)
	f.client.AssertExpectations(t)
	assert.Zero(t, f.balance(t, "gems"), "nothing is credited before the market settles")
	assert.Equal(t, []event.Type{event.MarketPurchaseStarted}, f.events.types())
}

func TestBuy_MarketErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.client.On("Purchase", mock.Anything, mock.Anything).Return(domain.ErrMarketUnavailable)

	err := f.svc.Buy(context.Background(), "elixir", "")

	assert.ErrorIs(t, err, domain.ErrMarketUnavailable)
}

func TestBuy_MarketLifetimeOwnedSkipsMarket(t *testing.T) {
	f := newFixture(t)
	f.give(t, "vip", 1)

	require.NoError(t, f.svc.Buy(context.Background(), "vip", ""))

	f.client.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything)
}

func TestHandleMarketPurchase(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	c := market.Completion{ProductID: "gems_100", TransactionID: "tx-1", Payload: "p1", Receipt: "r"}

	// ACT
	err := f.svc.HandleMarketPurchase(ctx, c)

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, 100, f.balance(t, "gems"))
	assert.Equal(t, []event.Type{
		event.CurrencyBalanceChanged,
		event.MarketPurchased,
		event.ItemPurchased,
	}, f.events.types())
	payload, ok := f.events.events[1].Payload.(event.MarketPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "gems_100", payload.ItemID)
	assert.Equal(t, "tx-1", payload.TransactionID)
}

func TestHandleMarketRefund(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := market.Completion{ProductID: "elixir", TransactionID: "tx-2"}
	require.NoError(t, f.svc.HandleMarketPurchase(ctx, c))

	require.NoError(t, f.svc.HandleMarketRefund(ctx, c))
	assert.Zero(t, f.balance(t, "elixir"))

	// a second refund finds nothing left to take and still reports it
	f.events.reset()
	require.NoError(t, f.svc.HandleMarketRefund(ctx, c))
	assert.Equal(t, []event.Type{event.MarketRefunded}, f.events.types())
}

func TestHandleMarketCancelledAndFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := market.Completion{ProductID: "vip", Message: "user backed out"}

	require.NoError(t, f.svc.HandleMarketCancelled(ctx, c))
	require.NoError(t, f.svc.HandleMarketFailure(ctx, c))

	assert.Zero(t, f.balance(t, "vip"))
	assert.Equal(t, []event.Type{event.MarketPurchaseCancelled, event.MarketPurchaseFailed}, f.events.types())
}

func TestHandleMarket_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := market.Completion{ProductID: "ghost"}

	assert.ErrorIs(t, f.svc.HandleMarketPurchase(ctx, c), domain.ErrItemNotFound)
	assert.ErrorIs(t, f.svc.HandleMarketRefund(ctx, c), domain.ErrItemNotFound)
	assert.ErrorIs(t, f.svc.HandleMarketCancelled(ctx, c), domain.ErrItemNotFound)
}

func TestHandleMarketRefund_StorageErrorPropagates(t *testing.T) {
	kv := &failingStore{Memory: kvstore.NewMemory()}
	f := newFixtureOn(t, kv)
	ctx := context.Background()
	require.NoError(t, f.svc.HandleMarketPurchase(ctx, market.Completion{ProductID: "elixir"}))
	kv.failOn = "elixir"

	err := f.svc.HandleMarketRefund(ctx, market.Completion{ProductID: "elixir"})

	assert.True(t, errors.Is(err, errDiskFull))
}

func TestNilClientDisablesMarket(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.catalog, f.storage, nil, f.deferred)

	err := svc.Buy(context.Background(), "vip", "")

	assert.ErrorIs(t, err, domain.ErrMarketUnavailable)
}
