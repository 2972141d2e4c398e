package inventory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/vstore/internal/catalog"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/market"
	"github.com/osse101/vstore/internal/storage"
)

// MockClient implements market.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Purchase(ctx context.Context, req market.Request) error {
	return m.Called(ctx, req).Error(0)
}

// recorder collects every event delivered by the bus
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, evt := range r.events {
		out[i] = evt.Type
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

var allEventTypes = []event.Type{
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

// failingStore fails writes to keys containing failOn
type failingStore struct {
	*kvstore.Memory
	failOn string
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failOn != "" && strings.Contains(key, f.failOn) {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func soldOnMarket(productID string, price string) *catalog.PurchasableDoc {
	return &catalog.PurchasableDoc{
		PurchaseType: "market",
		MarketItem:   &catalog.MarketItemDoc{ProductID: productID, Consumable: 1, Price: decimal.RequireFromString(price)},
	}
}

func pricedIn(itemID string, amount int) *catalog.PurchasableDoc {
	return &catalog.PurchasableDoc{PurchaseType: "virtualItem", ItemID: itemID, Amount: amount}
}

func good(id string, p *catalog.PurchasableDoc) catalog.GoodDoc {
	return catalog.GoodDoc{ItemDoc: catalog.ItemDoc{ItemID: id, Name: id}, Purchasable: p}
}

func testDocument() *catalog.Document {
	return &catalog.Document{
		Currencies: []catalog.CurrencyDoc{
			{ItemDoc: catalog.ItemDoc{ItemID: "gems", Name: "Gems"}},
			{ItemDoc: catalog.ItemDoc{ItemID: "coins", Name: "Coins"}},
		},
		CurrencyPacks: []catalog.CurrencyPackDoc{
			{ItemDoc: catalog.ItemDoc{ItemID: "gems_100"}, Purchasable: soldOnMarket("gems_100", "0.99"), CurrencyID: "gems", CurrencyAmount: 100},
		},
		Goods: catalog.GoodsDoc{
			SingleUse: []catalog.GoodDoc{
				good("potion", pricedIn("gems", 10)),
				good("elixir", soldOnMarket("elixir", "1.99")),
			},
			Lifetime: []catalog.GoodDoc{
				good("sword", pricedIn("gems", 10)),
				good("vip", soldOnMarket("vip", "4.99")),
			},
			Equippable: []catalog.EquippableDoc{
				{GoodDoc: good("shield_red", pricedIn("coins", 5)), Equipping: "category"},
				{GoodDoc: good("shield_blue", pricedIn("coins", 5)), Equipping: "category"},
				{GoodDoc: good("hat", pricedIn("coins", 1)), Equipping: "local"},
				{GoodDoc: good("theme_dark", pricedIn("coins", 1)), Equipping: "global"},
				{GoodDoc: good("theme_light", pricedIn("coins", 1)), Equipping: "global"},
			},
			GoodPacks: []catalog.GoodPackDoc{
				{GoodDoc: good("potion_5", pricedIn("gems", 40)), GoodID: "potion", GoodAmount: 5},
			},
			Upgrades: []catalog.UpgradeDoc{
				{GoodDoc: good("sword_1", pricedIn("gems", 5)), GoodID: "sword", NextID: "sword_2"},
				{GoodDoc: good("sword_2", pricedIn("gems", 5)), GoodID: "sword", PrevID: "sword_1", NextID: "sword_3"},
				{GoodDoc: good("sword_3", pricedIn("gems", 5)), GoodID: "sword", PrevID: "sword_2"},
			},
		},
		Categories: []catalog.CategoryDoc{
			{Name: "Shields", GoodIDs: []string{"shield_red", "shield_blue"}},
			{Name: "Potions", GoodIDs: []string{"potion", "potion_5"}},
		},
	}
}

type fixture struct {
	svc      Service
	catalog  *catalog.Catalog
	storage  *storage.Manager
	kv       kvstore.Store
	bus      *event.MemoryBus
	deferred *event.Deferred
	client   *MockClient
	events   *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, kvstore.NewMemory())
}

func newFixtureOn(t *testing.T, kv kvstore.Store) *fixture {
	t.Helper()
	cat, err := catalog.Load(testDocument())
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	rec := &recorder{}
	for _, typ := range allEventTypes {
		bus.Subscribe(typ, rec.handle)
	}
	deferred := event.NewDeferred(bus)
	mgr := storage.NewManager(kv, deferred, cat)
	client := &MockClient{}

	return &fixture{
		svc:      NewService(cat, mgr, client, deferred),
		catalog:  cat,
		storage:  mgr,
		kv:       kv,
		bus:      bus,
		deferred: deferred,
		client:   client,
		events:   rec,
	}
}

func (f *fixture) balance(t *testing.T, itemID string) int {
	t.Helper()
	n, err := f.svc.Balance(context.Background(), itemID)
	require.NoError(t, err)
	return n
}

func (f *fixture) give(t *testing.T, itemID string, amount int) {
	t.Helper()
	require.NoError(t, f.svc.Give(context.Background(), itemID, amount))
}
