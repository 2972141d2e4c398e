package inventory

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
)

// =============================================================================
// Give / Take
// =============================================================================

func TestGive_AddsToBalance(t *testing.T) {
	tests := []struct {
		itemID string
		start  int
		amount int
	}{
		{itemID: "gems", start: 0, amount: 10},
		{itemID: "gems", start: 7, amount: 0},
		{itemID: "coins", start: 3, amount: 4},
		{itemID: "potion", start: 2, amount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.itemID, func(t *testing.T) {
			// ARRANGE
			f := newFixture(t)
			f.give(t, tt.itemID, tt.start)

			// ACT
			f.give(t, tt.itemID, tt.amount)

			// ASSERT
			assert.Equal(t, tt.start+tt.amount, f.balance(t, tt.itemID))
		})
	}
}

func TestGive_KindRules(t *testing.T) {
	tests := []struct {
		name    string
		itemID  string
		amount  int
		checkID string
		want    int
	}{
		{name: "lifetime is capped at one", itemID: "sword", amount: 3, checkID: "sword", want: 1},
		{name: "equippable is capped at one", itemID: "hat", amount: 2, checkID: "hat", want: 1},
		{name: "currency pack credits its currency", itemID: "gems_100", amount: 2, checkID: "gems", want: 200},
		{name: "good pack credits its good", itemID: "potion_5", amount: 3, checkID: "potion", want: 15},
		{name: "packs hold no balance", itemID: "potion_5", amount: 1, checkID: "potion_5", want: 0},
		{name: "zero lifetime is a no-op", itemID: "vip", amount: 0, checkID: "vip", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.give(t, tt.itemID, tt.amount)

			assert.Equal(t, tt.want, f.balance(t, tt.checkID))
		})
	}
}

func TestGive_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Give(ctx, "gems", -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.svc.Give(ctx, "unknown", 1), domain.ErrItemNotFound)
	_, err := f.svc.Balance(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGive_RejectsOverflow(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "gems", math.MaxInt)

	// ACT
	errCurrency := f.svc.Give(ctx, "gems", 1)
	errPack := f.svc.Give(ctx, "potion_5", math.MaxInt/5+1)

	// ASSERT
	assert.ErrorIs(t, errCurrency, domain.ErrInvalidInput)
	assert.ErrorIs(t, errPack, domain.ErrInvalidInput)
	assert.Equal(t, math.MaxInt, f.balance(t, "gems"))
	assert.Equal(t, 0, f.balance(t, "potion"))
}

func TestGive_NotifiesAfterWrite(t *testing.T) {
	f := newFixture(t)

	f.give(t, "gems_100", 1)

	require.Len(t, f.events.events, 1)
	evt := f.events.events[0]
	assert.Equal(t, event.CurrencyBalanceChanged, evt.Type)
	assert.Equal(t, event.BalanceChangedPayloadV1{ItemID: "gems", Balance: 100, AmountAdded: 100}, evt.Payload)
}

func TestTake(t *testing.T) {
	tests := []struct {
		name    string
		setup   map[string]int
		itemID  string
		amount  int
		checkID string
		want    int
		wantErr error
	}{
		{name: "currency", setup: map[string]int{"gems": 10}, itemID: "gems", amount: 4, checkID: "gems", want: 6},
		{name: "below zero is rejected", setup: map[string]int{"gems": 3}, itemID: "gems", amount: 4, checkID: "gems", want: 3, wantErr: domain.ErrInsufficientFunds},
		{name: "lifetime drops to zero", setup: map[string]int{"sword": 1}, itemID: "sword", amount: 5, checkID: "sword", want: 0},
		{name: "unowned lifetime is rejected", itemID: "sword", amount: 1, checkID: "sword", want: 0, wantErr: domain.ErrInsufficientFunds},
		{name: "good pack takes its contents", setup: map[string]int{"potion": 12}, itemID: "potion_5", amount: 2, checkID: "potion", want: 2},
		{name: "currency pack takes its contents", setup: map[string]int{"gems_100": 1}, itemID: "gems_100", amount: 1, checkID: "gems", want: 0},
		{name: "negative amount", setup: map[string]int{"gems": 3}, itemID: "gems", amount: -1, checkID: "gems", want: 3, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			f := newFixture(t)
			for id, n := range tt.setup {
				f.give(t, id, n)
			}

			// ACT
			err := f.svc.Take(context.Background(), tt.itemID, tt.amount)

			// ASSERT
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, f.balance(t, tt.checkID))
		})
	}
}

func TestTake_EquippableIsUnequipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "hat", 1)
	require.NoError(t, f.svc.Equip(ctx, "hat"))

	require.NoError(t, f.svc.Take(ctx, "hat", 1))

	equipped, err := f.svc.IsEquipped(ctx, "hat")
	require.NoError(t, err)
	assert.False(t, equipped)
	assert.Zero(t, f.balance(t, "hat"))
}

// =============================================================================
// Equip
// =============================================================================

func TestEquip_GlobalIsExclusive(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "theme_dark", 1)
	f.give(t, "theme_light", 1)
	f.give(t, "hat", 1)
	require.NoError(t, f.svc.Equip(ctx, "hat"))
	require.NoError(t, f.svc.Equip(ctx, "theme_dark"))

	// ACT
	err := f.svc.Equip(ctx, "theme_light")

	// ASSERT
	require.NoError(t, err)
	for id, want := range map[string]bool{"theme_dark": false, "theme_light": true, "hat": false} {
		got, err := f.svc.IsEquipped(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
}

func TestEquip_CategoryScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, id := range []string{"shield_red", "shield_blue", "hat"} {
		f.give(t, id, 1)
	}
	require.NoError(t, f.svc.Equip(ctx, "hat"))
	require.NoError(t, f.svc.Equip(ctx, "shield_red"))
	f.events.reset()

	require.NoError(t, f.svc.Equip(ctx, "shield_blue"))

	red, _ := f.svc.IsEquipped(ctx, "shield_red")
	blue, _ := f.svc.IsEquipped(ctx, "shield_blue")
	hat, _ := f.svc.IsEquipped(ctx, "hat")
	assert.False(t, red)
	assert.True(t, blue)
	assert.True(t, hat, "local goods are not in the category")
	assert.Equal(t, []event.Type{event.GoodUnequipped, event.GoodEquipped}, f.events.types())
}

func TestEquip_LocalGoodsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "hat", 1)
	f.give(t, "theme_dark", 1)
	require.NoError(t, f.svc.Equip(ctx, "theme_dark"))

	require.NoError(t, f.svc.Equip(ctx, "hat"))

	dark, _ := f.svc.IsEquipped(ctx, "theme_dark")
	assert.True(t, dark)
}

func TestEquip_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Equip(ctx, "hat"), domain.ErrNotEnoughGoods)
	assert.ErrorIs(t, f.svc.Equip(ctx, "sword"), domain.ErrWrongItemType)
	assert.ErrorIs(t, f.svc.Equip(ctx, "nothing"), domain.ErrItemNotFound)
	assert.ErrorIs(t, f.svc.Unequip(ctx, "gems"), domain.ErrWrongItemType)
	_, err := f.svc.IsEquipped(ctx, "potion")
	assert.ErrorIs(t, err, domain.ErrWrongItemType)
}

func TestUnequip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "hat", 1)
	require.NoError(t, f.svc.Equip(ctx, "hat"))

	require.NoError(t, f.svc.Unequip(ctx, "hat"))

	equipped, err := f.svc.IsEquipped(ctx, "hat")
	require.NoError(t, err)
	assert.False(t, equipped)
	assert.Equal(t, 1, f.balance(t, "hat"))
}

// =============================================================================
// Upgrades
// =============================================================================

func TestUpgradeLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "gems", 100)

	level, err := f.svc.UpgradeLevel(ctx, "sword")
	require.NoError(t, err)
	assert.Zero(t, level)

	for want := 1; want <= 3; want++ {
		require.NoError(t, f.svc.Upgrade(ctx, "sword"))
		level, err := f.svc.UpgradeLevel(ctx, "sword")
		require.NoError(t, err)
		assert.Equal(t, want, level)
	}

	current, err := f.svc.CurrentUpgrade(ctx, "sword")
	require.NoError(t, err)
	assert.Equal(t, "sword_3", current)
	assert.Equal(t, 85, f.balance(t, "gems"))
}

func TestUpgrade_AtChainEndIsNoop(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "gems", 50)
	require.NoError(t, f.svc.ForceUpgrade(ctx, "sword_3"))
	f.events.reset()

	// ACT
	err := f.svc.Upgrade(ctx, "sword")

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, 50, f.balance(t, "gems"))
	current, err := f.svc.CurrentUpgrade(ctx, "sword")
	require.NoError(t, err)
	assert.Equal(t, "sword_3", current)
	assert.Empty(t, f.events.types())
}

func TestUpgrade_WithoutUpgradesIsNoop(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.svc.Upgrade(context.Background(), "potion"))
	assert.ErrorIs(t, f.svc.Upgrade(context.Background(), "gems"), domain.ErrWrongItemType)
}

func TestUpgrade_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.give(t, "gems", 4)

	err := f.svc.Upgrade(context.Background(), "sword")

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 4, f.balance(t, "gems"))
}

func TestBuyUpgrade_OutOfOrderIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.give(t, "gems", 50)

	require.NoError(t, f.svc.Buy(ctx, "sword_2", ""))

	assert.Equal(t, 50, f.balance(t, "gems"))
	assert.Zero(t, f.balance(t, "sword_2"))
}

func TestForceUpgrade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ForceUpgrade(ctx, "sword_2"))

	current, err := f.svc.CurrentUpgrade(ctx, "sword")
	require.NoError(t, err)
	assert.Equal(t, "sword_2", current)
	assert.Equal(t, 1, f.balance(t, "sword_2"))
	assert.Zero(t, f.balance(t, "gems"))

	assert.NoError(t, f.svc.ForceUpgrade(ctx, "sword"), "wrong type is ignored")
	assert.ErrorIs(t, f.svc.ForceUpgrade(ctx, "sword_9"), domain.ErrItemNotFound)
}

func TestTakeUpgrade_StepsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.ForceUpgrade(ctx, "sword_1"))
	require.NoError(t, f.svc.ForceUpgrade(ctx, "sword_2"))

	assert.ErrorIs(t, f.svc.Take(ctx, "sword_1", 1), domain.ErrInvalidInput)

	require.NoError(t, f.svc.Take(ctx, "sword_2", 1))
	current, _ := f.svc.CurrentUpgrade(ctx, "sword")
	assert.Equal(t, "sword_1", current)

	require.NoError(t, f.svc.Take(ctx, "sword_1", 1))
	level, err := f.svc.UpgradeLevel(ctx, "sword")
	require.NoError(t, err)
	assert.Zero(t, level)
}

func TestRemoveUpgrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.ForceUpgrade(ctx, "sword_1"))
	require.NoError(t, f.svc.ForceUpgrade(ctx, "sword_2"))

	require.NoError(t, f.svc.RemoveUpgrades(ctx, "sword"))

	current, err := f.svc.CurrentUpgrade(ctx, "sword")
	require.NoError(t, err)
	assert.Empty(t, current)
	assert.Zero(t, f.balance(t, "sword_1"))
	assert.Zero(t, f.balance(t, "sword_2"))
	assert.ErrorIs(t, f.svc.RemoveUpgrades(ctx, "nope"), domain.ErrItemNotFound)
}

// =============================================================================
// Listener re-entry
// =============================================================================

func TestListenersMayCallBackIntoService(t *testing.T) {
	// ARRANGE
	f := newFixture(t)
	var seen []int
	f.bus.Subscribe(event.CurrencyBalanceChanged, func(ctx context.Context, evt event.Event) error {
		n, err := f.svc.Balance(ctx, "gems")
		seen = append(seen, n)
		return err
	})

	// ACT
	f.give(t, "gems", 5)

	// ASSERT
	assert.Equal(t, []int{5}, seen)
}
