package storage

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/kvstore"
	"github.com/osse101/vstore/internal/logger"
	"github.com/osse101/vstore/internal/metrics"
)

// balances implements integer balances under one key prefix
type balances struct {
	store    kvstore.Store
	bus      event.Bus
	prefix   string
	newEvent func(itemID string, balance, amountAdded int) event.Event
}

func (b *balances) balanceKey(itemID string) string {
	return b.prefix + itemID + balanceSuffix
}

// Balance returns the stored balance, 0 when absent. Values that do not
// parse as a non-negative integer are treated as 0.
func (b *balances) Balance(ctx context.Context, itemID string) (int, error) {
	key := b.balanceKey(itemID)
	raw, ok, err := b.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read balance of %s: %w", itemID, err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnparsableBalance, "key", key, "value", raw)
		return 0, nil
	}
	if n < 0 {
		logger.FromContext(ctx).Warn(LogMsgNegativeBalance, "key", key, "value", n)
		return 0, nil
	}
	return n, nil
}

// SetBalance overwrites the balance. Setting the current value is a no-op
// and sends no notification.
func (b *balances) SetBalance(ctx context.Context, itemID string, balance int, notify bool) (int, error) {
	if balance < 0 {
		return 0, fmt.Errorf("%w: balance of %s cannot be %d", domain.ErrInvalidInput, itemID, balance)
	}
	old, err := b.Balance(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if old == balance {
		return balance, nil
	}
	if err := b.write(ctx, itemID, balance); err != nil {
		return old, err
	}
	if notify {
		b.publish(ctx, b.newEvent(itemID, balance, balance-old))
	}
	return balance, nil
}

// Add increases the balance by amount and returns the new balance. A sum
// that does not fit in an int is rejected with ErrInvalidInput.
func (b *balances) Add(ctx context.Context, itemID string, amount int, notify bool) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: cannot add %d to %s", domain.ErrInvalidInput, amount, itemID)
	}
	old, err := b.Balance(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if amount > math.MaxInt-old {
		return old, fmt.Errorf("%w: adding %d to %s overflows balance %d", domain.ErrInvalidInput, amount, itemID, old)
	}
	return b.apply(ctx, itemID, old, old+amount, notify)
}

// Remove decreases the balance by amount. A result below zero is rejected
// with ErrInsufficientFunds and nothing is written.
func (b *balances) Remove(ctx context.Context, itemID string, amount int, notify bool) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: cannot remove %d from %s", domain.ErrInvalidInput, amount, itemID)
	}
	old, err := b.Balance(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if amount > old {
		return old, fmt.Errorf("%w: %s has %d, needs %d", domain.ErrInsufficientFunds, itemID, old, amount)
	}
	return b.apply(ctx, itemID, old, old-amount, notify)
}

func (b *balances) apply(ctx context.Context, itemID string, old, balance int, notify bool) (int, error) {
	if err := b.write(ctx, itemID, balance); err != nil {
		return old, err
	}
	if notify {
		b.publish(ctx, b.newEvent(itemID, balance, balance-old))
	}
	return balance, nil
}

func (b *balances) write(ctx context.Context, itemID string, balance int) error {
	if err := b.store.Set(ctx, b.balanceKey(itemID), strconv.Itoa(balance)); err != nil {
		return fmt.Errorf("failed to write balance of %s: %w", itemID, err)
	}
	return nil
}

// publish reports delivery failures without failing the write that
// already happened
func (b *balances) publish(ctx context.Context, evt event.Event) {
	if b.bus == nil {
		return
	}
	if err := b.bus.Publish(ctx, evt); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

// CurrencyStorage holds virtual currency balances
type CurrencyStorage struct {
	balances
}
