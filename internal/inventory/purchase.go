package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/event"
	"github.com/osse101/vstore/internal/logger"
	"github.com/osse101/vstore/internal/market"
)

func (s *service) Buy(ctx context.Context, itemID, payload string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "item_id", itemID)

	item, err := s.catalog.Purchasable(itemID)
	if err != nil {
		return err
	}

	switch item.Purchase.Kind {
	case domain.PurchaseWithVirtualItem:
		return s.mutate(ctx, func() error {
			return s.buyWithVirtualItem(ctx, item, payload)
		})
	case domain.PurchaseWithMarket:
		return s.buyWithMarket(ctx, item, payload)
	}
	return fmt.Errorf("%w: unknown purchase type %q for %s", domain.ErrNotPurchasable, item.Purchase.Kind, item.ID)
}

// canBuy applies the one-time ownership rules of lifetime goods and upgrades
func (s *service) canBuy(ctx context.Context, item *domain.VirtualItem) (bool, error) {
	log := logger.FromContext(ctx)
	switch {
	case item.IsUpgrade():
		ok, err := s.canBuyUpgrade(ctx, item)
		if err == nil && !ok {
			log.Info(LogMsgUpgradeOutOfOrder, "item_id", item.ID, "good_id", item.GoodID)
		}
		return ok, err
	case item.IsLifetime():
		balance, err := s.storage.Goods.Balance(ctx, item.ID)
		if err != nil {
			return false, err
		}
		if balance > 0 {
			log.Info(LogMsgLifetimeAlreadyOwned, "item_id", item.ID)
			return false, nil
		}
	}
	return true, nil
}

// buyWithVirtualItem pays with another item's balance. Funds are checked
// before anything is written, so a failed purchase leaves both balances as
// they were. Callers hold the write lock.
func (s *service) buyWithVirtualItem(ctx context.Context, item *domain.VirtualItem, payload string) error {
	ok, err := s.canBuy(ctx, item)
	if err != nil || !ok {
		return err
	}

	s.publish(ctx, event.NewItemPurchaseStartedEvent(item.ID))

	price := item.Purchase
	priceItem, err := s.catalog.Item(price.ItemID)
	if err != nil {
		return err
	}
	funds, err := s.balance(ctx, priceItem)
	if err != nil {
		return err
	}
	if funds < price.Amount {
		return fmt.Errorf("%w: %s costs %d %s, balance is %d",
			domain.ErrInsufficientFunds, item.ID, price.Amount, priceItem.ID, funds)
	}

	if err := s.take(ctx, priceItem, price.Amount, true); err != nil {
		return err
	}
	if err := s.give(ctx, item, 1, true); err != nil {
		// the credit failed, so hand the price back
		if rbErr := s.give(ctx, priceItem, price.Amount, true); rbErr != nil {
			logger.FromContext(ctx).Error(LogMsgRefundPriceFailed, "item_id", item.ID, "price_item", priceItem.ID, "error", rbErr)
			return errors.Join(err, fmt.Errorf("refund %d %s: %w", price.Amount, priceItem.ID, rbErr))
		}
		logger.FromContext(ctx).Warn(LogMsgPriceRefunded, "item_id", item.ID, "price_item", priceItem.ID, "error", err)
		return err
	}

	s.publish(ctx, event.NewItemPurchasedEvent(item.ID, payload))
	logger.FromContext(ctx).Info(LogMsgItemPurchased, "item_id", item.ID, "price_item", priceItem.ID, "price", price.Amount)
	return nil
}

// buyWithMarket hands the purchase to the market client without holding the
// write lock. The market settles later through the completion handlers,
// which take the lock themselves.
func (s *service) buyWithMarket(ctx context.Context, item *domain.VirtualItem, payload string) error {
	s.mu.RLock()
	ok, err := s.canBuy(ctx, item)
	s.mu.RUnlock()
	if err != nil || !ok {
		return err
	}

	m := item.Purchase.Market
	s.publish(ctx, event.NewMarketEvent(event.MarketPurchaseStarted, event.MarketPayloadV1{
		ItemID:    item.ID,
		ProductID: m.ProductID,
		Payload:   payload,
	}))
	if err := s.market.Purchase(ctx, market.Request{
		ItemID:    item.ID,
		ProductID: m.ProductID,
		Price:     m.Price,
		Payload:   payload,
	}); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgMarketPurchaseSent, "item_id", item.ID, "product_id", m.ProductID)
	return nil
}

// HandleMarketPurchase credits one unit of the item sold under the product
func (s *service) HandleMarketPurchase(ctx context.Context, c market.Completion) error {
	item, err := s.catalog.ItemByProductID(c.ProductID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		if err := s.give(ctx, item, 1, true); err != nil {
			return err
		}
		s.publish(ctx, event.NewMarketEvent(event.MarketPurchased, marketPayload(item, c)))
		s.publish(ctx, event.NewItemPurchasedEvent(item.ID, c.Payload))
		logger.FromContext(ctx).Info(LogMsgMarketPurchased, "item_id", item.ID, "transaction_id", c.TransactionID)
		return nil
	})
}

// HandleMarketRefund takes back one unit. When the unit was already spent
// the balance stays as it is and the refund is still reported.
func (s *service) HandleMarketRefund(ctx context.Context, c market.Completion) error {
	item, err := s.catalog.ItemByProductID(c.ProductID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func() error {
		log := logger.FromContext(ctx)
		if err := s.take(ctx, item, 1, true); err != nil {
			if !isDomainRejection(err) {
				return err
			}
			log.Warn(LogMsgRefundNotTaken, "item_id", item.ID, "transaction_id", c.TransactionID, "error", err)
		}
		s.publish(ctx, event.NewMarketEvent(event.MarketRefunded, marketPayload(item, c)))
		log.Info(LogMsgMarketRefunded, "item_id", item.ID, "transaction_id", c.TransactionID)
		return nil
	})
}

func (s *service) HandleMarketCancelled(ctx context.Context, c market.Completion) error {
	return s.reportMarket(ctx, event.MarketPurchaseCancelled, LogMsgMarketCancelled, c)
}

func (s *service) HandleMarketFailure(ctx context.Context, c market.Completion) error {
	return s.reportMarket(ctx, event.MarketPurchaseFailed, LogMsgMarketFailed, c)
}

// reportMarket emits a market event for a purchase that changed nothing
func (s *service) reportMarket(ctx context.Context, typ event.Type, msg string, c market.Completion) error {
	item, err := s.catalog.ItemByProductID(c.ProductID)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(msg, "item_id", item.ID, "transaction_id", c.TransactionID, "message", c.Message)
	s.publish(ctx, event.NewMarketEvent(typ, marketPayload(item, c)))
	return nil
}

func marketPayload(item *domain.VirtualItem, c market.Completion) event.MarketPayloadV1 {
	return event.MarketPayloadV1{
		ItemID:        item.ID,
		ProductID:     c.ProductID,
		TransactionID: c.TransactionID,
		Payload:       c.Payload,
		Receipt:       c.Receipt,
		Message:       c.Message,
	}
}
