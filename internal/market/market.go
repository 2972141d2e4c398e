// Package market is the boundary to the platform billing service. Purchases
// are handed off without blocking; results come back through a
// CompletionHandler.
package market

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/vstore/internal/domain"
)

// Request asks the market to sell one unit of a product
type Request struct {
	ItemID    string
	ProductID string
	Price     decimal.Decimal
	Payload   string
}

// Completion is reported by the market once a purchase settles
type Completion struct {
	ProductID     string `json:"product_id" validate:"required"`
	TransactionID string `json:"transaction_id,omitempty"`
	Payload       string `json:"payload,omitempty"`
	Receipt       string `json:"receipt,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Client starts market purchases. Purchase must return without waiting for
// the purchase to settle.
type Client interface {
	Purchase(ctx context.Context, req Request) error
}

// CompletionHandler receives settled purchases
type CompletionHandler interface {
	HandleMarketPurchase(ctx context.Context, c Completion) error
	HandleMarketCancelled(ctx context.Context, c Completion) error
	HandleMarketRefund(ctx context.Context, c Completion) error
	HandleMarketFailure(ctx context.Context, c Completion) error
}

// Outcome names how a purchase settles
type Outcome string

const (
	OutcomePurchased Outcome = "purchased"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeRefunded  Outcome = "refunded"
	OutcomeFailed    Outcome = "failed"
)

// ParseOutcome validates an outcome name
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomePurchased, OutcomeCancelled, OutcomeRefunded, OutcomeFailed:
		return o, nil
	}
	return "", fmt.Errorf("%w: unknown market outcome %q", domain.ErrInvalidInput, s)
}

// Dispatch routes a completion to the handler method for outcome
func Dispatch(ctx context.Context, h CompletionHandler, outcome Outcome, c Completion) error {
	switch outcome {
	case OutcomePurchased:
		return h.HandleMarketPurchase(ctx, c)
	case OutcomeCancelled:
		return h.HandleMarketCancelled(ctx, c)
	case OutcomeRefunded:
		return h.HandleMarketRefund(ctx, c)
	case OutcomeFailed:
		return h.HandleMarketFailure(ctx, c)
	}
	return fmt.Errorf("%w: unknown market outcome %q", domain.ErrInvalidInput, outcome)
}

// Disabled is the Client used when no market is configured
type Disabled struct{}

func (Disabled) Purchase(_ context.Context, req Request) error {
	return fmt.Errorf("%w: cannot sell %s", domain.ErrMarketUnavailable, req.ProductID)
}
