package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/logger"
	"github.com/osse101/vstore/internal/worker"
)

// Log messages
const (
	LogMsgSimulatedPurchase   = "Simulating market purchase"
	LogMsgCompletionFailed    = "Market completion handler failed"
	LogMsgNoCompletionHandler = "Market completion dropped, no handler registered"
)

// Simulator is an in-process Client. Each purchase settles on the worker
// pool with the configured outcome. A refunded outcome delivers the
// purchase first and the refund after it.
type Simulator struct {
	pool *worker.Pool

	mu      sync.RWMutex
	outcome Outcome
	handler CompletionHandler
}

// NewSimulator creates a simulator settling purchases on pool
func NewSimulator(pool *worker.Pool, outcome Outcome) *Simulator {
	return &Simulator{pool: pool, outcome: outcome}
}

// SetHandler registers where completions go
func (s *Simulator) SetHandler(h CompletionHandler) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// SetOutcome changes how later purchases settle
func (s *Simulator) SetOutcome(o Outcome) {
	s.mu.Lock()
	s.outcome = o
	s.mu.Unlock()
}

func (s *Simulator) Purchase(ctx context.Context, req Request) error {
	if req.ProductID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	s.mu.RLock()
	outcome := s.outcome
	s.mu.RUnlock()

	// the request id travels with the job, the caller's cancellation does not
	jobCtx := context.Background()
	if id := logger.GetRequestID(ctx); id != "" {
		jobCtx = logger.WithRequestID(jobCtx, id)
	}
	c := Completion{
		ProductID:     req.ProductID,
		TransactionID: uuid.NewString(),
		Payload:       req.Payload,
	}
	logger.FromContext(ctx).Info(LogMsgSimulatedPurchase,
		"product_id", req.ProductID, "transaction_id", c.TransactionID, "outcome", outcome)

	if err := s.pool.Enqueue(ctx, worker.JobFunc(func(context.Context) error {
		return s.settle(jobCtx, outcome, c)
	})); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMarketUnavailable, err)
	}
	return nil
}

func (s *Simulator) settle(ctx context.Context, outcome Outcome, c Completion) error {
	s.mu.RLock()
	h := s.handler
	s.mu.RUnlock()
	if h == nil {
		logger.FromContext(ctx).Warn(LogMsgNoCompletionHandler, "product_id", c.ProductID)
		return nil
	}

	switch outcome {
	case OutcomeRefunded:
		c.Receipt = "simulated-" + c.TransactionID
		if err := h.HandleMarketPurchase(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", LogMsgCompletionFailed, err)
		}
	case OutcomePurchased:
		c.Receipt = "simulated-" + c.TransactionID
	case OutcomeFailed:
		c.Message = "simulated market failure"
	}
	if err := Dispatch(ctx, h, outcome, c); err != nil {
		return fmt.Errorf("%s: %w", LogMsgCompletionFailed, err)
	}
	return nil
}
