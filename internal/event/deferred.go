package event

import (
	"context"
	"sync"

	"github.com/osse101/vstore/internal/logger"
)

// Deferred wraps a Bus so events published while it is held are queued
// instead of delivered. The owner of a critical section calls Hold before
// mutating state and Release once done, then delivers the returned events
// with Flush after dropping its own lock. Listeners therefore never run
// inside the critical section and may call back into the publisher.
type Deferred struct {
	inner   Bus
	mu      sync.Mutex
	depth   int
	pending []Event
}

// NewDeferred creates a Deferred bus around inner
func NewDeferred(inner Bus) *Deferred {
	return &Deferred{inner: inner}
}

// Publish queues the event while held, otherwise delivers it immediately
func (d *Deferred) Publish(ctx context.Context, event Event) error {
	d.mu.Lock()
	if d.depth > 0 {
		d.pending = append(d.pending, event)
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()
	return d.inner.Publish(ctx, event)
}

// Subscribe delegates to the inner bus
func (d *Deferred) Subscribe(eventType Type, handler Handler) {
	d.inner.Subscribe(eventType, handler)
}

// Hold starts queueing events. Holds nest.
func (d *Deferred) Hold() {
	d.mu.Lock()
	d.depth++
	d.mu.Unlock()
}

// Release ends one Hold and returns the queued events once the outermost
// hold is released. Events are returned in publish order.
func (d *Deferred) Release() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.depth == 0 {
		return nil
	}
	d.depth--
	if d.depth > 0 {
		return nil
	}
	events := d.pending
	d.pending = nil
	return events
}

// Flush delivers events to the inner bus in order. Handler errors are
// logged; they never undo the state change that raised the event.
func (d *Deferred) Flush(ctx context.Context, events []Event) {
	for _, evt := range events {
		if err := d.inner.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgDeferredPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}
