package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgItemNotFound   = "virtual item not found"
	ErrMsgWrongItemType  = "wrong virtual item type"
	ErrMsgNotPurchasable = "virtual item is not purchasable"

	// Balance errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNotEnoughGoods    = "not enough goods"

	// Market errors
	ErrMsgMarketUnavailable = "market is unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrItemNotFound is returned when an item id does not resolve in the catalog
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// ErrWrongItemType is returned when the resolved item lacks the capability
	// an operation needs, e.g. equipping a currency
	ErrWrongItemType = errors.New(ErrMsgWrongItemType)

	// ErrNotPurchasable is returned when buying an item without a purchase type
	ErrNotPurchasable = errors.New(ErrMsgNotPurchasable)

	// ErrInsufficientFunds is returned when a deduction would take a balance below zero
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// ErrNotEnoughGoods is returned when equipping a good that is not owned
	ErrNotEnoughGoods = errors.New(ErrMsgNotEnoughGoods)

	// ErrMarketUnavailable is returned when no market client is configured
	ErrMarketUnavailable = errors.New(ErrMsgMarketUnavailable)

	// ErrInvalidInput is returned for malformed arguments (negative amounts, nil snapshots)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
