package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/vstore/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload.
// The payload is encoded before the header is written so an encoding failure
// still yields a 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgWrongItemTypeError   = "Item does not support this operation"
	ErrMsgNotPurchasableError  = "Item is not purchasable"
	ErrMsgInsufficientFundsErr = "Not enough funds"
	ErrMsgNotEnoughGoodsError  = "You don't own that good"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgMarketUnavailableErr = "Market is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon. Anything else is reported as a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgInsufficientFundsErr
	case errors.Is(err, domain.ErrNotEnoughGoods):
		return http.StatusConflict, ErrMsgNotEnoughGoodsError
	case errors.Is(err, domain.ErrWrongItemType):
		return http.StatusUnprocessableEntity, ErrMsgWrongItemTypeError
	case errors.Is(err, domain.ErrNotPurchasable):
		return http.StatusUnprocessableEntity, ErrMsgNotPurchasableError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrMarketUnavailable):
		return http.StatusServiceUnavailable, ErrMsgMarketUnavailableErr
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes its mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := loggerFor(r)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgOperationFailed, "action", action, "error", err)
	} else {
		log.Warn(LogMsgOperationFailed, "action", action, "error", err)
	}
	respondError(w, status, msg)
}
