package handler

import (
	"net/http"

	"github.com/osse101/vstore/internal/market"
)

// MarketCallbackRequest is posted by the billing service once a purchase
// settles
type MarketCallbackRequest struct {
	Outcome       string `json:"outcome" validate:"required,oneof=purchased cancelled refunded failed"`
	ProductID     string `json:"product_id" validate:"required,max=256"`
	TransactionID string `json:"transaction_id" validate:"max=256"`
	Payload       string `json:"payload" validate:"max=1024"`
	Receipt       string `json:"receipt" validate:"max=8192"`
	Message       string `json:"message" validate:"max=1024"`
}

// HandleMarketCallback routes a settled market purchase to the ledger
func HandleMarketCallback(h market.CompletionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarketCallbackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Market callback"); err != nil {
			return
		}
		outcome, err := market.ParseOutcome(req.Outcome)
		if err != nil {
			respondServiceError(w, r, "market callback", err)
			return
		}
		loggerFor(r).Info(LogMsgMarketCallback, "outcome", outcome, "product_id", req.ProductID, "transaction_id", req.TransactionID)

		c := market.Completion{
			ProductID:     req.ProductID,
			TransactionID: req.TransactionID,
			Payload:       req.Payload,
			Receipt:       req.Receipt,
			Message:       req.Message,
		}
		if err := market.Dispatch(r.Context(), h, outcome, c); err != nil {
			respondServiceError(w, r, "market callback", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMarketCallbackAck})
	}
}
