package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/vstore/internal/catalog"
	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/inventory"
)

// BuyRequest carries the opaque payload echoed back in purchase events
type BuyRequest struct {
	Payload string `json:"payload" validate:"max=1024"`
}

// AmountRequest is the body of give and take
type AmountRequest struct {
	Amount *int `json:"amount" validate:"required,gte=0,max=1000000000"`
}

// BalanceResponse reports one item's balance
type BalanceResponse struct {
	ItemID  string `json:"item_id"`
	Balance int    `json:"balance"`
}

// GoodResponse reports a good's ownership, equip and upgrade state
type GoodResponse struct {
	GoodID         string `json:"good_id"`
	Balance        int    `json:"balance"`
	Equipped       *bool  `json:"equipped,omitempty"`
	CurrentUpgrade string `json:"current_upgrade,omitempty"`
	UpgradeLevel   int    `json:"upgrade_level"`
}

// InventoryHandlers serves the ledger operations
type InventoryHandlers struct {
	svc     inventory.Service
	catalog *catalog.Catalog
}

// NewInventoryHandlers creates the ledger handlers
func NewInventoryHandlers(svc inventory.Service, cat *catalog.Catalog) *InventoryHandlers {
	return &InventoryHandlers{svc: svc, catalog: cat}
}

// HandleGetBalance returns the balance of any item
func (h *InventoryHandlers) HandleGetBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetItemID(r, w)
		if !ok {
			return
		}
		balance, err := h.svc.Balance(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "balance", err)
			return
		}
		respondJSON(w, http.StatusOK, BalanceResponse{ItemID: itemID, Balance: balance})
	}
}

// HandleBuy purchases one unit. Market purchases are accepted and settle
// later through the market callback.
func (h *InventoryHandlers) HandleBuy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetItemID(r, w)
		if !ok {
			return
		}
		var req BuyRequest
		if err := decodeOptional(r, w, &req, "Buy"); err != nil {
			return
		}
		if err := h.svc.Buy(r.Context(), itemID, req.Payload); err != nil {
			respondServiceError(w, r, "buy", err)
			return
		}
		status := http.StatusOK
		if item, err := h.catalog.Item(itemID); err == nil && item.Purchase != nil && item.Purchase.Kind == domain.PurchaseWithMarket {
			status = http.StatusAccepted
		}
		respondJSON(w, status, SuccessResponse{Message: MsgItemBought})
	}
}

// HandleGive credits an item without a purchase
func (h *InventoryHandlers) HandleGive() http.HandlerFunc {
	return h.amountHandler("Give", MsgItemGiven, h.svc.Give)
}

// HandleTake debits an item
func (h *InventoryHandlers) HandleTake() http.HandlerFunc {
	return h.amountHandler("Take", MsgItemTaken, h.svc.Take)
}

func (h *InventoryHandlers) amountHandler(action, msg string, apply func(ctx context.Context, itemID string, amount int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetItemID(r, w)
		if !ok {
			return
		}
		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, action); err != nil {
			return
		}
		if err := apply(r.Context(), itemID, *req.Amount); err != nil {
			respondServiceError(w, r, action, err)
			return
		}
		h.respondBalance(w, r, itemID, msg)
	}
}

// HandleGetGood returns the state of a good
func (h *InventoryHandlers) HandleGetGood() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goodID, ok := GetItemID(r, w)
		if !ok {
			return
		}
		good, err := h.catalog.Good(goodID)
		if err != nil {
			respondServiceError(w, r, "get good", err)
			return
		}
		ctx := r.Context()
		resp := GoodResponse{GoodID: good.ID}
		if resp.Balance, err = h.svc.Balance(ctx, good.ID); err != nil {
			respondServiceError(w, r, "get good", err)
			return
		}
		if good.IsEquippable() {
			equipped, err := h.svc.IsEquipped(ctx, good.ID)
			if err != nil {
				respondServiceError(w, r, "get good", err)
				return
			}
			resp.Equipped = &equipped
		}
		if h.catalog.HasUpgrades(good.ID) {
			if resp.CurrentUpgrade, err = h.svc.CurrentUpgrade(ctx, good.ID); err != nil {
				respondServiceError(w, r, "get good", err)
				return
			}
			if resp.UpgradeLevel, err = h.svc.UpgradeLevel(ctx, good.ID); err != nil {
				respondServiceError(w, r, "get good", err)
				return
			}
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleEquip equips a good, displacing others in its equip scope
func (h *InventoryHandlers) HandleEquip() http.HandlerFunc {
	return h.goodAction("equip", MsgGoodEquipped, h.svc.Equip)
}

// HandleUnequip unequips a good
func (h *InventoryHandlers) HandleUnequip() http.HandlerFunc {
	return h.goodAction("unequip", MsgGoodUnequipped, h.svc.Unequip)
}

// HandleUpgrade buys the good's next upgrade
func (h *InventoryHandlers) HandleUpgrade() http.HandlerFunc {
	return h.goodAction("upgrade", MsgGoodUpgraded, h.svc.Upgrade)
}

// HandleRemoveUpgrades clears all upgrades of a good
func (h *InventoryHandlers) HandleRemoveUpgrades() http.HandlerFunc {
	return h.goodAction("remove upgrades", MsgUpgradesRemoved, h.svc.RemoveUpgrades)
}

// HandleForceUpgrade grants an upgrade without charging for it
func (h *InventoryHandlers) HandleForceUpgrade() http.HandlerFunc {
	return h.goodAction("force upgrade", MsgUpgradeForced, h.svc.ForceUpgrade)
}

func (h *InventoryHandlers) goodAction(action, msg string, apply func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetItemID(r, w)
		if !ok {
			return
		}
		if err := apply(r.Context(), id); err != nil {
			respondServiceError(w, r, action, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
	}
}

// HandleExportBalances returns a snapshot of every balance
func (h *InventoryHandlers) HandleExportBalances() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := h.svc.ExportBalances(r.Context())
		if err != nil {
			respondServiceError(w, r, "export", err)
			return
		}
		respondJSON(w, http.StatusOK, snapshot)
	}
}

// HandleImportBalances replaces all balances with the posted snapshot
func (h *InventoryHandlers) HandleImportBalances() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snapshot domain.Balances
		if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
			loggerFor(r).Warn(fmt.Sprintf(LogMsgDecodeFailed, "Import balances"), "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		report, err := h.svc.ImportBalances(r.Context(), snapshot)
		if err != nil {
			respondServiceError(w, r, "import", err)
			return
		}
		loggerFor(r).Info(LogMsgBalancesImported, "applied", report.Applied, "skipped", len(report.Skipped))
		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}

// respondBalance answers a balance change with the new balance
func (h *InventoryHandlers) respondBalance(w http.ResponseWriter, r *http.Request, itemID, msg string) {
	balance, err := h.svc.Balance(r.Context(), itemID)
	if err != nil {
		respondServiceError(w, r, "balance", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: msg, Data: BalanceResponse{ItemID: itemID, Balance: balance}})
}

// decodeOptional decodes a body that may be omitted entirely
func decodeOptional(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return DecodeAndValidateRequest(r, w, req, actionName)
}
