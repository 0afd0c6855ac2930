package apiserver

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/game/inventory"
)

// ShopRequest is the body for POST /api/buy-item and POST /api/equip-item.
type ShopRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

// ShopResponse reports the outcome of a shop action alongside the updated
// player state.
type ShopResponse struct {
	ItemID string `json:"item_id"`
	// Slot is the equipment slot affected, set only by equip.
	Slot   string     `json:"slot,omitempty"`
	Player PlayerView `json:"player"`
}

func (h *Handler) shopRequest(r *http.Request) (ShopRequest, error) {
	var req ShopRequest
	if err := decode(r, &req); err != nil {
		return ShopRequest{}, err
	}
	if req.UserID == "" {
		return ShopRequest{}, fmt.Errorf("%w: user_id is required", errInvalidInput)
	}
	if req.ItemID == "" {
		return ShopRequest{}, fmt.Errorf("%w: item_id is required", errInvalidInput)
	}
	return req, nil
}

func (h *Handler) handleBuyItem(w http.ResponseWriter, r *http.Request) {
	req, err := h.shopRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	lock := h.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	c, err := h.store.Get(r.Context(), req.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := inventory.Purchase(c, h.catalog, req.ItemID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.store.Save(r.Context(), c); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("item purchased",
		zap.String("user_id", req.UserID),
		zap.String("item_id", item.ID),
		zap.Int("price", item.Price),
	)
	writeJSON(w, http.StatusOK, ShopResponse{
		ItemID: item.ID,
		Player: h.playerView(c, h.now()),
	})
}

func (h *Handler) handleEquipItem(w http.ResponseWriter, r *http.Request) {
	req, err := h.shopRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	lock := h.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	c, err := h.store.Get(r.Context(), req.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	slot, err := inventory.Equip(c, h.catalog, req.ItemID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.store.Save(r.Context(), c); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("item equipped",
		zap.String("user_id", req.UserID),
		zap.String("item_id", req.ItemID),
		zap.String("slot", slot),
	)
	writeJSON(w, http.StatusOK, ShopResponse{
		ItemID: req.ItemID,
		Slot:   slot,
		Player: h.playerView(c, h.now()),
	})
}
