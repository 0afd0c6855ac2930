package apiserver

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

// CreateRequest is the body for POST /api/create.
type CreateRequest struct {
	UserID  string `json:"user_id"`
	ClassID string `json:"class_id"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.UserID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: user_id is required", errInvalidInput))
		return
	}
	class, ok := h.catalog.Class(req.ClassID)
	if !ok {
		writeError(w, h.logger, fmt.Errorf("%w: unknown class %q", errInvalidInput, req.ClassID))
		return
	}

	lock := h.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	now := h.now()
	created, err := h.store.Create(r.Context(), character.New(req.UserID, class, now))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("player created",
		zap.String("user_id", req.UserID),
		zap.String("class_id", req.ClassID),
	)
	writeJSON(w, http.StatusCreated, h.playerView(created, now))
}

func (h *Handler) handlePlayer(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: userId is required", errInvalidInput))
		return
	}

	c, err := h.store.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.playerView(c, h.now()))
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	top, err := h.store.TopN(r.Context(), h.leaderboardSize)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entries := make([]LeaderboardEntry, 0, len(top))
	for i, c := range top {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     c.UserID,
			ClassID:    c.ClassID,
			Level:      c.Level,
			Experience: c.Counters.TotalExp,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}
