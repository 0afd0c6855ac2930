package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/game/combat"
	"github.com/LinLovee/quest-bot-webapp/internal/game/inventory"
	"github.com/LinLovee/quest-bot-webapp/internal/storage/postgres"
)

// errInvalidInput marks a malformed or incomplete request body.
var errInvalidInput = errors.New("invalid input")

// errorResponse is the JSON error envelope returned by every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serialises v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto an HTTP status and the JSON error
// envelope. Not-found errors map to 404, duplicate creation to 409, invalid
// input and business-rule failures to 400, anything unexpected to 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var levelErr inventory.LevelTooLowError
	var cdErr combat.CooldownError
	switch {
	case errors.Is(err, postgres.ErrPlayerNotFound),
		errors.Is(err, inventory.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, postgres.ErrPlayerExists):
		return http.StatusConflict
	case errors.Is(err, errInvalidInput),
		errors.Is(err, inventory.ErrInsufficientGold),
		errors.Is(err, inventory.ErrNotOwned),
		errors.Is(err, inventory.ErrNotEquippable),
		errors.Is(err, combat.ErrInsufficientMana),
		errors.As(err, &levelErr),
		errors.As(err, &cdErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode parses a JSON request body into dst, surfacing malformed bodies as
// invalid input.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidInput
	}
	return nil
}
