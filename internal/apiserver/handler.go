// Package apiserver exposes the game engine over a JSON HTTP API. Handlers
// run a load, compute, save cycle against the player store; a per-user lock
// keeps that cycle atomic for each player while leaving different players
// fully concurrent.
package apiserver

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/config"
	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/game/combat"
	"github.com/LinLovee/quest-bot-webapp/internal/game/dice"
	"github.com/LinLovee/quest-bot-webapp/internal/game/progression"
)

// PlayerStore is the persistence port the handlers require. The PostgreSQL
// repository satisfies it in production; tests use an in-memory fake.
type PlayerStore interface {
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
	Get(ctx context.Context, userID string) (*character.Character, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Save(ctx context.Context, c *character.Character) error
	TopN(ctx context.Context, n int) ([]*character.Character, error)
}

// HealthFunc reports backend health for the healthz endpoint.
type HealthFunc func(ctx context.Context) error

// Handler holds the wired dependencies behind the API surface.
type Handler struct {
	store   PlayerStore
	catalog *catalog.Catalog
	dice    dice.Source
	logger  *zap.Logger

	policy          combat.Policy
	rules           progression.Rules
	leaderboardSize int

	health HealthFunc
	locks  *userLocks
	now    func() time.Time
}

// NewHandler wires the API handler from its dependencies and game config.
//
// Precondition: store, cat, src, and logger must be non-nil; cfg must be
// validated. health may be nil, in which case healthz always reports ok.
func NewHandler(store PlayerStore, cat *catalog.Catalog, src dice.Source, cfg config.GameConfig, health HealthFunc, logger *zap.Logger) *Handler {
	policy := combat.DefaultPolicy()
	policy.MitigationFactor = cfg.MitigationFactor
	policy.SkillCrit = cfg.SkillCritPolicy

	return &Handler{
		store:   store,
		catalog: cat,
		dice:    src,
		logger:  logger,

		policy:          policy,
		rules:           progression.Rules{ExpBase: cfg.LevelUpExpBase, Growth: cfg.LevelUpGrowth},
		leaderboardSize: cfg.LeaderboardSize,

		health: health,
		locks:  newUserLocks(),
		now:    time.Now,
	}
}

// Routes returns the fully assembled HTTP handler with request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/classes", h.handleClasses)
	mux.HandleFunc("GET /api/enemies", h.handleEnemies)
	mux.HandleFunc("GET /api/items", h.handleItems)

	mux.HandleFunc("POST /api/create", h.handleCreate)
	mux.HandleFunc("GET /api/player", h.handlePlayer)
	mux.HandleFunc("GET /api/leaderboard", h.handleLeaderboard)

	mux.HandleFunc("POST /api/buy-item", h.handleBuyItem)
	mux.HandleFunc("POST /api/equip-item", h.handleEquipItem)

	mux.HandleFunc("POST /api/attack", h.handleAttack)
	mux.HandleFunc("POST /api/battle-end", h.handleBattleEnd)

	mux.HandleFunc("GET /healthz", h.handleHealthz)

	return withLogging(h.logger, mux)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
