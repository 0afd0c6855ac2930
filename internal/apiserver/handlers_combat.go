package apiserver

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/game/combat"
	"github.com/LinLovee/quest-bot-webapp/internal/game/inventory"
	"github.com/LinLovee/quest-bot-webapp/internal/game/progression"
)

// AttackRequest is the body for POST /api/attack. EnemyID is optional; when
// present the named enemy's defense mitigates the hit.
type AttackRequest struct {
	UserID  string `json:"user_id"`
	EnemyID string `json:"enemy_id"`
	IsSkill bool   `json:"is_skill"`
	SkillID string `json:"skill_id"`
}

// AttackResponse is the resolved outcome of one attack.
type AttackResponse struct {
	Damage     int  `json:"damage"`
	IsCrit     bool `json:"is_crit"`
	BaseDamage int  `json:"base_damage"`
	Hits       int  `json:"hits"`
	// Dodged reports the defender evaded the attack entirely; damage is 0.
	Dodged        bool `json:"dodged"`
	RemainingMana int  `json:"remaining_mana"`
	Health        int  `json:"health"`
	// Defense is the attacker's effective defense for this attack window,
	// including any skill defense boost. Clients simulating the enemy's
	// counterattacks mitigate against it.
	Defense int `json:"defense"`
}

// BattleEndRequest is the body for POST /api/battle-end.
type BattleEndRequest struct {
	UserID      string `json:"user_id"`
	EnemyID     string `json:"enemy_id"`
	Won         bool   `json:"won"`
	Gold        int    `json:"gold"`
	Exp         int    `json:"exp"`
	DamageDealt int    `json:"damage_dealt"`
	DamageTaken int    `json:"damage_taken"`
}

// BattleEndResponse carries the progression events and the updated player.
type BattleEndResponse struct {
	GoldEarned           int        `json:"gold_earned"`
	ExpEarned            int        `json:"exp_earned"`
	LeveledUp            bool       `json:"leveled_up"`
	Level                int        `json:"level"`
	UnlockedAchievements []string   `json:"unlocked_achievements"`
	CompletedQuests      []string   `json:"completed_quests"`
	Player               PlayerView `json:"player"`
}

func (h *Handler) handleAttack(w http.ResponseWriter, r *http.Request) {
	var req AttackRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.UserID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: user_id is required", errInvalidInput))
		return
	}
	if req.IsSkill && req.SkillID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: skill_id is required for skill attacks", errInvalidInput))
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

	var defender character.EffectiveStats
	if req.EnemyID != "" {
		enemy, ok := h.catalog.Enemy(req.EnemyID)
		if !ok {
			writeError(w, h.logger, fmt.Errorf("%w: unknown enemy %q", errInvalidInput, req.EnemyID))
			return
		}
		defender = character.EffectiveStats{Defense: enemy.Defense}
	}

	attacker := inventory.ApplyBonuses(c, h.catalog)

	var skill *catalog.SkillDefinition
	if req.IsSkill {
		class, ok := h.catalog.Class(c.ClassID)
		if !ok {
			writeError(w, h.logger, fmt.Errorf("character references unknown class %q", c.ClassID))
			return
		}
		def, ok := class.Skill(req.SkillID)
		if !ok {
			writeError(w, h.logger, fmt.Errorf("%w: unknown skill %q", errInvalidInput, req.SkillID))
			return
		}
		if err := combat.UseSkill(c, def, h.now()); err != nil {
			writeError(w, h.logger, err)
			return
		}
		skill = &def
	} else if attacker.ManaRegen > 0 {
		// Plain attacks trickle mana back from regen equipment.
		c.Mana += attacker.ManaRegen
		c.ClampVitals()
	}

	// Dodge is rolled before any damage math and negates the attack
	// entirely, skills included. The skill's cooldown and mana are still
	// spent.
	var result combat.DamageResult
	dodged := combat.RollDodge(defender, h.dice)
	if !dodged {
		result = combat.ResolveAttack(attacker, defender, skill, h.policy, h.dice)
	}
	buffed := combat.ApplySkill(attacker, skill)

	if err := h.store.Save(r.Context(), c); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Debug("attack resolved",
		zap.String("user_id", req.UserID),
		zap.Bool("is_skill", req.IsSkill),
		zap.Int("damage", result.Damage),
		zap.Bool("is_crit", result.IsCrit),
	)
	writeJSON(w, http.StatusOK, AttackResponse{
		Damage:        result.Damage,
		IsCrit:        result.IsCrit,
		BaseDamage:    result.BaseDamage,
		Hits:          result.Hits,
		Dodged:        dodged,
		RemainingMana: c.Mana,
		Health:        c.Health,
		Defense:       buffed.Defense,
	})
}

func (h *Handler) handleBattleEnd(w http.ResponseWriter, r *http.Request) {
	var req BattleEndRequest
	if err := decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.UserID == "" {
		writeError(w, h.logger, fmt.Errorf("%w: user_id is required", errInvalidInput))
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

	gold, exp := req.Gold, req.Exp
	if gold == 0 && exp == 0 {
		// Fall back to the catalog's rewards when the client sends none.
		if enemy, ok := h.catalog.Enemy(req.EnemyID); ok {
			gold, exp = enemy.Gold, enemy.Exp
		}
	}

	goldBoost := inventory.ApplyBonuses(c, h.catalog).GoldBoost
	result := progression.Award(c, progression.BattleReport{
		Won:         req.Won,
		Gold:        gold,
		Exp:         exp,
		DamageDealt: req.DamageDealt,
	}, h.catalog, h.rules, goldBoost)

	if err := h.store.Save(r.Context(), c); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("battle ended",
		zap.String("user_id", req.UserID),
		zap.String("enemy_id", req.EnemyID),
		zap.Bool("won", req.Won),
		zap.Bool("leveled_up", result.LeveledUp),
		zap.Int("level", result.Level),
	)
	writeJSON(w, http.StatusOK, BattleEndResponse{
		GoldEarned:           result.GoldEarned,
		ExpEarned:            result.ExpEarned,
		LeveledUp:            result.LeveledUp,
		Level:                result.Level,
		UnlockedAchievements: emptyIfNil(result.UnlockedAchievements),
		CompletedQuests:      emptyIfNil(result.CompletedQuests),
		Player:               h.playerView(c, h.now()),
	})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
