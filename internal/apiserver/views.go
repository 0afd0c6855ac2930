package apiserver

import (
	"time"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/game/inventory"
)

// SkillView is a skill definition as rendered to clients, with the live
// remaining cooldown for the owning player.
type SkillView struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	CooldownSeconds  int     `json:"cooldown_seconds"`
	ManaCost         int     `json:"mana_cost"`
	DamageMultiplier float64 `json:"damage_multiplier"`
	HealAmount       int     `json:"heal_amount,omitempty"`
	BonusHits        int     `json:"bonus_hits,omitempty"`
	// CooldownRemaining is the whole seconds until the skill is ready, 0 if
	// ready now.
	CooldownRemaining int `json:"cooldown_remaining"`
}

// ClassView is a class definition as rendered in the class table dump.
type ClassView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Emoji        string      `json:"emoji"`
	Description  string      `json:"description"`
	Health       int         `json:"health"`
	Mana         int         `json:"mana"`
	Attack       int         `json:"attack"`
	Defense      int         `json:"defense"`
	CritChance   float64     `json:"crit_chance"`
	DodgeChance  float64     `json:"dodge_chance"`
	CritDamage   float64     `json:"crit_damage"`
	StartingGold int         `json:"starting_gold"`
	Skills       []SkillView `json:"skills"`
}

// EnemyView is an enemy definition as rendered in the enemy table dump.
type EnemyView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	Health  int    `json:"health"`
	Damage  int    `json:"damage"`
	Defense int    `json:"defense"`
	Gold    int    `json:"gold"`
	Exp     int    `json:"exp"`
	Tier    int    `json:"tier"`
}

// ItemView is an item definition as rendered in the shop dump.
type ItemView struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Emoji    string              `json:"emoji"`
	Category string              `json:"category"`
	Bonuses  catalog.StatBonuses `json:"bonuses"`
	Price    int                 `json:"price"`
	MinLevel int                 `json:"min_level"`
}

// PlayerView is a character rendered for display: stats include equipment
// bonuses, and skills carry live cooldown state.
type PlayerView struct {
	UserID     string `json:"user_id"`
	ClassID    string `json:"class_id"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	// ExpToNext is the experience still needed to reach the next level.
	ExpToNext int `json:"exp_to_next"`

	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Mana      int `json:"mana"`
	MaxMana   int `json:"max_mana"`

	// Attack and friends are effective values with equipment applied.
	Attack      int     `json:"attack"`
	Defense     int     `json:"defense"`
	CritChance  float64 `json:"crit_chance"`
	DodgeChance float64 `json:"dodge_chance"`
	CritDamage  float64 `json:"crit_damage"`

	Gold         int                                `json:"gold"`
	Inventory    map[string]int                     `json:"inventory"`
	Equipment    map[string]string                  `json:"equipment"`
	Skills       []SkillView                        `json:"skills"`
	Counters     character.Counters                 `json:"counters"`
	Achievements []string                           `json:"achievements"`
	Quests       map[string]character.QuestProgress `json:"quests"`
}

// LeaderboardEntry is one leaderboard row.
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"user_id"`
	ClassID string `json:"class_id"`
	Level   int    `json:"level"`
	// Experience is lifetime experience earned, the leaderboard tiebreaker.
	Experience int `json:"experience"`
}

func classView(def *catalog.ClassDefinition) ClassView {
	view := ClassView{
		ID:           def.ID,
		Name:         def.Name,
		Emoji:        def.Emoji,
		Description:  def.Description,
		Health:       def.Health,
		Mana:         def.Mana,
		Attack:       def.Attack,
		Defense:      def.Defense,
		CritChance:   def.CritChance,
		DodgeChance:  def.DodgeChance,
		CritDamage:   def.CritDamage,
		StartingGold: def.StartingGold,
		Skills:       make([]SkillView, 0, len(def.Skills)),
	}
	for _, s := range def.Skills {
		view.Skills = append(view.Skills, skillView(s, 0))
	}
	return view
}

func skillView(s catalog.SkillDefinition, remaining int) SkillView {
	return SkillView{
		ID:                s.ID,
		Name:              s.Name,
		CooldownSeconds:   s.CooldownSeconds,
		ManaCost:          s.ManaCost,
		DamageMultiplier:  s.DamageMultiplier,
		HealAmount:        s.HealAmount,
		BonusHits:         s.BonusHits,
		CooldownRemaining: remaining,
	}
}

// playerView renders a character with equipment bonuses folded into the
// displayed stats and per-skill cooldowns evaluated at now. The stored record
// is not modified.
func (h *Handler) playerView(c *character.Character, now time.Time) PlayerView {
	eff := inventory.ApplyBonuses(c, h.catalog)

	view := PlayerView{
		UserID:     c.UserID,
		ClassID:    c.ClassID,
		Level:      c.Level,
		Experience: c.Experience,
		ExpToNext:  h.rules.RequiredExp(c.Level) - c.Experience,

		Health:    c.Health,
		MaxHealth: c.MaxHealth,
		Mana:      c.Mana,
		MaxMana:   c.MaxMana,

		Attack:      eff.Attack,
		Defense:     eff.Defense,
		CritChance:  eff.CritChance,
		DodgeChance: eff.DodgeChance,
		CritDamage:  eff.CritDamage,

		Gold:         c.Gold,
		Inventory:    c.Inventory,
		Equipment:    c.Equipment,
		Counters:     c.Counters,
		Achievements: make([]string, 0, len(c.Achievements)),
		Quests:       c.Quests,
	}

	if class, ok := h.catalog.Class(c.ClassID); ok {
		view.Skills = make([]SkillView, 0, len(class.Skills))
		for _, s := range class.Skills {
			view.Skills = append(view.Skills, skillView(s, c.SkillCooldownRemaining(s.ID, now)))
		}
	}
	for _, a := range h.catalog.Achievements() {
		if c.Achievements[a.ID] {
			view.Achievements = append(view.Achievements, a.ID)
		}
	}
	return view
}
