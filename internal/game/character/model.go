// Package character defines the mutable player record and pure creation logic.
package character

import (
	"time"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
)

// Counters holds the cumulative lifetime statistics for a character.
type Counters struct {
	Kills       int `json:"kills"`
	BattlesWon  int `json:"battles_won"`
	BattlesLost int `json:"battles_lost"`
	DamageDealt int `json:"damage_dealt"`
	// GoldEarned accumulates battle and quest gold; spending never
	// decreases it.
	GoldEarned int `json:"gold_earned"`
	// TotalExp is the running total of experience earned, unaffected by
	// level-up resets.
	TotalExp int `json:"total_exp"`
}

// QuestProgress tracks one daily quest's counted metric and completion flag.
type QuestProgress struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// Character represents a player's persistent state. One exists per user ID.
//
// Invariant: Health <= MaxHealth and Mana <= MaxMana at all times;
// Level >= 1; Experience >= 0; Gold >= 0.
type Character struct {
	UserID  string
	ClassID string

	Level      int
	Experience int

	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int

	// Base stats. These drift upward via level-up scaling, independent of
	// the class base; equipment bonuses are never baked into them.
	Attack      int
	Defense     int
	CritChance  float64
	DodgeChance float64
	CritDamage  float64

	Gold int

	// Inventory maps item ID to owned quantity.
	Inventory map[string]int
	// Equipment maps equipment slot to the equipped item ID, at most one
	// item per slot.
	Equipment map[string]string
	// Cooldowns maps skill ID to its cooldown-expiry Unix timestamp.
	Cooldowns map[string]int64

	Counters Counters
	// Achievements is the set of unlocked achievement IDs.
	Achievements map[string]bool
	// Quests maps quest ID to its daily progress.
	Quests map[string]QuestProgress

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a level-1 character from the given class definition.
//
// Precondition: userID must be non-empty; class must not be nil.
// Postcondition: Health == MaxHealth, Mana == MaxMana, Gold equals the class's
// starting gold, and all maps are non-nil and empty.
func New(userID string, class *catalog.ClassDefinition, now time.Time) *Character {
	return &Character{
		UserID:  userID,
		ClassID: class.ID,

		Level:      1,
		Experience: 0,

		Health:    class.Health,
		MaxHealth: class.Health,
		Mana:      class.Mana,
		MaxMana:   class.Mana,

		Attack:      class.Attack,
		Defense:     class.Defense,
		CritChance:  class.CritChance,
		DodgeChance: class.DodgeChance,
		CritDamage:  class.CritDamage,

		Gold: class.StartingGold,

		Inventory:    make(map[string]int),
		Equipment:    make(map[string]string),
		Cooldowns:    make(map[string]int64),
		Achievements: make(map[string]bool),
		Quests:       make(map[string]QuestProgress),

		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ClampVitals enforces the vitals invariant: current health and mana never
// exceed their maximums and never drop below zero.
//
// Postcondition: 0 <= Health <= MaxHealth and 0 <= Mana <= MaxMana.
func (c *Character) ClampVitals() {
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	if c.Health < 0 {
		c.Health = 0
	}
	if c.Mana > c.MaxMana {
		c.Mana = c.MaxMana
	}
	if c.Mana < 0 {
		c.Mana = 0
	}
}

// SkillCooldownRemaining returns the whole seconds until the given skill's
// cooldown expires, or 0 if the skill is ready.
//
// Postcondition: Returns >= 0.
func (c *Character) SkillCooldownRemaining(skillID string, now time.Time) int {
	expiry, ok := c.Cooldowns[skillID]
	if !ok {
		return 0
	}
	remaining := expiry - now.Unix()
	if remaining < 0 {
		return 0
	}
	return int(remaining)
}

// EnsureMaps initialises any nil maps. Records loaded from storage may have
// been persisted before a map field existed.
//
// Postcondition: all map fields are non-nil.
func (c *Character) EnsureMaps() {
	if c.Inventory == nil {
		c.Inventory = make(map[string]int)
	}
	if c.Equipment == nil {
		c.Equipment = make(map[string]string)
	}
	if c.Cooldowns == nil {
		c.Cooldowns = make(map[string]int64)
	}
	if c.Achievements == nil {
		c.Achievements = make(map[string]bool)
	}
	if c.Quests == nil {
		c.Quests = make(map[string]QuestProgress)
	}
}
