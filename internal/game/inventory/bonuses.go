// Package inventory provides equipment bonus aggregation and the shop
// operations (purchase, equip) over a character's inventory.
package inventory

import (
	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

// ApplyBonuses folds the character's equipped item bonuses into an effective
// stat snapshot. The character's stored base stats are never modified; bonuses
// are recomputed on every call.
//
// Equipment entries referencing an unknown item ID are skipped silently: a
// stale reference is a data-integrity wrinkle, not a user error.
//
// Precondition: c and cat must be non-nil.
// Postcondition: every numeric field >= the corresponding base stat when all
// bonuses are non-negative.
func ApplyBonuses(c *character.Character, cat *catalog.Catalog) character.EffectiveStats {
	stats := c.BaseStats()
	for _, itemID := range c.Equipment {
		def, ok := cat.Item(itemID)
		if !ok {
			continue
		}
		stats.Attack += def.Bonuses.Attack
		stats.Defense += def.Bonuses.Defense
		stats.CritChance += def.Bonuses.Crit
		stats.DodgeChance += def.Bonuses.Dodge
		stats.ManaRegen += def.Bonuses.ManaRegen
		stats.GoldBoost += def.Bonuses.GoldBoost
	}
	return stats
}
