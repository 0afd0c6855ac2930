package combat

import (
	"errors"
	"fmt"
	"time"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

// ErrInsufficientMana is returned when a skill costs more mana than the
// character currently has.
var ErrInsufficientMana = errors.New("not enough mana")

// CooldownError is returned when a skill is used before its cooldown expires.
type CooldownError struct {
	// Remaining is the whole seconds until the skill is ready.
	Remaining int
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("skill on cooldown: %ds", e.Remaining)
}

// UseSkill transitions a skill from Ready to OnCooldown: it verifies the
// stored cooldown-expiry timestamp has passed and the character has the mana,
// then deducts the mana cost, sets the new expiry, and applies the skill's
// heal effect if any. The OnCooldown to Ready transition is implicit and
// time-based, evaluated lazily on the next attempt.
//
// Precondition: c must be non-nil with initialised maps.
// Postcondition: On failure (CooldownError or ErrInsufficientMana) the
// character is unchanged. On success, mana decreases by exactly the skill's
// cost and Cooldowns[skill.ID] == now + cooldown.
func UseSkill(c *character.Character, skill catalog.SkillDefinition, now time.Time) error {
	if remaining := c.SkillCooldownRemaining(skill.ID, now); remaining > 0 {
		return CooldownError{Remaining: remaining}
	}
	if c.Mana < skill.ManaCost {
		return ErrInsufficientMana
	}

	c.Mana -= skill.ManaCost
	c.Cooldowns[skill.ID] = now.Unix() + int64(skill.CooldownSeconds)

	if skill.HealAmount > 0 {
		c.Health += skill.HealAmount
		c.ClampVitals()
	}
	return nil
}
