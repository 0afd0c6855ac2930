package character_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

func testClass() *catalog.ClassDefinition {
	return &catalog.ClassDefinition{
		ID: "warrior", Name: "Warrior",
		Health: 180, Mana: 40, Attack: 20, Defense: 12,
		CritChance: 8, DodgeChance: 3, CritDamage: 1.5,
		StartingGold: 150,
		Skills: []catalog.SkillDefinition{
			{ID: "power_strike", Name: "Power Strike", CooldownSeconds: 30, ManaCost: 25, DamageMultiplier: 1.5},
		},
	}
}

func TestNew_FullVitalsAndStartingGold(t *testing.T) {
	now := time.Now()
	c := character.New("user-1", testClass(), now)

	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "warrior", c.ClassID)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 0, c.Experience)
	assert.Equal(t, c.MaxHealth, c.Health)
	assert.Equal(t, c.MaxMana, c.Mana)
	assert.Equal(t, 180, c.MaxHealth)
	assert.Equal(t, 40, c.MaxMana)
	assert.Equal(t, 150, c.Gold)
	assert.Equal(t, now, c.CreatedAt)

	assert.NotNil(t, c.Inventory)
	assert.NotNil(t, c.Equipment)
	assert.NotNil(t, c.Cooldowns)
	assert.NotNil(t, c.Achievements)
	assert.NotNil(t, c.Quests)
}

func TestClampVitals(t *testing.T) {
	c := character.New("u", testClass(), time.Now())
	c.Health = 500
	c.Mana = -10
	c.ClampVitals()
	assert.Equal(t, c.MaxHealth, c.Health)
	assert.Equal(t, 0, c.Mana)
}

func TestClampVitals_Property_AlwaysWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := character.New("u", testClass(), time.Now())
		c.Health = rapid.IntRange(-100, 1000).Draw(rt, "health")
		c.Mana = rapid.IntRange(-100, 1000).Draw(rt, "mana")
		c.ClampVitals()
		assert.GreaterOrEqual(rt, c.Health, 0)
		assert.LessOrEqual(rt, c.Health, c.MaxHealth)
		assert.GreaterOrEqual(rt, c.Mana, 0)
		assert.LessOrEqual(rt, c.Mana, c.MaxMana)
	})
}

func TestSkillCooldownRemaining(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	c := character.New("u", testClass(), now)

	// Never used: ready.
	assert.Equal(t, 0, c.SkillCooldownRemaining("power_strike", now))

	c.Cooldowns["power_strike"] = now.Unix() + 30
	assert.Equal(t, 30, c.SkillCooldownRemaining("power_strike", now))
	assert.Equal(t, 10, c.SkillCooldownRemaining("power_strike", now.Add(20*time.Second)))
	assert.Equal(t, 0, c.SkillCooldownRemaining("power_strike", now.Add(31*time.Second)))
}

func TestEnsureMaps(t *testing.T) {
	c := &character.Character{UserID: "u"}
	require.Nil(t, c.Inventory)
	c.EnsureMaps()
	assert.NotNil(t, c.Inventory)
	assert.NotNil(t, c.Equipment)
	assert.NotNil(t, c.Cooldowns)
	assert.NotNil(t, c.Achievements)
	assert.NotNil(t, c.Quests)

	// Existing maps are preserved.
	c.Inventory["sword"] = 2
	c.EnsureMaps()
	assert.Equal(t, 2, c.Inventory["sword"])
}
