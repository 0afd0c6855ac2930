package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/game/inventory"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	items := []*catalog.ItemDefinition{
		{ID: "great_sword", Name: "Great Sword", Category: catalog.CategoryWeapon,
			Bonuses: catalog.StatBonuses{Attack: 8}, Price: 100, MinLevel: 1},
		{ID: "steel_armor", Name: "Steel Armor", Category: catalog.CategoryArmor,
			Bonuses: catalog.StatBonuses{Defense: 10}, Price: 120, MinLevel: 1},
		{ID: "dagger", Name: "Assassin's Dagger", Category: catalog.CategoryWeapon,
			Bonuses: catalog.StatBonuses{Attack: 10, Crit: 10}, Price: 90, MinLevel: 3},
		{ID: "shadow_cloak", Name: "Shadow Cloak", Category: catalog.CategoryArmor,
			Bonuses: catalog.StatBonuses{Defense: 5, Dodge: 8}, Price: 95, MinLevel: 1},
		{ID: "staff", Name: "Magic Staff", Category: catalog.CategoryWeapon,
			Bonuses: catalog.StatBonuses{Attack: 5, ManaRegen: 5}, Price: 110, MinLevel: 1},
		{ID: "lucky_charm", Name: "Lucky Charm", Category: catalog.CategoryAccessory,
			Bonuses: catalog.StatBonuses{GoldBoost: 0.1}, Price: 60, MinLevel: 1},
		{ID: "health_potion", Name: "Health Potion", Category: catalog.CategoryPotion,
			Bonuses: catalog.StatBonuses{Heal: 50}, Price: 30, MinLevel: 1},
	}
	for _, d := range items {
		require.NoError(t, cat.RegisterItem(d))
	}
	return cat
}

func testCharacter() *character.Character {
	return character.New("u", &catalog.ClassDefinition{
		ID: "warrior", Name: "Warrior",
		Health: 180, Mana: 40, Attack: 20, Defense: 12,
		CritChance: 8, DodgeChance: 3, CritDamage: 1.5,
		StartingGold: 150,
	}, time.Now())
}

func TestApplyBonuses_NoEquipment(t *testing.T) {
	cat := testCatalog(t)
	c := testCharacter()
	stats := inventory.ApplyBonuses(c, cat)
	assert.Equal(t, c.BaseStats(), stats)
}

func TestApplyBonuses_AccumulatesAcrossSlots(t *testing.T) {
	cat := testCatalog(t)
	c := testCharacter()
	c.Equipment[inventory.SlotWeapon] = "dagger"
	c.Equipment[inventory.SlotArmor] = "shadow_cloak"
	c.Equipment[inventory.SlotAccessory] = "lucky_charm"

	stats := inventory.ApplyBonuses(c, cat)
	assert.Equal(t, 30, stats.Attack)  // 20 + 10
	assert.Equal(t, 17, stats.Defense) // 12 + 5
	assert.InDelta(t, 18, stats.CritChance, 1e-9)
	assert.InDelta(t, 11, stats.DodgeChance, 1e-9)
	assert.InDelta(t, 0.1, stats.GoldBoost, 1e-9)
}

func TestApplyBonuses_DoesNotMutateBaseStats(t *testing.T) {
	cat := testCatalog(t)
	c := testCharacter()
	c.Equipment[inventory.SlotWeapon] = "great_sword"

	_ = inventory.ApplyBonuses(c, cat)
	_ = inventory.ApplyBonuses(c, cat)
	// Recomputed every time, never baked in.
	assert.Equal(t, 20, c.Attack)
	stats := inventory.ApplyBonuses(c, cat)
	assert.Equal(t, 28, stats.Attack)
}

func TestApplyBonuses_SkipsUnknownItems(t *testing.T) {
	cat := testCatalog(t)
	c := testCharacter()
	c.Equipment[inventory.SlotWeapon] = "removed_item"

	stats := inventory.ApplyBonuses(c, cat)
	assert.Equal(t, c.BaseStats(), stats)
}

func TestApplyBonuses_ManaRegen(t *testing.T) {
	cat := testCatalog(t)
	c := testCharacter()
	c.Equipment[inventory.SlotWeapon] = "staff"

	stats := inventory.ApplyBonuses(c, cat)
	assert.Equal(t, 5, stats.ManaRegen)
	assert.Equal(t, 25, stats.Attack)
}
