package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/game/combat"
	"github.com/LinLovee/quest-bot-webapp/internal/game/dice"
)

func attacker() character.EffectiveStats {
	return character.EffectiveStats{
		Attack:      24,
		Defense:     8,
		CritChance:  10,
		DodgeChance: 5,
		CritDamage:  1.5,
	}
}

func defender() character.EffectiveStats {
	return character.EffectiveStats{Defense: 5}
}

// zeroVariance yields variance 0: Intn(9) returns 3, 3 + (-3) = 0.
const zeroVariance = 3

func TestResolveAttack_BasicNoCrit(t *testing.T) {
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.99}}

	result := combat.ResolveAttack(attacker(), defender(), nil, combat.DefaultPolicy(), src)

	// 24 + 0 variance, no crit, minus floor(5 * 0.4) = 2.
	assert.Equal(t, 22, result.Damage)
	assert.False(t, result.IsCrit)
	assert.Equal(t, 24, result.BaseDamage)
	assert.Equal(t, 1, result.Hits)
}

func TestResolveAttack_Crit(t *testing.T) {
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.05}}

	result := combat.ResolveAttack(attacker(), defender(), nil, combat.DefaultPolicy(), src)

	// 24 * 1.5 = 36, minus 2 mitigation.
	assert.Equal(t, 34, result.Damage)
	assert.True(t, result.IsCrit)
}

func TestResolveAttack_CritBoundary(t *testing.T) {
	// The crit roll is strict less-than: a draw exactly at chance/100 misses.
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.10}}

	result := combat.ResolveAttack(attacker(), defender(), nil, combat.DefaultPolicy(), src)

	assert.False(t, result.IsCrit)
	assert.Equal(t, 22, result.Damage)
}

func TestResolveAttack_VarianceBounds(t *testing.T) {
	pol := combat.DefaultPolicy()

	low := &dice.StubSource{Ints: []int{0}, Floats: []float64{0.99}}
	result := combat.ResolveAttack(attacker(), defender(), nil, pol, low)
	assert.Equal(t, 19, result.Damage, "variance -3")

	high := &dice.StubSource{Ints: []int{8}, Floats: []float64{0.99}}
	result = combat.ResolveAttack(attacker(), defender(), nil, pol, high)
	assert.Equal(t, 27, result.Damage, "variance +5")
}

func TestResolveAttack_MinimumDamage(t *testing.T) {
	weak := character.EffectiveStats{Attack: 1, CritDamage: 1.5}
	tank := character.EffectiveStats{Defense: 500}
	src := &dice.StubSource{Ints: []int{0}, Floats: []float64{0.99}}

	result := combat.ResolveAttack(weak, tank, nil, combat.DefaultPolicy(), src)

	assert.Equal(t, 1, result.Damage)
}

func TestResolveAttack_SkillMultiplier(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "power_strike", DamageMultiplier: 2.0}
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.99}}

	result := combat.ResolveAttack(attacker(), defender(), skill, combat.DefaultPolicy(), src)

	// 24 * 2.0 = 48, minus 2 mitigation.
	assert.Equal(t, 46, result.Damage)
	assert.False(t, result.IsCrit)
}

func TestResolveAttack_SkillCritPolicies(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "power_strike", DamageMultiplier: 2.0}

	t.Run("always", func(t *testing.T) {
		pol := combat.DefaultPolicy()
		pol.SkillCrit = combat.SkillCritAlways
		// An unfavourable crit roll must not matter.
		src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.99}}

		result := combat.ResolveAttack(attacker(), defender(), skill, pol, src)

		// 24 * 2.0 * 1.5 = 72, minus 2 mitigation.
		assert.Equal(t, 70, result.Damage)
		assert.True(t, result.IsCrit)
	})

	t.Run("never", func(t *testing.T) {
		pol := combat.DefaultPolicy()
		pol.SkillCrit = combat.SkillCritNever
		// A favourable crit roll must not matter either.
		src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.0}}

		result := combat.ResolveAttack(attacker(), defender(), skill, pol, src)

		assert.Equal(t, 46, result.Damage)
		assert.False(t, result.IsCrit)
	})

	t.Run("independent", func(t *testing.T) {
		pol := combat.DefaultPolicy()
		src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.05}}

		result := combat.ResolveAttack(attacker(), defender(), skill, pol, src)

		assert.Equal(t, 70, result.Damage)
		assert.True(t, result.IsCrit)
	})
}

func TestResolveAttack_SkillCritChanceBoost(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "focused_shot", DamageMultiplier: 1.0, CritChanceBoost: 30}
	// 0.35 would miss the base 10% chance but lands under the boosted 40%.
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.35}}

	result := combat.ResolveAttack(attacker(), defender(), skill, combat.DefaultPolicy(), src)

	assert.True(t, result.IsCrit)
	assert.Equal(t, 34, result.Damage)
}

func TestApplySkill(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "holy_shield", DamageMultiplier: 1.0, DefenseBoost: 10, CritChanceBoost: 5}

	buffed := combat.ApplySkill(attacker(), skill)

	assert.Equal(t, 18, buffed.Defense)
	assert.Equal(t, float64(15), buffed.CritChance)
	assert.Equal(t, attacker(), combat.ApplySkill(attacker(), nil))
}

func TestApplySkill_DefenseBoostRaisesMitigation(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "holy_shield", DamageMultiplier: 1.0, DefenseBoost: 10}
	pol := combat.DefaultPolicy()

	// Incoming hits against the buffed snapshot mitigate against the boosted
	// defense: 5 base absorbs 2, 15 boosted absorbs 6.
	plain := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.99}}
	result := combat.ResolveAttack(attacker(), defender(), nil, pol, plain)
	assert.Equal(t, 22, result.Damage)

	boosted := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.99}}
	result = combat.ResolveAttack(attacker(), combat.ApplySkill(defender(), skill), nil, pol, boosted)
	assert.Equal(t, 18, result.Damage)
}

func TestResolveAttack_SkillArmorPen(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "piercing", DamageMultiplier: 1.0, ArmorPen: 1.0}
	tank := character.EffectiveStats{Defense: 50}
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.99}}

	result := combat.ResolveAttack(attacker(), tank, skill, combat.DefaultPolicy(), src)

	// Full armor penetration ignores defense entirely.
	assert.Equal(t, 24, result.Damage)
}

func TestResolveAttack_BonusHits(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "multi_shot", DamageMultiplier: 1.0, BonusHits: 2}
	// Three hits with variance 0, -3, +5 and no crits.
	src := &dice.StubSource{Ints: []int{3, 0, 8}, Floats: []float64{0.99}}

	result := combat.ResolveAttack(attacker(), defender(), skill, combat.DefaultPolicy(), src)

	assert.Equal(t, 3, result.Hits)
	assert.Equal(t, 22+19+27, result.Damage)
}

func TestResolveAttack_BonusHitsMixedCrits(t *testing.T) {
	skill := &catalog.SkillDefinition{ID: "multi_shot", DamageMultiplier: 1.0, BonusHits: 1}
	// First hit crits, second does not.
	src := &dice.StubSource{Ints: []int{zeroVariance}, Floats: []float64{0.05, 0.99}}

	result := combat.ResolveAttack(attacker(), defender(), skill, combat.DefaultPolicy(), src)

	assert.Equal(t, 34+22, result.Damage)
	assert.True(t, result.IsCrit)
}

func TestRollDodge(t *testing.T) {
	dodgy := character.EffectiveStats{DodgeChance: 20}

	hit := &dice.StubSource{Floats: []float64{0.19}}
	assert.True(t, combat.RollDodge(dodgy, hit))

	miss := &dice.StubSource{Floats: []float64{0.20}}
	assert.False(t, combat.RollDodge(dodgy, miss))

	none := &dice.StubSource{Floats: []float64{0.0}}
	assert.False(t, combat.RollDodge(character.EffectiveStats{}, none))
}

func TestResolveAttack_DamageAlwaysPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		atk := character.EffectiveStats{
			Attack:     rapid.IntRange(1, 500).Draw(t, "attack"),
			CritChance: rapid.Float64Range(0, 100).Draw(t, "crit"),
			CritDamage: rapid.Float64Range(1, 3).Draw(t, "critDamage"),
		}
		def := character.EffectiveStats{
			Defense: rapid.IntRange(0, 1000).Draw(t, "defense"),
		}
		src := &dice.StubSource{
			Ints:   []int{rapid.IntRange(0, 8).Draw(t, "variance")},
			Floats: []float64{rapid.Float64Range(0, 1).Draw(t, "roll")},
		}

		result := combat.ResolveAttack(atk, def, nil, combat.DefaultPolicy(), src)

		require.GreaterOrEqual(t, result.Damage, 1)
		require.Equal(t, 1, result.Hits)
	})
}
