// Package combat implements attack resolution and skill gating. All
// randomness flows through a dice.Source so every outcome is reproducible in
// tests.
package combat

import (
	"math"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/game/dice"
)

// SkillCrit values control how skill attacks interact with the critical roll.
const (
	// SkillCritIndependent rolls for crit normally on skill attacks.
	SkillCritIndependent = "independent"
	// SkillCritAlways makes every skill attack critical.
	SkillCritAlways = "always"
	// SkillCritNever suppresses the crit roll on skill attacks.
	SkillCritNever = "never"
)

// Policy holds the tunable combat constants. These are process-wide policy,
// not per-class data.
type Policy struct {
	// VarianceMin and VarianceMax bound the uniform damage variance,
	// inclusive on both ends.
	VarianceMin int
	VarianceMax int
	// MitigationFactor is the fraction of defender defense subtracted from
	// raw damage.
	MitigationFactor float64
	// SkillCrit is one of SkillCritIndependent, SkillCritAlways,
	// SkillCritNever.
	SkillCrit string
}

// DefaultPolicy returns the standard combat constants.
func DefaultPolicy() Policy {
	return Policy{
		VarianceMin:      -3,
		VarianceMax:      5,
		MitigationFactor: 0.4,
		SkillCrit:        SkillCritIndependent,
	}
}

// DamageResult holds the outcome of a single resolved attack. It is ephemeral
// and never persisted.
type DamageResult struct {
	// Damage is the final post-mitigation damage, always >= 1.
	Damage int
	// IsCrit reports whether any hit in the attack was critical.
	IsCrit bool
	// BaseDamage is the summed pre-mitigation damage across hits.
	BaseDamage int
	// Hits is the number of hits resolved (1 plus any skill bonus hits).
	Hits int
}

// ApplySkill folds a skill's caster-side effects into the effective snapshot
// for the duration of one attack: crit-chance boost and defense boost.
// Defender-side effects (armor penetration) are applied by ResolveAttack. A
// nil skill returns the snapshot unchanged.
func ApplySkill(attacker character.EffectiveStats, skill *catalog.SkillDefinition) character.EffectiveStats {
	if skill == nil {
		return attacker
	}
	attacker.CritChance += skill.CritChanceBoost
	attacker.Defense += skill.DefenseBoost
	return attacker
}

// ResolveAttack computes one attack's outcome given attacker and defender
// effective snapshots and an optional skill. It is a pure computation over its
// inputs and the supplied Source. The skill's caster-side effects are folded
// in via ApplySkill; callers pass the unbuffed attacker snapshot.
//
// Per hit: damage = attacker.Attack + variance, multiplied by the skill's
// damage multiplier if present, multiplied by attacker.CritDamage on a crit,
// then mitigated by defender.Defense * MitigationFactor and floored at 1.
//
// Precondition: src must be non-nil; pol.VarianceMax >= pol.VarianceMin.
// Postcondition: result.Damage >= result.Hits >= 1.
func ResolveAttack(attacker, defender character.EffectiveStats, skill *catalog.SkillDefinition, pol Policy, src dice.Source) DamageResult {
	attacker = ApplySkill(attacker, skill)
	critChance := attacker.CritChance
	defense := float64(defender.Defense)
	hits := 1
	if skill != nil {
		defense *= 1 - skill.ArmorPen
		hits += skill.BonusHits
	}

	result := DamageResult{Hits: hits}
	for i := 0; i < hits; i++ {
		variance := src.Intn(pol.VarianceMax-pol.VarianceMin+1) + pol.VarianceMin
		base := float64(attacker.Attack + variance)
		if skill != nil {
			base *= skill.DamageMultiplier
		}

		isCrit := false
		switch {
		case skill != nil && pol.SkillCrit == SkillCritAlways:
			isCrit = true
		case skill != nil && pol.SkillCrit == SkillCritNever:
			// no crit roll
		default:
			isCrit = src.Float64() < critChance/100
		}
		if isCrit {
			base *= attacker.CritDamage
			result.IsCrit = true
		}

		mitigated := base - defense*pol.MitigationFactor
		damage := int(math.Floor(mitigated))
		if damage < 1 {
			damage = 1
		}
		result.Damage += damage
		result.BaseDamage += int(math.Floor(base))
	}
	return result
}

// RollDodge reports whether the defender evades an incoming attack entirely.
// Dodge is rolled once, before any damage math, and applies to skill attacks
// as well; a successful dodge resolves the attack with zero damage.
//
// Precondition: src must be non-nil.
func RollDodge(defender character.EffectiveStats, src dice.Source) bool {
	if defender.DodgeChance <= 0 {
		return false
	}
	return src.Float64() < defender.DodgeChance/100
}
