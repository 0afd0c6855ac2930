// Package progression applies battle outcomes to a character: reward grants,
// level-ups, achievement unlocks, and daily quest completion. Every function
// is a pure state transition over the character, with no I/O.
package progression

import (
	"math"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

// Rules holds the tunable progression constants.
type Rules struct {
	// ExpBase scales the per-level experience requirement: reaching the
	// next level from level N costs ExpBase * N.
	ExpBase int
	// Growth multiplies max health, max mana, attack, and defense on each
	// level-up, truncating to integers.
	Growth float64
}

// DefaultRules returns the standard progression constants.
func DefaultRules() Rules {
	return Rules{ExpBase: 150, Growth: 1.1}
}

// BattleReport summarises one finished battle for reward accounting.
type BattleReport struct {
	Won bool
	// Gold and Exp are the enemy's base rewards, before any gold boost.
	Gold int
	Exp  int
	// DamageDealt is the total damage the player landed during the battle.
	DamageDealt int
}

// Result describes what Award changed on the character.
type Result struct {
	// GoldEarned is the boosted gold actually granted, 0 on a loss.
	GoldEarned int
	// ExpEarned is the experience granted, 0 on a loss.
	ExpEarned int
	// LeveledUp reports whether at least one level was gained.
	LeveledUp bool
	// Level is the character's level after the award.
	Level int
	// UnlockedAchievements lists achievement IDs newly unlocked, in
	// catalog order.
	UnlockedAchievements []string
	// CompletedQuests lists quest IDs newly completed, in catalog order.
	CompletedQuests []string
}

// RequiredExp returns the experience needed to advance from the given level
// to the next one.
//
// Precondition: level >= 1.
func (r Rules) RequiredExp(level int) int {
	return r.ExpBase * level
}

// Award applies a battle report to the character: grants rewards on a win,
// updates lifetime counters, processes level-ups, restores vitals, and
// evaluates achievements and quests. The character's vitals are fully
// restored regardless of outcome, so every battle starts fresh.
//
// Precondition: c must be non-nil with initialised maps; cat must be non-nil.
// goldBoost is the equipment gold-boost fraction, 0 for none.
// Postcondition: c.Health == c.MaxHealth and c.Mana == c.MaxMana.
func Award(c *character.Character, report BattleReport, cat *catalog.Catalog, rules Rules, goldBoost float64) Result {
	result := Result{Level: c.Level}

	if report.Won {
		gold := int(math.Floor(float64(report.Gold) * (1 + goldBoost)))
		c.Gold += gold
		c.Experience += report.Exp
		c.Counters.Kills++
		c.Counters.BattlesWon++
		c.Counters.TotalExp += report.Exp
		c.Counters.GoldEarned += gold

		result.GoldEarned = gold
		result.ExpEarned = report.Exp

		result.CompletedQuests = advanceQuests(c, cat, report, gold)
	} else {
		c.Counters.BattlesLost++
	}
	c.Counters.DamageDealt += report.DamageDealt

	for c.Experience >= rules.RequiredExp(c.Level) {
		c.Experience -= rules.RequiredExp(c.Level)
		c.Level++
		c.MaxHealth = int(float64(c.MaxHealth) * rules.Growth)
		c.MaxMana = int(float64(c.MaxMana) * rules.Growth)
		c.Attack = int(float64(c.Attack) * rules.Growth)
		c.Defense = int(float64(c.Defense) * rules.Growth)
		result.LeveledUp = true
	}
	result.Level = c.Level

	// Every battle ends with a full restore, whether won, lost, or leveled.
	c.Health = c.MaxHealth
	c.Mana = c.MaxMana

	result.UnlockedAchievements = unlockAchievements(c, cat)
	return result
}

// metricValue reads the character's cumulative value for a metric.
func metricValue(c *character.Character, metric string) int {
	switch metric {
	case catalog.MetricKills:
		return c.Counters.Kills
	case catalog.MetricGoldEarned:
		return c.Counters.GoldEarned
	case catalog.MetricExpGained:
		return c.Counters.TotalExp
	case catalog.MetricBattlesWon:
		return c.Counters.BattlesWon
	case catalog.MetricLevel:
		return c.Level
	default:
		return 0
	}
}

// unlockAchievements marks every achievement whose threshold the character
// now meets. Already-unlocked achievements are skipped, so the unlock fires
// at most once per achievement for the character's lifetime.
func unlockAchievements(c *character.Character, cat *catalog.Catalog) []string {
	var unlocked []string
	for _, a := range cat.Achievements() {
		if c.Achievements[a.ID] {
			continue
		}
		if metricValue(c, a.Metric) >= a.Threshold {
			c.Achievements[a.ID] = true
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked
}

// questDelta maps a won battle's report onto a quest metric increment.
// goldEarned is the boosted gold actually granted, so gold quests advance at
// the same rate as the gold-earned counter.
func questDelta(metric string, report BattleReport, goldEarned int) int {
	switch metric {
	case catalog.MetricKills:
		return 1
	case catalog.MetricBattlesWon:
		return 1
	case catalog.MetricGoldEarned:
		return goldEarned
	case catalog.MetricExpGained:
		return report.Exp
	default:
		return 0
	}
}

// advanceQuests increments quest progress for a won battle and pays out each
// quest's gold reward exactly once, when its target is first reached.
// Completed quests stop accumulating progress until reset.
func advanceQuests(c *character.Character, cat *catalog.Catalog, report BattleReport, goldEarned int) []string {
	var completed []string
	for _, q := range cat.Quests() {
		progress := c.Quests[q.ID]
		if progress.Completed {
			continue
		}
		progress.Progress += questDelta(q.Metric, report, goldEarned)
		if progress.Progress >= q.Target {
			progress.Progress = q.Target
			progress.Completed = true
			c.Gold += q.GoldReward
			c.Counters.GoldEarned += q.GoldReward
			completed = append(completed, q.ID)
		}
		c.Quests[q.ID] = progress
	}
	return completed
}

// ResetDailyQuests clears all quest progress, making every quest completable
// again. Intended to be invoked once per reset period.
//
// Postcondition: c.Quests is empty.
func ResetDailyQuests(c *character.Character) {
	c.Quests = make(map[string]character.QuestProgress)
}
