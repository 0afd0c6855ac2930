package character

// EffectiveStats is a character's base stats plus equipment bonuses, computed
// fresh for a single operation and never persisted.
type EffectiveStats struct {
	Attack      int
	Defense     int
	CritChance  float64
	DodgeChance float64
	CritDamage  float64
	ManaRegen   int
	// GoldBoost is the summed gold-reward fraction from equipped items.
	GoldBoost float64
}

// BaseStats returns the character's stored stats as an effective snapshot with
// no equipment applied.
func (c *Character) BaseStats() EffectiveStats {
	return EffectiveStats{
		Attack:      c.Attack,
		Defense:     c.Defense,
		CritChance:  c.CritChance,
		DodgeChance: c.DodgeChance,
		CritDamage:  c.CritDamage,
	}
}
