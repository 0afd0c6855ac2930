// Package catalog provides the immutable game reference data: character
// classes, enemies, items, achievements, and daily quests. Definitions are
// loaded once from YAML at process start and never mutated.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SkillDefinition describes a class skill and its optional secondary effects.
type SkillDefinition struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	CooldownSeconds  int     `yaml:"cooldown_seconds"`
	ManaCost         int     `yaml:"mana_cost"`
	DamageMultiplier float64 `yaml:"damage_multiplier"`
	// Optional secondary effects; zero values mean "no effect".
	DefenseBoost    int     `yaml:"defense_boost"`
	HealAmount      int     `yaml:"heal_amount"`
	BonusHits       int     `yaml:"bonus_hits"`
	ArmorPen        float64 `yaml:"armor_pen"`
	CritChanceBoost float64 `yaml:"crit_chance_boost"`
}

// Validate checks the skill's invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, CooldownSeconds >= 0,
// ManaCost >= 0, DamageMultiplier > 0, BonusHits >= 0, and ArmorPen is in [0, 1].
func (s SkillDefinition) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("skill: id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("skill %q: name must not be empty", s.ID)
	}
	if s.CooldownSeconds < 0 {
		return fmt.Errorf("skill %q: cooldown_seconds must be >= 0", s.ID)
	}
	if s.ManaCost < 0 {
		return fmt.Errorf("skill %q: mana_cost must be >= 0", s.ID)
	}
	if s.DamageMultiplier <= 0 {
		return fmt.Errorf("skill %q: damage_multiplier must be > 0", s.ID)
	}
	if s.BonusHits < 0 {
		return fmt.Errorf("skill %q: bonus_hits must be >= 0", s.ID)
	}
	if s.ArmorPen < 0 || s.ArmorPen > 1 {
		return fmt.Errorf("skill %q: armor_pen must be in [0, 1]", s.ID)
	}
	return nil
}

// ClassDefinition defines a playable character class.
type ClassDefinition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Emoji       string `yaml:"emoji"`
	Description string `yaml:"description"`

	Health  int `yaml:"health"`
	Mana    int `yaml:"mana"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	// CritChance and DodgeChance are percentages in [0, 100].
	CritChance  float64 `yaml:"crit_chance"`
	DodgeChance float64 `yaml:"dodge_chance"`
	// CritDamage is the multiplier applied to critical hits.
	CritDamage   float64 `yaml:"crit_damage"`
	StartingGold int     `yaml:"starting_gold"`

	Skills []SkillDefinition `yaml:"skills"`
}

// Validate checks that the class satisfies basic invariants.
//
// Precondition: c must not be nil.
// Postcondition: Returns nil iff all numeric fields are in range and every
// attached skill validates; returns an error on the first violation otherwise.
func (c *ClassDefinition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("class: id must not be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("class %q: name must not be empty", c.ID)
	}
	if c.Health < 1 {
		return fmt.Errorf("class %q: health must be >= 1", c.ID)
	}
	if c.Mana < 0 {
		return fmt.Errorf("class %q: mana must be >= 0", c.ID)
	}
	if c.Attack < 1 {
		return fmt.Errorf("class %q: attack must be >= 1", c.ID)
	}
	if c.Defense < 0 {
		return fmt.Errorf("class %q: defense must be >= 0", c.ID)
	}
	if c.CritChance < 0 || c.CritChance > 100 {
		return fmt.Errorf("class %q: crit_chance must be in [0, 100]", c.ID)
	}
	if c.DodgeChance < 0 || c.DodgeChance > 100 {
		return fmt.Errorf("class %q: dodge_chance must be in [0, 100]", c.ID)
	}
	if c.CritDamage < 1 {
		return fmt.Errorf("class %q: crit_damage must be >= 1", c.ID)
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("class %q: starting_gold must be >= 0", c.ID)
	}
	for _, s := range c.Skills {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("class %q: %w", c.ID, err)
		}
	}
	return nil
}

// Skill returns the class skill with the given id and whether it exists.
func (c *ClassDefinition) Skill(id string) (SkillDefinition, bool) {
	for _, s := range c.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return SkillDefinition{}, false
}

// LoadClasses reads all YAML files in dir and parses each as a ClassDefinition.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated classes or a non-nil error.
func LoadClasses(dir string) ([]*ClassDefinition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*ClassDefinition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c ClassDefinition
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("validating class file %s: %w", path, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}
