package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Item category constants for ItemDefinition.Category.
const (
	CategoryWeapon    = "weapon"
	CategoryArmor     = "armor"
	CategoryAccessory = "accessory"
	CategoryPotion    = "potion"
)

// validCategories is the set of valid item categories.
var validCategories = map[string]bool{
	CategoryWeapon:    true,
	CategoryArmor:     true,
	CategoryAccessory: true,
	CategoryPotion:    true,
}

// StatBonuses holds the stat modifiers an item grants while equipped (or, for
// potions, when consumed). Zero values mean "no bonus".
type StatBonuses struct {
	Attack    int     `yaml:"attack" json:"attack,omitempty"`
	Defense   int     `yaml:"defense" json:"defense,omitempty"`
	Crit      float64 `yaml:"crit" json:"crit,omitempty"`
	Dodge     float64 `yaml:"dodge" json:"dodge,omitempty"`
	ManaRegen int     `yaml:"mana_regen" json:"mana_regen,omitempty"`
	Heal      int     `yaml:"heal" json:"heal,omitempty"`
	// GoldBoost is a fraction added to gold rewards, e.g. 0.1 for +10%.
	GoldBoost float64 `yaml:"gold_boost" json:"gold_boost,omitempty"`
}

// IsZero reports whether the item grants no bonuses at all.
func (b StatBonuses) IsZero() bool {
	return b == StatBonuses{}
}

// ItemDefinition defines a purchasable item.
type ItemDefinition struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Emoji    string      `yaml:"emoji"`
	Category string      `yaml:"category"`
	Bonuses  StatBonuses `yaml:"bonuses"`
	Price    int         `yaml:"price"`
	MinLevel int         `yaml:"min_level"`
}

// Validate checks that the ItemDefinition satisfies its invariants.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Category is valid,
// Price >= 0, MinLevel >= 1, and at least one bonus is set.
func (d *ItemDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("item: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("item %q: name must not be empty", d.ID)
	}
	if !validCategories[d.Category] {
		return fmt.Errorf("item %q: category must be one of weapon, armor, accessory, potion; got %q", d.ID, d.Category)
	}
	if d.Price < 0 {
		return fmt.Errorf("item %q: price must be >= 0", d.ID)
	}
	if d.MinLevel < 1 {
		return fmt.Errorf("item %q: min_level must be >= 1", d.ID)
	}
	if d.Bonuses.IsZero() {
		return fmt.Errorf("item %q: at least one bonus must be set", d.ID)
	}
	return nil
}

// LoadItems reads all YAML files in dir and parses each as an ItemDefinition.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated items or a non-nil error.
func LoadItems(dir string) ([]*ItemDefinition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	items := make([]*ItemDefinition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d ItemDefinition
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing item file %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("validating item file %s: %w", path, err)
		}
		items = append(items, &d)
	}
	return items, nil
}
