package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyDefinition defines a fightable enemy archetype.
type EnemyDefinition struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Emoji   string `yaml:"emoji"`
	Health  int    `yaml:"health"`
	Damage  int    `yaml:"damage"`
	Defense int    `yaml:"defense"`
	Gold    int    `yaml:"gold"`
	Exp     int    `yaml:"exp"`
	// Tier is the rough difficulty band, >= 1.
	Tier int `yaml:"tier"`
}

// Validate checks that the enemy satisfies basic invariants.
//
// Precondition: e must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty and all numeric
// fields are in range; returns an error on the first violation otherwise.
func (e *EnemyDefinition) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("enemy: id must not be empty")
	}
	if e.Name == "" {
		return fmt.Errorf("enemy %q: name must not be empty", e.ID)
	}
	if e.Health < 1 {
		return fmt.Errorf("enemy %q: health must be >= 1", e.ID)
	}
	if e.Damage < 0 {
		return fmt.Errorf("enemy %q: damage must be >= 0", e.ID)
	}
	if e.Defense < 0 {
		return fmt.Errorf("enemy %q: defense must be >= 0", e.ID)
	}
	if e.Gold < 0 {
		return fmt.Errorf("enemy %q: gold must be >= 0", e.ID)
	}
	if e.Exp < 0 {
		return fmt.Errorf("enemy %q: exp must be >= 0", e.ID)
	}
	if e.Tier < 1 {
		return fmt.Errorf("enemy %q: tier must be >= 1", e.ID)
	}
	return nil
}

// LoadEnemies reads all YAML files in dir and parses each as an EnemyDefinition.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated enemies or a non-nil error.
func LoadEnemies(dir string) ([]*EnemyDefinition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	enemies := make([]*EnemyDefinition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var e EnemyDefinition
		if err := yaml.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("parsing enemy file %s: %w", path, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("validating enemy file %s: %w", path, err)
		}
		enemies = append(enemies, &e)
	}
	return enemies, nil
}
