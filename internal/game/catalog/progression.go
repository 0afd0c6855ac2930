package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Metric names tracked by achievements and daily quests.
const (
	MetricKills      = "kills"
	MetricGoldEarned = "gold_earned"
	MetricExpGained  = "exp_gained"
	MetricBattlesWon = "battles_won"
	MetricLevel      = "level"
)

// validMetrics is the set of metrics achievements and quests may track.
var validMetrics = map[string]bool{
	MetricKills:      true,
	MetricGoldEarned: true,
	MetricExpGained:  true,
	MetricBattlesWon: true,
	MetricLevel:      true,
}

// AchievementDefinition defines a one-time unlock over cumulative counters.
type AchievementDefinition struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Emoji     string `yaml:"emoji"`
	Metric    string `yaml:"metric"`
	Threshold int    `yaml:"threshold"`
}

// Validate checks the achievement's invariants.
func (a *AchievementDefinition) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("achievement: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("achievement %q: name must not be empty", a.ID)
	}
	if !validMetrics[a.Metric] {
		return fmt.Errorf("achievement %q: unknown metric %q", a.ID, a.Metric)
	}
	if a.Threshold < 1 {
		return fmt.Errorf("achievement %q: threshold must be >= 1", a.ID)
	}
	return nil
}

// QuestDefinition defines a daily quest: a counted metric against a target,
// completed exactly once per reset period for a gold reward.
type QuestDefinition struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Metric     string `yaml:"metric"`
	Target     int    `yaml:"target"`
	GoldReward int    `yaml:"gold_reward"`
}

// Validate checks the quest's invariants.
func (q *QuestDefinition) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("quest: id must not be empty")
	}
	if q.Name == "" {
		return fmt.Errorf("quest %q: name must not be empty", q.ID)
	}
	if !validMetrics[q.Metric] || q.Metric == MetricLevel {
		return fmt.Errorf("quest %q: metric must be a countable metric, got %q", q.ID, q.Metric)
	}
	if q.Target < 1 {
		return fmt.Errorf("quest %q: target must be >= 1", q.ID)
	}
	if q.GoldReward < 0 {
		return fmt.Errorf("quest %q: gold_reward must be >= 0", q.ID)
	}
	return nil
}

// LoadAchievements reads all YAML files in dir as AchievementDefinitions.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated achievements or a non-nil error.
func LoadAchievements(dir string) ([]*AchievementDefinition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	defs := make([]*AchievementDefinition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var a AchievementDefinition
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing achievement file %s: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("validating achievement file %s: %w", path, err)
		}
		defs = append(defs, &a)
	}
	return defs, nil
}

// LoadQuests reads all YAML files in dir as QuestDefinitions.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated quests or a non-nil error.
func LoadQuests(dir string) ([]*QuestDefinition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	defs := make([]*QuestDefinition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var q QuestDefinition
		if err := yaml.Unmarshal(data, &q); err != nil {
			return nil, fmt.Errorf("parsing quest file %s: %w", path, err)
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("validating quest file %s: %w", path, err)
		}
		defs = append(defs, &q)
	}
	return defs, nil
}
