package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Catalog holds all loaded definitions indexed by ID. It is immutable after
// Load returns and safe for concurrent reads.
type Catalog struct {
	classes      map[string]*ClassDefinition
	enemies      map[string]*EnemyDefinition
	items        map[string]*ItemDefinition
	achievements map[string]*AchievementDefinition
	quests       map[string]*QuestDefinition
}

// New returns an empty Catalog.
//
// Postcondition: all internal maps are initialised.
func New() *Catalog {
	return &Catalog{
		classes:      make(map[string]*ClassDefinition),
		enemies:      make(map[string]*EnemyDefinition),
		items:        make(map[string]*ItemDefinition),
		achievements: make(map[string]*AchievementDefinition),
		quests:       make(map[string]*QuestDefinition),
	}
}

// RegisterClass adds c to the catalog.
//
// Precondition: c must not be nil.
// Postcondition: Class(c.ID) returns (c, true); returns error if c.ID already registered.
func (cat *Catalog) RegisterClass(c *ClassDefinition) error {
	if _, exists := cat.classes[c.ID]; exists {
		return fmt.Errorf("catalog: class ID %q already registered", c.ID)
	}
	cat.classes[c.ID] = c
	return nil
}

// RegisterEnemy adds e to the catalog.
//
// Precondition: e must not be nil.
// Postcondition: Enemy(e.ID) returns (e, true); returns error if e.ID already registered.
func (cat *Catalog) RegisterEnemy(e *EnemyDefinition) error {
	if _, exists := cat.enemies[e.ID]; exists {
		return fmt.Errorf("catalog: enemy ID %q already registered", e.ID)
	}
	cat.enemies[e.ID] = e
	return nil
}

// RegisterItem adds d to the catalog.
//
// Precondition: d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (cat *Catalog) RegisterItem(d *ItemDefinition) error {
	if _, exists := cat.items[d.ID]; exists {
		return fmt.Errorf("catalog: item ID %q already registered", d.ID)
	}
	cat.items[d.ID] = d
	return nil
}

// RegisterAchievement adds a to the catalog.
//
// Precondition: a must not be nil.
// Postcondition: returns error if a.ID already registered.
func (cat *Catalog) RegisterAchievement(a *AchievementDefinition) error {
	if _, exists := cat.achievements[a.ID]; exists {
		return fmt.Errorf("catalog: achievement ID %q already registered", a.ID)
	}
	cat.achievements[a.ID] = a
	return nil
}

// RegisterQuest adds q to the catalog.
//
// Precondition: q must not be nil.
// Postcondition: returns error if q.ID already registered.
func (cat *Catalog) RegisterQuest(q *QuestDefinition) error {
	if _, exists := cat.quests[q.ID]; exists {
		return fmt.Errorf("catalog: quest ID %q already registered", q.ID)
	}
	cat.quests[q.ID] = q
	return nil
}

// Class returns the ClassDefinition for the given id and whether it was found.
func (cat *Catalog) Class(id string) (*ClassDefinition, bool) {
	c, ok := cat.classes[id]
	return c, ok
}

// Enemy returns the EnemyDefinition for the given id and whether it was found.
func (cat *Catalog) Enemy(id string) (*EnemyDefinition, bool) {
	e, ok := cat.enemies[id]
	return e, ok
}

// Item returns the ItemDefinition for the given id and whether it was found.
// The search spans all categories.
func (cat *Catalog) Item(id string) (*ItemDefinition, bool) {
	d, ok := cat.items[id]
	return d, ok
}

// Classes returns all registered classes sorted by ID.
func (cat *Catalog) Classes() []*ClassDefinition {
	out := make([]*ClassDefinition, 0, len(cat.classes))
	for _, c := range cat.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Enemies returns all registered enemies sorted by tier, then ID.
func (cat *Catalog) Enemies() []*EnemyDefinition {
	out := make([]*EnemyDefinition, 0, len(cat.enemies))
	for _, e := range cat.enemies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Items returns registered items sorted by ID. An empty category returns all
// items; otherwise only items of that category are returned.
func (cat *Catalog) Items(category string) []*ItemDefinition {
	out := make([]*ItemDefinition, 0, len(cat.items))
	for _, d := range cat.items {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Achievements returns all registered achievements sorted by ID.
func (cat *Catalog) Achievements() []*AchievementDefinition {
	out := make([]*AchievementDefinition, 0, len(cat.achievements))
	for _, a := range cat.achievements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Quests returns all registered daily quests sorted by ID.
func (cat *Catalog) Quests() []*QuestDefinition {
	out := make([]*QuestDefinition, 0, len(cat.quests))
	for _, q := range cat.quests {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Load reads the full catalog from the conventional content layout:
// classes/, enemies/, items/, achievements/, quests/ under dir.
//
// Precondition: dir must be a readable directory containing the five
// subdirectories.
// Postcondition: Returns a fully populated Catalog or a non-nil error;
// duplicate IDs within a kind are an error.
func Load(dir string) (*Catalog, error) {
	cat := New()

	classes, err := LoadClasses(filepath.Join(dir, "classes"))
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	for _, c := range classes {
		if err := cat.RegisterClass(c); err != nil {
			return nil, err
		}
	}

	enemies, err := LoadEnemies(filepath.Join(dir, "enemies"))
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	for _, e := range enemies {
		if err := cat.RegisterEnemy(e); err != nil {
			return nil, err
		}
	}

	items, err := LoadItems(filepath.Join(dir, "items"))
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	for _, d := range items {
		if err := cat.RegisterItem(d); err != nil {
			return nil, err
		}
	}

	achievements, err := LoadAchievements(filepath.Join(dir, "achievements"))
	if err != nil {
		return nil, fmt.Errorf("loading achievements: %w", err)
	}
	for _, a := range achievements {
		if err := cat.RegisterAchievement(a); err != nil {
			return nil, err
		}
	}

	quests, err := LoadQuests(filepath.Join(dir, "quests"))
	if err != nil {
		return nil, fmt.Errorf("loading quests: %w", err)
	}
	for _, q := range quests {
		if err := cat.RegisterQuest(q); err != nil {
			return nil, err
		}
	}

	return cat, nil
}
