package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/storage/postgres"
)

// MemoryPlayerStore is an in-memory stand-in for the PostgreSQL player
// repository. It returns the same sentinel errors and deep-copies characters
// on every boundary crossing so callers cannot mutate stored state by
// aliasing, matching database round-trip behaviour.
//
// Safe for concurrent use.
type MemoryPlayerStore struct {
	mu      sync.Mutex
	players map[string]*character.Character
}

// NewMemoryPlayerStore creates an empty store.
func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{players: make(map[string]*character.Character)}
}

func clone(c *character.Character) *character.Character {
	out := *c
	out.Inventory = make(map[string]int, len(c.Inventory))
	for k, v := range c.Inventory {
		out.Inventory[k] = v
	}
	out.Equipment = make(map[string]string, len(c.Equipment))
	for k, v := range c.Equipment {
		out.Equipment[k] = v
	}
	out.Cooldowns = make(map[string]int64, len(c.Cooldowns))
	for k, v := range c.Cooldowns {
		out.Cooldowns[k] = v
	}
	out.Achievements = make(map[string]bool, len(c.Achievements))
	for k, v := range c.Achievements {
		out.Achievements[k] = v
	}
	out.Quests = make(map[string]character.QuestProgress, len(c.Quests))
	for k, v := range c.Quests {
		out.Quests[k] = v
	}
	return &out
}

// Create stores a new character, rejecting duplicates.
func (s *MemoryPlayerStore) Create(_ context.Context, c *character.Character) (*character.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[c.UserID]; ok {
		return nil, postgres.ErrPlayerExists
	}
	stored := clone(c)
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.players[c.UserID] = stored
	return clone(stored), nil
}

// Get returns a copy of the stored character.
func (s *MemoryPlayerStore) Get(_ context.Context, userID string) (*character.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.players[userID]
	if !ok {
		return nil, postgres.ErrPlayerNotFound
	}
	return clone(c), nil
}

// Exists reports whether a character is stored for the user.
func (s *MemoryPlayerStore) Exists(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.players[userID]
	return ok, nil
}

// Save overwrites the stored character.
func (s *MemoryPlayerStore) Save(_ context.Context, c *character.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[c.UserID]; !ok {
		return postgres.ErrPlayerNotFound
	}
	stored := clone(c)
	stored.UpdatedAt = time.Now()
	s.players[c.UserID] = stored
	return nil
}

// Delete removes the stored character.
func (s *MemoryPlayerStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[userID]; !ok {
		return postgres.ErrPlayerNotFound
	}
	delete(s.players, userID)
	return nil
}

// TopN returns up to n characters ordered by level then lifetime experience,
// both descending, matching the repository's leaderboard query.
func (s *MemoryPlayerStore) TopN(_ context.Context, n int) ([]*character.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*character.Character, 0, len(s.players))
	for _, c := range s.players {
		all = append(all, clone(c))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Level != all[j].Level {
			return all[i].Level > all[j].Level
		}
		return all[i].Counters.TotalExp > all[j].Counters.TotalExp
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}
