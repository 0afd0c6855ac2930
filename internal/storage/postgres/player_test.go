package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
	"github.com/LinLovee/quest-bot-webapp/internal/storage/postgres"
	"github.com/LinLovee/quest-bot-webapp/internal/testutil"
)

func newRepo(t *testing.T) *postgres.PlayerRepository {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewPlayerRepository(pc.RawPool)
}

func testPlayer(userID string) *character.Character {
	c := &character.Character{
		UserID:      userID,
		ClassID:     "warrior",
		Level:       1,
		Health:      120,
		MaxHealth:   120,
		Mana:        50,
		MaxMana:     50,
		Attack:      24,
		Defense:     18,
		CritChance:  10,
		DodgeChance: 5,
		CritDamage:  1.5,
		Gold:        100,
	}
	c.EnsureMaps()
	return c
}

func TestPlayerRepository_CreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testPlayer("user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "warrior", got.ClassID)
	assert.Equal(t, 120, got.MaxHealth)
	assert.Equal(t, 1.5, got.CritDamage)
	assert.NotNil(t, got.Inventory)
	assert.NotNil(t, got.Quests)
}

func TestPlayerRepository_CreateDuplicate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testPlayer("user-1"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testPlayer("user-1"))
	assert.ErrorIs(t, err, postgres.ErrPlayerExists)
}

func TestPlayerRepository_GetMissing(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)
}

func TestPlayerRepository_Exists(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, testPlayer("user-1"))
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPlayerRepository_SaveRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testPlayer("user-1"))
	require.NoError(t, err)

	created.Level = 3
	created.Experience = 75
	created.Gold = 250
	created.Inventory["iron_sword"] = 1
	created.Equipment["weapon"] = "iron_sword"
	created.Cooldowns["power_strike"] = time.Now().Unix() + 30
	created.Counters.Kills = 12
	created.Achievements["first_blood"] = true
	created.Quests["daily_kills"] = character.QuestProgress{Progress: 2}

	require.NoError(t, repo.Save(ctx, created))

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 250, got.Gold)
	assert.Equal(t, 1, got.Inventory["iron_sword"])
	assert.Equal(t, "iron_sword", got.Equipment["weapon"])
	assert.Equal(t, created.Cooldowns["power_strike"], got.Cooldowns["power_strike"])
	assert.Equal(t, 12, got.Counters.Kills)
	assert.True(t, got.Achievements["first_blood"])
	assert.Equal(t, 2, got.Quests["daily_kills"].Progress)
}

func TestPlayerRepository_SaveMissing(t *testing.T) {
	repo := newRepo(t)

	err := repo.Save(context.Background(), testPlayer("ghost"))
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)
}

func TestPlayerRepository_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testPlayer("user-1"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "user-1"))

	_, err = repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "user-1"), postgres.ErrPlayerNotFound)
}

func TestPlayerRepository_TopN(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	for _, p := range []struct {
		id       string
		level    int
		totalExp int
	}{
		{"low", 2, 400},
		{"high", 5, 2000},
		{"mid_more_exp", 3, 900},
		{"mid_less_exp", 3, 700},
	} {
		c := testPlayer(p.id)
		c.Level = p.level
		c.Counters.TotalExp = p.totalExp
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}

	top, err := repo.TopN(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "high", top[0].UserID)
	assert.Equal(t, "mid_more_exp", top[1].UserID)
	assert.Equal(t, "mid_less_exp", top[2].UserID)
}
