package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

// ErrPlayerNotFound is returned when a player lookup yields no results.
var ErrPlayerNotFound = errors.New("player not found")

// ErrPlayerExists is returned when creating a player for a user ID that
// already has one.
var ErrPlayerExists = errors.New("player already exists")

// PlayerRepository provides player character persistence operations. Scalar
// stats live in dedicated columns; the map-shaped state (inventory,
// equipment, cooldowns, counters, achievements, quests) is stored as JSONB.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `user_id, class_id, level, experience,
       health, max_health, mana, max_mana,
       attack, defense, crit_chance, dodge_chance, crit_damage, gold,
       inventory, equipment, cooldowns, counters, achievements, quests,
       created_at, updated_at`

func scanPlayer(row pgx.Row) (*character.Character, error) {
	var c character.Character
	err := row.Scan(
		&c.UserID, &c.ClassID, &c.Level, &c.Experience,
		&c.Health, &c.MaxHealth, &c.Mana, &c.MaxMana,
		&c.Attack, &c.Defense, &c.CritChance, &c.DodgeChance, &c.CritDamage, &c.Gold,
		&c.Inventory, &c.Equipment, &c.Cooldowns, &c.Counters, &c.Achievements, &c.Quests,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.EnsureMaps()
	return &c, nil
}

// Create inserts a new player row.
//
// Precondition: c.UserID must be non-empty; maps must be non-nil.
// Postcondition: Returns the stored character with database timestamps set,
// or ErrPlayerExists if the user already has a character.
func (r *PlayerRepository) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO players
			(user_id, class_id, level, experience,
			 health, max_health, mana, max_mana,
			 attack, defense, crit_chance, dodge_chance, crit_damage, gold,
			 inventory, equipment, cooldowns, counters, achievements, quests)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING `+playerColumns,
		c.UserID, c.ClassID, c.Level, c.Experience,
		c.Health, c.MaxHealth, c.Mana, c.MaxMana,
		c.Attack, c.Defense, c.CritChance, c.DodgeChance, c.CritDamage, c.Gold,
		c.Inventory, c.Equipment, c.Cooldowns, c.Counters, c.Achievements, c.Quests,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrPlayerExists
		}
		return nil, fmt.Errorf("inserting player: %w", err)
	}
	return out, nil
}

// Get retrieves a player by user ID.
//
// Precondition: userID must be non-empty.
// Postcondition: Returns the Character or ErrPlayerNotFound.
func (r *PlayerRepository) Get(ctx context.Context, userID string) (*character.Character, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE user_id = $1`, userID)
	c, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player: %w", err)
	}
	return c, nil
}

// Exists reports whether a player row exists for the given user ID.
func (r *PlayerRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM players WHERE user_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking player existence: %w", err)
	}
	return exists, nil
}

// Save writes the character's full mutable state back to its row.
//
// Precondition: c.UserID must reference an existing row.
// Postcondition: Returns nil on success, ErrPlayerNotFound if no row updated.
func (r *PlayerRepository) Save(ctx context.Context, c *character.Character) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE players SET
			level = $2, experience = $3,
			health = $4, max_health = $5, mana = $6, max_mana = $7,
			attack = $8, defense = $9, crit_chance = $10, dodge_chance = $11,
			crit_damage = $12, gold = $13,
			inventory = $14, equipment = $15, cooldowns = $16,
			counters = $17, achievements = $18, quests = $19,
			updated_at = NOW()
		WHERE user_id = $1`,
		c.UserID, c.Level, c.Experience,
		c.Health, c.MaxHealth, c.Mana, c.MaxMana,
		c.Attack, c.Defense, c.CritChance, c.DodgeChance, c.CritDamage, c.Gold,
		c.Inventory, c.Equipment, c.Cooldowns, c.Counters, c.Achievements, c.Quests,
	)
	if err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// Delete removes a player's row.
//
// Postcondition: Returns nil on success, ErrPlayerNotFound if no row existed.
func (r *PlayerRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// TopN returns the strongest players ordered by level, then lifetime
// experience earned, both descending, limited to n rows.
//
// Precondition: n must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *PlayerRepository) TopN(ctx context.Context, n int) ([]*character.Character, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+playerColumns+` FROM players
		 ORDER BY level DESC, COALESCE((counters->>'total_exp')::bigint, 0) DESC
		 LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	players := make([]*character.Character, 0, n)
	for rows.Next() {
		c, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		players = append(players, c)
	}
	return players, rows.Err()
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
