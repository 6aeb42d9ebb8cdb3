package progression

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/studyforge/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── XP Operations ───────────────────────────────────────

// IncrementXP applies the delta as a relative update and returns the
// post-increment total. Concurrent grants for the same user both land because
// the addition happens inside the database, never from a stale read.
func (s *Store) IncrementXP(userID int64, delta int64) (int64, error) {
	var newXP int64
	err := s.db.QueryRow(
		`UPDATE users SET xp = xp + $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING xp`,
		userID, delta,
	).Scan(&newXP)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment xp: %w", err)
	}
	return newXP, nil
}

// SetDerived writes the cached level/rank columns. The xp guard makes the
// write conditional on xp still being the value the caller derived from; if a
// concurrent grant moved xp first, that grant's own recompute supersedes ours
// and this write is skipped.
func (s *Store) SetDerived(userID int64, xp int64, level int, rank string) error {
	_, err := s.db.Exec(
		`UPDATE users SET level = $2, rank = $3, updated_at = NOW()
		 WHERE id = $1 AND xp = $4`,
		userID, level, rank, xp,
	)
	if err != nil {
		return fmt.Errorf("set derived fields: %w", err)
	}
	return nil
}

func (s *Store) LogXPEvent(userID int64, eventType string, amount int64, metadata map[string]interface{}) error {
	var metaJSON *string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			str := string(b)
			metaJSON = &str
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, eventType, amount, metaJSON,
	)
	return err
}

// ── Profile ─────────────────────────────────────────────

func (s *Store) GetUser(userID int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, name, COALESCE(username, ''), xp, level, rank, day_streak
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Username, &u.XP, &u.Level, &u.Rank, &u.DayStreak)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ── Day Streak ──────────────────────────────────────────

// streakState is the slice of the user row the streak update reads.
type streakState struct {
	dayStreak  int
	lastActive *time.Time
}

func (s *Store) getStreakState(userID int64) (*streakState, error) {
	var st streakState
	err := s.db.QueryRow(
		`SELECT day_streak, last_active_date FROM users WHERE id = $1`,
		userID,
	).Scan(&st.dayStreak, &st.lastActive)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get streak state: %w", err)
	}
	return &st, nil
}

func (s *Store) setStreak(userID int64, streak int, activeDate time.Time) error {
	_, err := s.db.Exec(
		`UPDATE users SET day_streak = $2, last_active_date = $3, updated_at = NOW()
		 WHERE id = $1`,
		userID, streak, activeDate,
	)
	return err
}
