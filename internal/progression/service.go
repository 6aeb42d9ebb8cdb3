package progression

import (
	"fmt"
	"log"
	"time"

	"github.com/studyforge/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Grant applies a positive XP amount to a user and returns the updated public
// profile fields. The xp column is the source of truth: the increment is
// committed atomically in the store, and level/rank are recomputed from the
// post-increment value before being written back as a cache.
func (s *Service) Grant(userID int64, amount int64, source string) (*models.UpdatedProfile, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	newXP, err := s.store.IncrementXP(userID, amount)
	if err != nil {
		return nil, err
	}

	// Derive level transition from the committed increment, not from a read
	// taken before it.
	res, err := ApplyXP(newXP-amount, amount)
	if err != nil {
		return nil, err
	}
	rank := ClassifyRank(newXP)

	if err := s.store.SetDerived(userID, newXP, res.NewLevel, rank); err != nil {
		return nil, err
	}

	if err := s.store.LogXPEvent(userID, source, amount, map[string]interface{}{
		"new_xp":    newXP,
		"new_level": res.NewLevel,
		"rank":      rank,
	}); err != nil {
		log.Printf("[progression] failed to log xp event for user %d: %v", userID, err)
	}

	return &models.UpdatedProfile{
		XP:        newXP,
		Level:     res.NewLevel,
		Rank:      rank,
		LeveledUp: res.LeveledUp,
	}, nil
}

// GetProfile returns the user's public progress fields.
func (s *Service) GetProfile(userID int64) (*models.ProfileResponse, error) {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{
		UserID:      u.ID,
		DisplayName: u.DisplayName(),
		Username:    u.Username,
		XP:          u.XP,
		Level:       u.Level,
		Rank:        u.Rank,
		DayStreak:   u.DayStreak,
	}, nil
}

// TouchDayStreak records activity for today: consecutive calendar days extend
// the streak, a gap resets it to 1, repeat activity on the same day is a
// no-op.
func (s *Service) TouchDayStreak(userID int64) error {
	st, err := s.store.getStreakState(userID)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	streak := 1
	if st.lastActive != nil {
		lastActive := st.lastActive.UTC().Truncate(24 * time.Hour)
		if lastActive.Equal(today) {
			return nil
		}
		if today.Sub(lastActive) == 24*time.Hour {
			streak = st.dayStreak + 1
		}
	}

	return s.store.setStreak(userID, streak, today)
}
