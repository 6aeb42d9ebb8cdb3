package progression

import (
	"fmt"

	"github.com/studyforge/backend/internal/models"
)

// XPPerLevel is the size of one level band. Level 1 covers [0, 1000).
const XPPerLevel = 1000

// XPResult is the outcome of applying an XP delta.
type XPResult struct {
	NewXP     int64
	NewLevel  int
	LeveledUp bool
}

// LevelForXP returns the level implied by a cumulative XP total.
func LevelForXP(xp int64) int {
	return int(xp/XPPerLevel) + 1
}

// ApplyXP applies a positive XP delta to a current total. Pure: the caller is
// responsible for committing the result.
func ApplyXP(currentXP, delta int64) (XPResult, error) {
	if currentXP < 0 {
		return XPResult{}, fmt.Errorf("%w: current xp %d is negative", ErrInvalidInput, currentXP)
	}
	if delta <= 0 {
		return XPResult{}, fmt.Errorf("%w: delta must be positive, got %d", ErrInvalidInput, delta)
	}

	newXP := currentXP + delta
	newLevel := LevelForXP(newXP)
	return XPResult{
		NewXP:     newXP,
		NewLevel:  newLevel,
		LeveledUp: newLevel > LevelForXP(currentXP),
	}, nil
}

// rankThresholds is ordered highest first; the first qualifying threshold
// wins. Thresholds are inclusive lower bounds with no gaps, so exactly one
// rank applies to any non-negative XP total.
var rankThresholds = []struct {
	minXP int64
	rank  string
}{
	{20000, models.RankDiamond},
	{10000, models.RankPlatinum},
	{5000, models.RankGold},
	{1000, models.RankSilver},
	{0, models.RankBronze},
}

// ClassifyRank maps a cumulative XP total to its rank label.
func ClassifyRank(xp int64) string {
	for _, t := range rankThresholds {
		if xp >= t.minXP {
			return t.rank
		}
	}
	return models.RankBronze
}
