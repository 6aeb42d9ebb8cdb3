package progression

import (
	"errors"
	"testing"

	"github.com/studyforge/backend/internal/models"
)

func TestApplyXP(t *testing.T) {
	// Crossing a 1000-boundary reports a level-up
	res, err := ApplyXP(950, 100)
	if err != nil {
		t.Fatalf("ApplyXP(950, 100) returned error: %v", err)
	}
	if res.NewXP != 1050 || res.NewLevel != 2 || !res.LeveledUp {
		t.Errorf("ApplyXP(950, 100) = %+v, want {NewXP:1050 NewLevel:2 LeveledUp:true}", res)
	}

	// Staying inside a band does not
	res, err = ApplyXP(100, 50)
	if err != nil {
		t.Fatalf("ApplyXP(100, 50) returned error: %v", err)
	}
	if res.NewXP != 150 || res.NewLevel != 1 || res.LeveledUp {
		t.Errorf("ApplyXP(100, 50) = %+v, want {NewXP:150 NewLevel:1 LeveledUp:false}", res)
	}

	// Landing exactly on a boundary uses floor semantics: 1000 is level 2
	res, err = ApplyXP(900, 100)
	if err != nil {
		t.Fatalf("ApplyXP(900, 100) returned error: %v", err)
	}
	if res.NewXP != 1000 || res.NewLevel != 2 || !res.LeveledUp {
		t.Errorf("ApplyXP(900, 100) = %+v, want {NewXP:1000 NewLevel:2 LeveledUp:true}", res)
	}
}

func TestApplyXPInvalidInput(t *testing.T) {
	if _, err := ApplyXP(100, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ApplyXP(100, 0) error = %v, want ErrInvalidInput", err)
	}
	if _, err := ApplyXP(100, -5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ApplyXP(100, -5) error = %v, want ErrInvalidInput", err)
	}
	if _, err := ApplyXP(-1, 10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ApplyXP(-1, 10) error = %v, want ErrInvalidInput", err)
	}
}

func TestLevelMonotone(t *testing.T) {
	prev := LevelForXP(0)
	if prev != 1 {
		t.Fatalf("LevelForXP(0) = %d, want 1", prev)
	}
	for xp := int64(1); xp <= 25000; xp += 37 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("LevelForXP(%d) = %d, lower than previous %d", xp, level, prev)
		}
		prev = level
	}
}

func TestClassifyRank(t *testing.T) {
	tests := []struct {
		xp   int64
		want string
	}{
		{0, models.RankBronze},
		{999, models.RankBronze},
		{1000, models.RankSilver},
		{4999, models.RankSilver},
		{5000, models.RankGold},
		{9999, models.RankGold},
		{10000, models.RankPlatinum},
		{19999, models.RankPlatinum},
		{20000, models.RankDiamond},
		{1000000, models.RankDiamond},
	}

	for _, tt := range tests {
		got := ClassifyRank(tt.xp)
		if got != tt.want {
			t.Errorf("ClassifyRank(%d) = %q, want %q", tt.xp, got, tt.want)
		}
	}
}

func TestClassifyRankTotal(t *testing.T) {
	valid := map[string]bool{
		models.RankBronze: true, models.RankSilver: true, models.RankGold: true,
		models.RankPlatinum: true, models.RankDiamond: true,
	}
	for xp := int64(0); xp <= 30000; xp += 113 {
		if !valid[ClassifyRank(xp)] {
			t.Fatalf("ClassifyRank(%d) = %q, not a known rank", xp, ClassifyRank(xp))
		}
	}
}
