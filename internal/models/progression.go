package models

// ── Rank Constants ──────────────────────────────────────

const (
	RankBronze   = "Bronze"
	RankSilver   = "Silver"
	RankGold     = "Gold"
	RankPlatinum = "Platinum"
	RankDiamond  = "Diamond"
)

// ── Request Types ───────────────────────────────────────

type GrantXPRequest struct {
	Amount int64 `json:"amount"`
}

// ── Response Types ──────────────────────────────────────

// UpdatedProfile is the public progress state returned after an XP grant.
// Level and rank are derived from XP; XP is the source of truth.
type UpdatedProfile struct {
	XP        int64  `json:"xp"`
	Level     int    `json:"level"`
	Rank      string `json:"rank"`
	LeveledUp bool   `json:"leveled_up"`
}

type ProfileResponse struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	XP          int64  `json:"xp"`
	Level       int    `json:"level"`
	Rank        string `json:"rank"`
	DayStreak   int    `json:"day_streak"`
}
