package models

import "time"

type Completion struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ModuleType   string    `json:"module_type"`
	ContentID    int64     `json:"content_id"`
	Score        int       `json:"score"`
	PointsEarned int       `json:"points_earned"`
	CompletedAt  time.Time `json:"completed_at"`
}

type CompletionFilter struct {
	UserID     int64
	ModuleType string
	From       string // inclusive, "2006-01-02"
	To         string // inclusive
	Limit      int
	Offset     int
}

// SubmissionResult is what every practice submission returns to the caller,
// regardless of module kind.
type SubmissionResult struct {
	Score               int    `json:"score"`
	Points              int    `json:"points"`
	Celebration         bool   `json:"celebration"`
	CurrentStreak       int    `json:"current_streak"`
	CertificateUnlocked bool   `json:"certificate_unlocked"`
	Transcript          string `json:"transcript,omitempty"`
}
