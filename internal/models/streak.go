package models

import "time"

type DailyStreak struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	StreakDate       string `json:"streak_date"` // "2006-01-02", server-local
	ModulesCompleted int    `json:"modules_completed"`
	PointsEarned     int    `json:"points_earned"`
}

type StreakState struct {
	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
}

type SpeakingAttempt struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	BiographyID int64     `json:"biography_id"`
	AttemptDate string    `json:"attempt_date"`
	AttemptedAt time.Time `json:"attempted_at"`
}
