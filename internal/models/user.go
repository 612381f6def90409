package models

import "time"

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	RegisterNumber string    `json:"register_number"`
	Department     string    `json:"department"`
	TotalPoints    int       `json:"total_points"`
	CurrentStreak  int       `json:"current_streak"`
	BestStreak     int       `json:"best_streak"`
	CreatedAt      time.Time `json:"created_at"`
}

type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the user with their derived badges, as served by /api/profile.
type Profile struct {
	User        User     `json:"user"`
	Badges      []string `json:"badges"`
	Completions int      `json:"completions"`
}
