package models

import "time"

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Username      string `json:"username"`
	Department    string `json:"department"`
	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
}

type AdminStats struct {
	TotalUsers       int `json:"total_users"`
	TotalCompletions int `json:"total_completions"`
	TodayActivities  int `json:"today_activities"`
}

type ActivityEntry struct {
	Username     string    `json:"username"`
	ModuleType   string    `json:"module_type"`
	ContentID    int64     `json:"content_id"`
	Score        int       `json:"score"`
	PointsEarned int       `json:"points_earned"`
	CompletedAt  time.Time `json:"completed_at"`
}

type CertificateStatus struct {
	Ready     bool            `json:"ready"`
	Completed map[string]bool `json:"completed"` // module kind -> at least one completion
}

type Dashboard struct {
	User              User             `json:"user"`
	Badges            []string         `json:"badges"`
	RecentCompletions []Completion     `json:"recent_completions"`
	FeaturedQuote     *QuoteWithAuthor `json:"featured_quote"`
	Tasks             []Task           `json:"tasks"`
	CertificateReady  bool             `json:"certificate_ready"`
}
