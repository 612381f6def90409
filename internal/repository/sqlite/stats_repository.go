package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading leaderboard: limit=%d", limit)

	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT username, department, total_points, current_streak, best_streak
FROM users
ORDER BY total_points DESC, best_streak DESC, username
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to load leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Department, &e.TotalPoints, &e.CurrentStreak, &e.BestStreak); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *statsRepository) AdminStats(ctx context.Context, today string) (*models.AdminStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading admin stats: today=%s", today)

	var stats models.AdminStats
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
		log.Error("failed to count users: %v", err)
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions`).Scan(&stats.TotalCompletions); err != nil {
		log.Error("failed to count completions: %v", err)
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM completions WHERE DATE(completed_at) = ?
`, today).Scan(&stats.TodayActivities); err != nil {
		log.Error("failed to count today's activity: %v", err)
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading recent activity: limit=%d", limit)

	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT u.username, c.module_type, c.content_id, c.score, c.points_earned, c.completed_at
FROM completions c
JOIN users u ON u.id = c.user_id
ORDER BY c.completed_at DESC, c.id DESC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to load recent activity: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.Username, &e.ModuleType, &e.ContentID, &e.Score, &e.PointsEarned, &e.CompletedAt); err != nil {
			log.Error("failed to scan activity row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
