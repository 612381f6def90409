package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/scoring"
)

type completionRepository struct {
	db *sql.DB
}

// NewCompletionRepository creates a new CompletionRepository implementation
func NewCompletionRepository(db *sql.DB) repository.CompletionRepository {
	return &completionRepository{db: db}
}

// Record writes the completion, the points increment, and the streak day in
// one transaction. The duplicate check runs first so a second submission for
// the same content changes nothing.
func (r *completionRepository) Record(ctx context.Context, c models.Completion, today, yesterday string) (*models.StreakState, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")
	log.Debug("recording completion: user_id=%d, module=%s, content_id=%d, score=%d, points=%d",
		c.UserID, c.ModuleType, c.ContentID, c.Score, c.PointsEarned)

	var state models.StreakState
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM completions
WHERE user_id = ? AND module_type = ? AND content_id = ?
`, c.UserID, c.ModuleType, c.ContentID).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			return repository.ErrDuplicateCompletion
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO completions (user_id, module_type, content_id, score, points_earned)
VALUES (?, ?, ?, ?, ?)
`, c.UserID, c.ModuleType, c.ContentID, c.Score, c.PointsEarned); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE users SET total_points = total_points + ? WHERE id = ?
`, c.PointsEarned, c.UserID); err != nil {
			return err
		}

		var hasToday int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM daily_streaks WHERE user_id = ? AND streak_date = ?
`, c.UserID, today).Scan(&hasToday); err != nil {
			return err
		}

		// Later activity on the same day only accumulates into the day
		// record; the running streak moved on the first activity.
		if hasToday > 0 {
			if _, err := tx.ExecContext(ctx, `
UPDATE daily_streaks
SET modules_completed = modules_completed + 1, points_earned = points_earned + ?
WHERE user_id = ? AND streak_date = ?
`, c.PointsEarned, c.UserID, today); err != nil {
				return err
			}
			return tx.QueryRowContext(ctx, `
SELECT current_streak, best_streak FROM users WHERE id = ?
`, c.UserID).Scan(&state.CurrentStreak, &state.BestStreak)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO daily_streaks (user_id, streak_date, modules_completed, points_earned)
VALUES (?, ?, 1, ?)
`, c.UserID, today, c.PointsEarned); err != nil {
			return err
		}

		var hadYesterday int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM daily_streaks WHERE user_id = ? AND streak_date = ?
`, c.UserID, yesterday).Scan(&hadYesterday); err != nil {
			return err
		}

		var current, best int
		if err := tx.QueryRowContext(ctx, `
SELECT current_streak, best_streak FROM users WHERE id = ?
`, c.UserID).Scan(&current, &best); err != nil {
			return err
		}

		state.CurrentStreak = scoring.NextStreak(current, hadYesterday > 0)
		state.BestStreak = max(best, state.CurrentStreak)

		_, err := tx.ExecContext(ctx, `
UPDATE users SET current_streak = ?, best_streak = ? WHERE id = ?
`, state.CurrentStreak, state.BestStreak, c.UserID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCompletion) {
			log.Debug("duplicate completion: user_id=%d, module=%s, content_id=%d", c.UserID, c.ModuleType, c.ContentID)
		} else {
			log.Error("failed to record completion: %v", err)
		}
		return nil, err
	}
	log.Debug("completion recorded: current_streak=%d, best_streak=%d", state.CurrentStreak, state.BestStreak)
	return &state, nil
}

func (r *completionRepository) Has(ctx context.Context, userID int64, moduleType string, contentID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM completions
WHERE user_id = ? AND module_type = ? AND content_id = ?
`, userID, moduleType, contentID).Scan(&count)
	if err != nil {
		log.Error("failed to check completion: %v", err)
		return false, err
	}
	return count > 0, nil
}

func (r *completionRepository) Count(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM completions WHERE user_id = ?
`, userID).Scan(&count)
	if err != nil {
		log.Error("failed to count completions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *completionRepository) ModuleKinds(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")
	log.Debug("listing completed module kinds: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT module_type FROM completions WHERE user_id = ?
`, userID)
	if err != nil {
		log.Error("failed to list module kinds: %v", err)
		return nil, err
	}
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			log.Error("failed to scan module kind: %v", err)
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, rows.Err()
}

func (r *completionRepository) CompletedContentIDs(ctx context.Context, userID int64, moduleType string) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")
	log.Debug("listing completed content ids: user_id=%d, module=%s", userID, moduleType)

	rows, err := r.db.QueryContext(ctx, `
SELECT content_id FROM completions
WHERE user_id = ? AND module_type = ?
`, userID, moduleType)
	if err != nil {
		log.Error("failed to list completed content ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan content id: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *completionRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.Completion, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")
	log.Debug("listing recent completions: user_id=%d, limit=%d", userID, limit)

	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, module_type, content_id, score, points_earned, completed_at
FROM completions
WHERE user_id = ?
ORDER BY completed_at DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to list recent completions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		if err := rows.Scan(&c.ID, &c.UserID, &c.ModuleType, &c.ContentID, &c.Score, &c.PointsEarned, &c.CompletedAt); err != nil {
			log.Error("failed to scan completion row: %v", err)
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (r *completionRepository) List(ctx context.Context, filter models.CompletionFilter) ([]models.Completion, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")
	log.Debug("listing completions with filter: user_id=%d, module=%s, from=%s, to=%s",
		filter.UserID, filter.ModuleType, filter.From, filter.To)

	query := sqlBuilder.Select(
		"id", "user_id", "module_type", "content_id", "score", "points_earned", "completed_at",
	).From("completions")
	query = applyCompletionFilter(query, filter)
	query = query.OrderBy("completed_at DESC, id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list completions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		if err := rows.Scan(&c.ID, &c.UserID, &c.ModuleType, &c.ContentID, &c.Score, &c.PointsEarned, &c.CompletedAt); err != nil {
			log.Error("failed to scan completion row: %v", err)
			return nil, err
		}
		completions = append(completions, c)
	}
	log.Debug("found %d completions", len(completions))
	return completions, rows.Err()
}

func (r *completionRepository) CountFiltered(ctx context.Context, filter models.CompletionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")

	query := sqlBuilder.Select("COUNT(*)").From("completions")
	query = applyCompletionFilter(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sql, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count completions: %v", err)
		return 0, err
	}
	return count, nil
}

// Same WHERE logic for List() and CountFiltered()
func applyCompletionFilter(query squirrel.SelectBuilder, filter models.CompletionFilter) squirrel.SelectBuilder {
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ModuleType != "" {
		query = query.Where(squirrel.Eq{"module_type": filter.ModuleType})
	}
	if filter.From != "" {
		query = query.Where(squirrel.Expr("DATE(completed_at) >= ?", filter.From))
	}
	if filter.To != "" {
		query = query.Where(squirrel.Expr("DATE(completed_at) <= ?", filter.To))
	}
	return query
}
