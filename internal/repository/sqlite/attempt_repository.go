package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) CountForDate(ctx context.Context, userID, biographyID int64, attemptDate string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM speaking_attempts
WHERE user_id = ? AND biography_id = ? AND attempt_date = ?
`, userID, biographyID, attemptDate).Scan(&count)
	if err != nil {
		log.Error("failed to count speaking attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *attemptRepository) Insert(ctx context.Context, a models.SpeakingAttempt) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("recording speaking attempt: user_id=%d, biography_id=%d, date=%s", a.UserID, a.BiographyID, a.AttemptDate)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO speaking_attempts (user_id, biography_id, attempt_date)
VALUES (?, ?, ?)
`, a.UserID, a.BiographyID, a.AttemptDate)
	if err != nil {
		log.Error("failed to record speaking attempt: %v", err)
	}
	return err
}
