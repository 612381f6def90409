package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, register_number, department, total_points, current_streak, best_streak, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.RegisterNumber, &u.Department, &u.TotalPoints, &u.CurrentStreak, &u.BestStreak, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found: id=%d", id)
		} else {
			log.Error("failed to get user: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: register_number=%s", registerNumber)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, register_number, department, total_points, current_streak, best_streak, created_at
FROM users
WHERE register_number = ?
`, registerNumber).Scan(&u.ID, &u.Username, &u.RegisterNumber, &u.Department, &u.TotalPoints, &u.CurrentStreak, &u.BestStreak, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found: register_number=%s", registerNumber)
		} else {
			log.Error("failed to get user: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: username=%s", username)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, register_number, department, total_points, current_streak, best_streak, created_at
FROM users
WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.RegisterNumber, &u.Department, &u.TotalPoints, &u.CurrentStreak, &u.BestStreak, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found: username=%s", username)
		} else {
			log.Error("failed to get user: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: username=%s, register_number=%s", u.Username, u.RegisterNumber)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, register_number, department)
VALUES (?, ?, ?)
`, u.Username, u.RegisterNumber, u.Department)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, username, department string) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user profile: id=%d, username=%s, department=%s", id, username, department)

	_, err := r.db.ExecContext(ctx, `
UPDATE users
SET username = ?, department = ?
WHERE id = ?
`, username, department, id)
	if err != nil {
		log.Error("failed to update user profile: %v", err)
	}
	return err
}
