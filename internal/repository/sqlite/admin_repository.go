package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new AdminRepository implementation
func NewAdminRepository(db *sql.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Get(ctx context.Context, id int64) (*models.Admin, error) {
	log := logger.FromContext(ctx).WithPrefix("admin_repo")
	log.Debug("getting admin: id=%d", id)

	var a models.Admin
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM admins
WHERE id = ?
`, id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("admin not found: id=%d", id)
		} else {
			log.Error("failed to get admin: %v", err)
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	log := logger.FromContext(ctx).WithPrefix("admin_repo")
	log.Debug("getting admin: username=%s", username)

	var a models.Admin
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM admins
WHERE username = ?
`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("admin not found: username=%s", username)
		} else {
			log.Error("failed to get admin: %v", err)
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) Insert(ctx context.Context, a models.Admin) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("admin_repo")
	log.Debug("inserting admin: username=%s", a.Username)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO admins (username, password_hash)
VALUES (?, ?)
`, a.Username, a.PasswordHash)
	if err != nil {
		log.Error("failed to insert admin: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("admin_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	if err != nil {
		log.Error("failed to count admins: %v", err)
		return 0, err
	}
	return count, nil
}
