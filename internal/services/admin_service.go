package services

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

// AdminService handles admin authentication and dashboard stats
type AdminService interface {
	Login(ctx context.Context, username, password string) (*models.Admin, error)
	Get(ctx context.Context, adminID int64) (*models.Admin, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
	RecentActivity(ctx context.Context) ([]models.ActivityEntry, error)
}

type adminService struct {
	adminRepo repository.AdminRepository
	statsRepo repository.StatsRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(adminRepo repository.AdminRepository, statsRepo repository.StatsRepository) AdminService {
	return &adminService{adminRepo: adminRepo, statsRepo: statsRepo}
}

func (s *adminService) Login(ctx context.Context, username, password string) (*models.Admin, error) {
	log := logger.FromContext(ctx)
	log.Debug("admin login: username=%s", username)

	if username == "" || password == "" {
		return nil, errors.NewValidationError("credentials", "username and password are required")
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		log.Error("failed to load admin: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		log.Debug("admin password mismatch: username=%s", username)
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	log.Info("admin logged in: username=%s", username)
	return admin, nil
}

func (s *adminService) Get(ctx context.Context, adminID int64) (*models.Admin, error) {
	admin, err := s.adminRepo.Get(ctx, adminID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("admin", adminID)
		}
		logger.FromContext(ctx).Error("failed to get admin: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return admin, nil
}

func (s *adminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading admin stats")

	today := time.Now().Format("2006-01-02")
	stats, err := s.statsRepo.AdminStats(ctx, today)
	if err != nil {
		log.Error("failed to load admin stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *adminService) RecentActivity(ctx context.Context) ([]models.ActivityEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading recent activity")

	entries, err := s.statsRepo.RecentActivity(ctx, 10)
	if err != nil {
		log.Error("failed to load recent activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
