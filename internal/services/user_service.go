package services

import (
	"context"
	"database/sql"

	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/scoring"
)

// UserService handles student account business logic
type UserService interface {
	Register(ctx context.Context, username, registerNumber, department string) (*models.User, error)
	Login(ctx context.Context, registerNumber string) (*models.User, error)
	Get(ctx context.Context, userID int64) (*models.User, error)
	Profile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, username, department string) (*models.User, error)
}

type userService struct {
	userRepo       repository.UserRepository
	completionRepo repository.CompletionRepository
	certSvc        CertificateService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, completionRepo repository.CompletionRepository, certSvc CertificateService) UserService {
	return &userService{userRepo: userRepo, completionRepo: completionRepo, certSvc: certSvc}
}

func (s *userService) Register(ctx context.Context, username, registerNumber, department string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering user: username=%s, register_number=%s", username, registerNumber)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if registerNumber == "" {
		return nil, errors.NewValidationError("register_number", "cannot be empty")
	}
	if department == "" {
		return nil, errors.NewValidationError("department", "cannot be empty")
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, errors.NewConflictError("username already taken")
	} else if err != sql.ErrNoRows {
		log.Error("failed to check username: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if _, err := s.userRepo.GetByRegisterNumber(ctx, registerNumber); err == nil {
		return nil, errors.NewConflictError("register number already registered")
	} else if err != sql.ErrNoRows {
		log.Error("failed to check register number: %v", err)
		return nil, errors.NewInternalError(err)
	}

	id, err := s.userRepo.Insert(ctx, models.User{
		Username:       username,
		RegisterNumber: registerNumber,
		Department:     department,
	})
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load new user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("user registered: id=%d, username=%s", user.ID, user.Username)
	return user, nil
}

func (s *userService) Login(ctx context.Context, registerNumber string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("logging in: register_number=%s", registerNumber)

	if registerNumber == "" {
		return nil, errors.NewValidationError("register_number", "cannot be empty")
	}

	user, err := s.userRepo.GetByRegisterNumber(ctx, registerNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", registerNumber)
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		logger.FromContext(ctx).Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading profile: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	count, err := s.completionRepo.Count(ctx, userID)
	if err != nil {
		log.Error("failed to count completions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.Profile{
		User:        *user,
		Badges:      scoring.ComputeBadges(user.TotalPoints, user.BestStreak, count),
		Completions: count,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, username, department string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating profile: user_id=%d, username=%s, department=%s", userID, username, department)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if department == "" {
		return nil, errors.NewValidationError("department", "cannot be empty")
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if username != user.Username {
		if other, err := s.userRepo.GetByUsername(ctx, username); err == nil && other.ID != userID {
			return nil, errors.NewConflictError("username already taken")
		} else if err != nil && err != sql.ErrNoRows {
			log.Error("failed to check username: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, username, department); err != nil {
		log.Error("failed to update profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// The cached certificate carries the old name, drop it.
	s.certSvc.Invalidate(ctx, userID)

	updated, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to reload user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return updated, nil
}
