package services

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vytor/bardspeak/internal/certificate"
	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/scoring"
)

// CertificateService handles certificate eligibility and rendering
type CertificateService interface {
	Status(ctx context.Context, userID int64) (*models.CertificateStatus, error)
	Certificate(ctx context.Context, userID int64) ([]byte, error)
	WarmCache(ctx context.Context, userID int64) error
	Invalidate(ctx context.Context, userID int64)
}

type certificateService struct {
	userRepo       repository.UserRepository
	completionRepo repository.CompletionRepository
	renderer       *certificate.Renderer
	cacheDir       string
}

// NewCertificateService creates a new CertificateService. renderer may be nil
// when no usable font is configured; downloads then fail with an error while
// the status endpoint keeps working.
func NewCertificateService(userRepo repository.UserRepository, completionRepo repository.CompletionRepository, renderer *certificate.Renderer, cacheDir string) CertificateService {
	return &certificateService{
		userRepo:       userRepo,
		completionRepo: completionRepo,
		renderer:       renderer,
		cacheDir:       cacheDir,
	}
}

func (s *certificateService) Status(ctx context.Context, userID int64) (*models.CertificateStatus, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading certificate status: user_id=%d", userID)

	kinds, err := s.completionRepo.ModuleKinds(ctx, userID)
	if err != nil {
		log.Error("failed to load module kinds: %v", err)
		return nil, errors.NewInternalError(err)
	}

	completed := make(map[string]bool, len(models.ModuleKinds))
	for _, kind := range models.ModuleKinds {
		completed[kind] = false
	}
	for _, kind := range kinds {
		completed[kind] = true
	}

	return &models.CertificateStatus{
		Ready:     scoring.CertificateReady(kinds),
		Completed: completed,
	}, nil
}

func (s *certificateService) Certificate(ctx context.Context, userID int64) ([]byte, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading certificate: user_id=%d", userID)

	status, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !status.Ready {
		return nil, errors.NewConflictError("complete all four modules to unlock your certificate")
	}
	if s.renderer == nil {
		return nil, errors.NewInternalError(fmt.Errorf("certificate renderer not configured"))
	}

	path := s.cachePath(userID)
	if data, err := os.ReadFile(path); err == nil {
		log.Debug("serving cached certificate: path=%s", path)
		return data, nil
	}

	data, err := s.render(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, path, data)
	return data, nil
}

// WarmCache renders and caches the certificate ahead of the first download.
// It is a no-op for users who are not yet eligible.
func (s *certificateService) WarmCache(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	status, err := s.Status(ctx, userID)
	if err != nil {
		return err
	}
	if !status.Ready || s.renderer == nil {
		return nil
	}

	data, err := s.render(ctx, userID)
	if err != nil {
		return err
	}
	s.writeCache(ctx, s.cachePath(userID), data)
	log.Info("certificate pre-rendered: user_id=%d", userID)
	return nil
}

func (s *certificateService) Invalidate(ctx context.Context, userID int64) {
	log := logger.FromContext(ctx)

	path := s.cachePath(userID)
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to remove cached certificate: %v", err)
		}
		return
	}
	log.Debug("cached certificate removed: path=%s", path)
}

func (s *certificateService) render(ctx context.Context, userID int64) ([]byte, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	data, err := s.renderer.Render(user.Username, user.Department, time.Now().Format("2006-01-02"))
	if err != nil {
		log.Error("failed to render certificate: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return data, nil
}

// writeCache is best-effort: the certificate is still served from memory when
// the cache directory is not writable.
func (s *certificateService) writeCache(ctx context.Context, path string, data []byte) {
	log := logger.FromContext(ctx)

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		log.Warn("failed to create certificate cache dir: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn("failed to cache certificate: %v", err)
	}
}

func (s *certificateService) cachePath(userID int64) string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("certificate_%d.png", userID))
}
