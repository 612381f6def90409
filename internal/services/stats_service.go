package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/scoring"
)

const (
	leaderboardSize   = 10
	recentOnDashboard = 5
)

// StatsService serves the leaderboard and the per-user dashboard.
type StatsService interface {
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
}

type statsService struct {
	userRepo       repository.UserRepository
	completionRepo repository.CompletionRepository
	quoteRepo      repository.QuoteRepository
	taskRepo       repository.TaskRepository
	statsRepo      repository.StatsRepository
}

func NewStatsService(
	userRepo repository.UserRepository,
	completionRepo repository.CompletionRepository,
	quoteRepo repository.QuoteRepository,
	taskRepo repository.TaskRepository,
	statsRepo repository.StatsRepository,
) StatsService {
	return &statsService{
		userRepo:       userRepo,
		completionRepo: completionRepo,
		quoteRepo:      quoteRepo,
		taskRepo:       taskRepo,
		statsRepo:      statsRepo,
	}
}

func (s *statsService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := s.statsRepo.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		log.Error("failed to load leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

func (s *statsService) Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building dashboard: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	completions, err := s.completionRepo.Count(ctx, userID)
	if err != nil {
		log.Error("failed to count completions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	recent, err := s.completionRepo.Recent(ctx, userID, recentOnDashboard)
	if err != nil {
		log.Error("failed to load recent completions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today := time.Now().Format("2006-01-02")
	var featured *models.QuoteWithAuthor
	quote, err := s.quoteRepo.FeaturedForDate(ctx, today)
	if err != nil && err != sql.ErrNoRows {
		log.Error("failed to load featured quote: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err == nil {
		featured = quote
	}

	tasks, err := s.taskRepo.List(ctx, models.TaskFilter{
		Department: user.Department,
		ActiveOnly: true,
	})
	if err != nil {
		log.Error("failed to load tasks: %v", err)
		return nil, errors.NewInternalError(err)
	}

	kinds, err := s.completionRepo.ModuleKinds(ctx, userID)
	if err != nil {
		log.Error("failed to load module kinds: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.Dashboard{
		User:              *user,
		Badges:            scoring.ComputeBadges(user.TotalPoints, user.BestStreak, completions),
		RecentCompletions: recent,
		FeaturedQuote:     featured,
		Tasks:             tasks,
		CertificateReady:  scoring.CertificateReady(kinds),
	}, nil
}
