package repository

import (
	"context"
	"errors"

	"github.com/vytor/bardspeak/internal/models"
)

// ErrDuplicateCompletion is returned by CompletionRepository.Record when the
// user has already completed the (module kind, content) pair. The UNIQUE index
// on completions backs this up, but the in-transaction check lets callers give
// a friendly error instead of a constraint violation.
var ErrDuplicateCompletion = errors.New("module content already completed")

// UserRepository handles student account data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user models.User) (int64, error)
	UpdateProfile(ctx context.Context, id int64, username, department string) error
}

// AdminRepository handles admin account data access
type AdminRepository interface {
	Get(ctx context.Context, id int64) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Insert(ctx context.Context, admin models.Admin) (int64, error)
	Count(ctx context.Context) (int, error)
}

// ContentRepository handles the practice content catalogs
type ContentRepository interface {
	ListBiographies(ctx context.Context) ([]models.Biography, error)
	GetBiography(ctx context.Context, id int64) (*models.Biography, error)
	InsertBiography(ctx context.Context, b models.Biography) (int64, error)
	UpdateBiography(ctx context.Context, b models.Biography) error
	DeleteBiography(ctx context.Context, id int64) error

	ListListeningClips(ctx context.Context) ([]models.ListeningClip, error)
	GetListeningClip(ctx context.Context, id int64) (*models.ListeningClip, error)
	InsertListeningClip(ctx context.Context, c models.ListeningClip) (int64, error)
	UpdateListeningClip(ctx context.Context, c models.ListeningClip) error
	DeleteListeningClip(ctx context.Context, id int64) error

	ListObservationItems(ctx context.Context) ([]models.ObservationItem, error)
	GetObservationItem(ctx context.Context, id int64) (*models.ObservationItem, error)
	InsertObservationItem(ctx context.Context, o models.ObservationItem) (int64, error)
	UpdateObservationItem(ctx context.Context, o models.ObservationItem) error
	DeleteObservationItem(ctx context.Context, id int64) error

	ListWritingTopics(ctx context.Context) ([]models.WritingTopic, error)
	InsertWritingTopic(ctx context.Context, t models.WritingTopic) (int64, error)
}

// CompletionRepository handles the completion ledger and streak days.
// Record runs the whole write in one transaction: duplicate check, completion
// insert, total points increment, and the streak day update for `today` (the
// streak advances when a day record exists for `yesterday`). Both dates are
// server-local "2006-01-02" strings supplied by the caller.
type CompletionRepository interface {
	Record(ctx context.Context, c models.Completion, today, yesterday string) (*models.StreakState, error)
	Has(ctx context.Context, userID int64, moduleType string, contentID int64) (bool, error)
	Count(ctx context.Context, userID int64) (int, error)
	ModuleKinds(ctx context.Context, userID int64) ([]string, error)
	CompletedContentIDs(ctx context.Context, userID int64, moduleType string) ([]int64, error)
	Recent(ctx context.Context, userID int64, limit int) ([]models.Completion, error)
	List(ctx context.Context, filter models.CompletionFilter) ([]models.Completion, error)
	CountFiltered(ctx context.Context, filter models.CompletionFilter) (int, error)
}

// QuoteRepository handles daily quote data access
type QuoteRepository interface {
	Get(ctx context.Context, id int64) (*models.DailyQuote, error)
	Insert(ctx context.Context, q models.DailyQuote) (int64, error)
	UserQuoteExists(ctx context.Context, userID int64, postDate string) (bool, error)
	CountDepartmentQuotes(ctx context.Context, department, postDate string) (int, error)
	ListForDate(ctx context.Context, postDate string) ([]models.QuoteWithAuthor, error)
	FeaturedForDate(ctx context.Context, postDate string) (*models.QuoteWithAuthor, error)
}

// AttemptRepository tracks speaking audio attempts for the daily rate limit
type AttemptRepository interface {
	CountForDate(ctx context.Context, userID, biographyID int64, attemptDate string) (int, error)
	Insert(ctx context.Context, a models.SpeakingAttempt) error
}

// TaskRepository handles department task data access
type TaskRepository interface {
	Get(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Insert(ctx context.Context, t models.Task) (int64, error)
	Update(ctx context.Context, t models.Task) error
}

// StatsRepository handles aggregate reads for the leaderboard and admin surface
type StatsRepository interface {
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	AdminStats(ctx context.Context, today string) (*models.AdminStats, error)
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error)
}
