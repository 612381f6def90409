package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

// ContentService handles the practice catalogs, the task board, and the
// admin-side content management
type ContentService interface {
	SpeakingCatalog(ctx context.Context, userID int64) ([]models.Biography, []int64, error)
	Biography(ctx context.Context, id int64) (*models.Biography, error)
	ListeningCatalog(ctx context.Context, userID int64) ([]models.ListeningClip, []int64, error)
	ListeningClip(ctx context.Context, id int64) (*models.ListeningClip, error)
	ObservationCatalog(ctx context.Context, userID int64) ([]models.ObservationItem, []int64, error)
	ObservationItem(ctx context.Context, id int64) (*models.ObservationItem, error)
	WritingCatalog(ctx context.Context, userID int64) (*models.WritingCatalog, error)

	AddBiography(ctx context.Context, b models.Biography) (int64, error)
	UpdateBiography(ctx context.Context, b models.Biography) error
	DeleteBiography(ctx context.Context, id int64) error
	AddListeningClip(ctx context.Context, c models.ListeningClip) (int64, error)
	UpdateListeningClip(ctx context.Context, c models.ListeningClip) error
	DeleteListeningClip(ctx context.Context, id int64) error
	AddObservationItem(ctx context.Context, o models.ObservationItem) (int64, error)
	UpdateObservationItem(ctx context.Context, o models.ObservationItem) error
	DeleteObservationItem(ctx context.Context, id int64) error
	AddWritingTopic(ctx context.Context, t models.WritingTopic) (int64, error)

	TasksForUser(ctx context.Context, userID int64) ([]models.Task, error)
	AllTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (int64, error)
	UpdateTask(ctx context.Context, t models.Task) error
}

type contentService struct {
	contentRepo    repository.ContentRepository
	completionRepo repository.CompletionRepository
	quoteRepo      repository.QuoteRepository
	taskRepo       repository.TaskRepository
	userRepo       repository.UserRepository
}

// NewContentService creates a new ContentService
func NewContentService(
	contentRepo repository.ContentRepository,
	completionRepo repository.CompletionRepository,
	quoteRepo repository.QuoteRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) ContentService {
	return &contentService{
		contentRepo:    contentRepo,
		completionRepo: completionRepo,
		quoteRepo:      quoteRepo,
		taskRepo:       taskRepo,
		userRepo:       userRepo,
	}
}

func (s *contentService) SpeakingCatalog(ctx context.Context, userID int64) ([]models.Biography, []int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading speaking catalog: user_id=%d", userID)

	bios, err := s.contentRepo.ListBiographies(ctx)
	if err != nil {
		log.Error("failed to list biographies: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	done, err := s.completionRepo.CompletedContentIDs(ctx, userID, models.ModuleSpeaking)
	if err != nil {
		log.Error("failed to list completed ids: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	return bios, done, nil
}

func (s *contentService) Biography(ctx context.Context, id int64) (*models.Biography, error) {
	log := logger.FromContext(ctx)

	bio, err := s.contentRepo.GetBiography(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("biography", id)
		}
		log.Error("failed to get biography: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return bio, nil
}

func (s *contentService) ListeningCatalog(ctx context.Context, userID int64) ([]models.ListeningClip, []int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading listening catalog: user_id=%d", userID)

	clips, err := s.contentRepo.ListListeningClips(ctx)
	if err != nil {
		log.Error("failed to list listening clips: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	done, err := s.completionRepo.CompletedContentIDs(ctx, userID, models.ModuleListening)
	if err != nil {
		log.Error("failed to list completed ids: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	return clips, done, nil
}

func (s *contentService) ListeningClip(ctx context.Context, id int64) (*models.ListeningClip, error) {
	log := logger.FromContext(ctx)

	clip, err := s.contentRepo.GetListeningClip(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("listening clip", id)
		}
		log.Error("failed to get listening clip: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return clip, nil
}

func (s *contentService) ObservationCatalog(ctx context.Context, userID int64) ([]models.ObservationItem, []int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading observation catalog: user_id=%d", userID)

	items, err := s.contentRepo.ListObservationItems(ctx)
	if err != nil {
		log.Error("failed to list observation items: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	done, err := s.completionRepo.CompletedContentIDs(ctx, userID, models.ModuleObservation)
	if err != nil {
		log.Error("failed to list completed ids: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	return items, done, nil
}

func (s *contentService) ObservationItem(ctx context.Context, id int64) (*models.ObservationItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.contentRepo.GetObservationItem(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("observation item", id)
		}
		log.Error("failed to get observation item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return item, nil
}

func (s *contentService) WritingCatalog(ctx context.Context, userID int64) (*models.WritingCatalog, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading writing catalog: user_id=%d", userID)

	topics, err := s.contentRepo.ListWritingTopics(ctx)
	if err != nil {
		log.Error("failed to list writing topics: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today := time.Now().Format("2006-01-02")
	quotes, err := s.quoteRepo.ListForDate(ctx, today)
	if err != nil {
		log.Error("failed to list today's quotes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	posted, err := s.quoteRepo.UserQuoteExists(ctx, userID, today)
	if err != nil {
		log.Error("failed to check today's quote: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.WritingCatalog{
		Topics:        topics,
		TodaysQuotes:  quotes,
		AlreadyPosted: posted,
	}, nil
}

func (s *contentService) AddBiography(ctx context.Context, b models.Biography) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding biography: title=%s", b.Title)

	if b.Title == "" {
		return 0, errors.NewValidationError("title", "cannot be empty")
	}
	if b.PersonName == "" {
		return 0, errors.NewValidationError("person_name", "cannot be empty")
	}
	if b.Content == "" {
		return 0, errors.NewValidationError("content", "cannot be empty")
	}

	id, err := s.contentRepo.InsertBiography(ctx, b)
	if err != nil {
		log.Error("failed to insert biography: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return id, nil
}

func (s *contentService) UpdateBiography(ctx context.Context, b models.Biography) error {
	log := logger.FromContext(ctx)
	log.Debug("updating biography: id=%d", b.ID)

	if _, err := s.Biography(ctx, b.ID); err != nil {
		return err
	}
	if b.Title == "" || b.PersonName == "" || b.Content == "" {
		return errors.NewValidationError("biography", "title, person_name, and content are required")
	}
	if err := s.contentRepo.UpdateBiography(ctx, b); err != nil {
		log.Error("failed to update biography: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) DeleteBiography(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting biography: id=%d", id)

	if _, err := s.Biography(ctx, id); err != nil {
		return err
	}
	if err := s.contentRepo.DeleteBiography(ctx, id); err != nil {
		log.Error("failed to delete biography: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) AddListeningClip(ctx context.Context, c models.ListeningClip) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding listening clip: title=%s", c.Title)

	if c.Title == "" {
		return 0, errors.NewValidationError("title", "cannot be empty")
	}
	if c.AudioFile == "" {
		return 0, errors.NewValidationError("audio_file", "cannot be empty")
	}
	if c.Transcript == "" {
		return 0, errors.NewValidationError("transcript", "cannot be empty")
	}
	if c.RobotCharacter == "" {
		c.RobotCharacter = "boy"
	}

	id, err := s.contentRepo.InsertListeningClip(ctx, c)
	if err != nil {
		log.Error("failed to insert listening clip: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return id, nil
}

func (s *contentService) UpdateListeningClip(ctx context.Context, c models.ListeningClip) error {
	log := logger.FromContext(ctx)
	log.Debug("updating listening clip: id=%d", c.ID)

	if _, err := s.ListeningClip(ctx, c.ID); err != nil {
		return err
	}
	if c.Title == "" || c.AudioFile == "" || c.Transcript == "" {
		return errors.NewValidationError("listening clip", "title, audio_file, and transcript are required")
	}
	if err := s.contentRepo.UpdateListeningClip(ctx, c); err != nil {
		log.Error("failed to update listening clip: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) DeleteListeningClip(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting listening clip: id=%d", id)

	if _, err := s.ListeningClip(ctx, id); err != nil {
		return err
	}
	if err := s.contentRepo.DeleteListeningClip(ctx, id); err != nil {
		log.Error("failed to delete listening clip: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) AddObservationItem(ctx context.Context, o models.ObservationItem) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding observation item: title=%s", o.Title)

	if o.Title == "" {
		return 0, errors.NewValidationError("title", "cannot be empty")
	}
	if o.VideoURL == "" {
		return 0, errors.NewValidationError("video_url", "cannot be empty")
	}
	if o.Questions == "" {
		return 0, errors.NewValidationError("questions", "cannot be empty")
	}
	if o.CorrectAnswers == "" {
		return 0, errors.NewValidationError("correct_answers", "cannot be empty")
	}

	id, err := s.contentRepo.InsertObservationItem(ctx, o)
	if err != nil {
		log.Error("failed to insert observation item: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return id, nil
}

func (s *contentService) UpdateObservationItem(ctx context.Context, o models.ObservationItem) error {
	log := logger.FromContext(ctx)
	log.Debug("updating observation item: id=%d", o.ID)

	if _, err := s.ObservationItem(ctx, o.ID); err != nil {
		return err
	}
	if o.Title == "" || o.VideoURL == "" || o.Questions == "" || o.CorrectAnswers == "" {
		return errors.NewValidationError("observation item", "title, video_url, questions, and correct_answers are required")
	}
	if err := s.contentRepo.UpdateObservationItem(ctx, o); err != nil {
		log.Error("failed to update observation item: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) DeleteObservationItem(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting observation item: id=%d", id)

	if _, err := s.ObservationItem(ctx, id); err != nil {
		return err
	}
	if err := s.contentRepo.DeleteObservationItem(ctx, id); err != nil {
		log.Error("failed to delete observation item: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) AddWritingTopic(ctx context.Context, t models.WritingTopic) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding writing topic: topic=%s", t.Topic)

	if t.Topic == "" {
		return 0, errors.NewValidationError("topic", "cannot be empty")
	}

	id, err := s.contentRepo.InsertWritingTopic(ctx, t)
	if err != nil {
		log.Error("failed to insert writing topic: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return id, nil
}

func (s *contentService) TasksForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading tasks: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	tasks, err := s.taskRepo.List(ctx, models.TaskFilter{Department: user.Department, ActiveOnly: true})
	if err != nil {
		log.Error("failed to list tasks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return tasks, nil
}

func (s *contentService) AllTasks(ctx context.Context) ([]models.Task, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing all tasks")

	tasks, err := s.taskRepo.List(ctx, models.TaskFilter{})
	if err != nil {
		log.Error("failed to list tasks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return tasks, nil
}

func (s *contentService) CreateTask(ctx context.Context, t models.Task) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating task: title=%s, department=%s", t.Title, t.Department)

	if t.Title == "" {
		return 0, errors.NewValidationError("title", "cannot be empty")
	}
	if t.Department == "" {
		t.Department = "ALL"
	}
	if t.ModuleType != "" && !models.ValidModuleKind(t.ModuleType) {
		return 0, errors.NewValidationError("module_type", "unknown module kind")
	}

	id, err := s.taskRepo.Insert(ctx, t)
	if err != nil {
		log.Error("failed to insert task: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return id, nil
}

func (s *contentService) UpdateTask(ctx context.Context, t models.Task) error {
	log := logger.FromContext(ctx)
	log.Debug("updating task: id=%d", t.ID)

	if _, err := s.taskRepo.Get(ctx, t.ID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("task", t.ID)
		}
		log.Error("failed to get task: %v", err)
		return errors.NewInternalError(err)
	}
	if t.Title == "" {
		return errors.NewValidationError("title", "cannot be empty")
	}
	if t.Department == "" {
		t.Department = "ALL"
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		log.Error("failed to update task: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
