package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/jobs"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/oracle"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/scoring"
	"github.com/vytor/bardspeak/internal/speech"
)

// PracticeService handles every practice submission path: scoring, the
// completion ledger, streaks, and certificate unlock detection
type PracticeService interface {
	SubmitSpeaking(ctx context.Context, userID, biographyID int64, transcript string) (*models.SubmissionResult, error)
	SubmitSpeakingAudio(ctx context.Context, userID, biographyID int64, audio []byte, mimeType, clientTranscript string) (*models.SubmissionResult, error)
	SubmitListening(ctx context.Context, userID, clipID int64, answer string) (*models.SubmissionResult, error)
	SubmitObservation(ctx context.Context, userID, itemID int64, answer string) (*models.SubmissionResult, error)
	PostQuote(ctx context.Context, userID int64, quote, author string) (*models.QuotePostResult, error)
	RespondToQuote(ctx context.Context, userID, quoteID int64, response string) (*models.SubmissionResult, error)
}

type practiceService struct {
	contentRepo    repository.ContentRepository
	completionRepo repository.CompletionRepository
	quoteRepo      repository.QuoteRepository
	attemptRepo    repository.AttemptRepository
	userRepo       repository.UserRepository
	oracle         oracle.Oracle
	transcriber    speech.Transcriber
	jobQueue       jobs.JobQueue
	attemptsPerDay int
}

// NewPracticeService creates a new PracticeService. oracle, transcriber, and
// jobQueue may be nil: a nil oracle means every submission scores on the
// fallback path, a nil transcriber means audio submissions rely on the
// client transcript, and a nil jobQueue skips certificate pre-rendering.
func NewPracticeService(
	contentRepo repository.ContentRepository,
	completionRepo repository.CompletionRepository,
	quoteRepo repository.QuoteRepository,
	attemptRepo repository.AttemptRepository,
	userRepo repository.UserRepository,
	oracleClient oracle.Oracle,
	transcriber speech.Transcriber,
	jobQueue jobs.JobQueue,
	attemptsPerDay int,
) PracticeService {
	return &practiceService{
		contentRepo:    contentRepo,
		completionRepo: completionRepo,
		quoteRepo:      quoteRepo,
		attemptRepo:    attemptRepo,
		userRepo:       userRepo,
		oracle:         oracleClient,
		transcriber:    transcriber,
		jobQueue:       jobQueue,
		attemptsPerDay: attemptsPerDay,
	}
}

func (s *practiceService) SubmitSpeaking(ctx context.Context, userID, biographyID int64, transcript string) (*models.SubmissionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("speaking submission: user_id=%d, biography_id=%d", userID, biographyID)

	if strings.TrimSpace(transcript) == "" {
		return nil, errors.NewValidationError("recorded_text", "cannot be empty")
	}

	bio, err := s.contentRepo.GetBiography(ctx, biographyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("biography", biographyID)
		}
		log.Error("failed to get biography: %v", err)
		return nil, errors.NewInternalError(err)
	}

	rating, oracleOK := s.rate(ctx, transcript)
	outcome := scoring.Score(models.ModuleSpeaking, transcript, bio.Content, rating, oracleOK)
	return s.complete(ctx, userID, models.ModuleSpeaking, biographyID, outcome)
}

func (s *practiceService) SubmitSpeakingAudio(ctx context.Context, userID, biographyID int64, audio []byte, mimeType, clientTranscript string) (*models.SubmissionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("speaking audio submission: user_id=%d, biography_id=%d, bytes=%d", userID, biographyID, len(audio))

	if len(audio) == 0 && strings.TrimSpace(clientTranscript) == "" {
		return nil, errors.NewValidationError("audio", "audio or recorded_text is required")
	}

	today, _ := practiceDates()
	attempts, err := s.attemptRepo.CountForDate(ctx, userID, biographyID, today)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempts >= s.attemptsPerDay {
		return nil, errors.NewRateLimitedError("daily attempt limit reached for this biography")
	}

	bio, err := s.contentRepo.GetBiography(ctx, biographyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("biography", biographyID)
		}
		log.Error("failed to get biography: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// The attempt counts even when transcription fails afterwards.
	if err := s.attemptRepo.Insert(ctx, models.SpeakingAttempt{
		UserID:      userID,
		BiographyID: biographyID,
		AttemptDate: today,
	}); err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	transcript := s.transcribe(ctx, audio, mimeType, clientTranscript)
	if strings.TrimSpace(transcript) == "" {
		return nil, errors.NewValidationError("audio", "could not transcribe audio and no recorded_text was provided")
	}

	rating, oracleOK := s.rate(ctx, transcript)
	outcome := scoring.Score(models.ModuleSpeaking, transcript, bio.Content, rating, oracleOK)
	result, err := s.complete(ctx, userID, models.ModuleSpeaking, biographyID, outcome)
	if err != nil {
		return nil, err
	}
	result.Transcript = transcript
	return result, nil
}

func (s *practiceService) SubmitListening(ctx context.Context, userID, clipID int64, answer string) (*models.SubmissionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("listening submission: user_id=%d, clip_id=%d", userID, clipID)

	if strings.TrimSpace(answer) == "" {
		return nil, errors.NewValidationError("user_text", "cannot be empty")
	}

	clip, err := s.contentRepo.GetListeningClip(ctx, clipID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("listening clip", clipID)
		}
		log.Error("failed to get listening clip: %v", err)
		return nil, errors.NewInternalError(err)
	}

	rating, oracleOK := s.rate(ctx, answer)
	outcome := scoring.Score(models.ModuleListening, answer, clip.Transcript, rating, oracleOK)
	return s.complete(ctx, userID, models.ModuleListening, clipID, outcome)
}

func (s *practiceService) SubmitObservation(ctx context.Context, userID, itemID int64, answer string) (*models.SubmissionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("observation submission: user_id=%d, item_id=%d", userID, itemID)

	if strings.TrimSpace(answer) == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	item, err := s.contentRepo.GetObservationItem(ctx, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("observation item", itemID)
		}
		log.Error("failed to get observation item: %v", err)
		return nil, errors.NewInternalError(err)
	}

	rating, oracleOK := s.rate(ctx, answer)
	outcome := scoring.Score(models.ModuleObservation, answer, item.CorrectAnswers, rating, oracleOK)
	return s.complete(ctx, userID, models.ModuleObservation, itemID, outcome)
}

func (s *practiceService) PostQuote(ctx context.Context, userID int64, quote, author string) (*models.QuotePostResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("quote post: user_id=%d", userID)

	if strings.TrimSpace(quote) == "" {
		return nil, errors.NewValidationError("quote", "cannot be empty")
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", userID)
		}
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today, _ := practiceDates()
	posted, err := s.quoteRepo.UserQuoteExists(ctx, userID, today)
	if err != nil {
		log.Error("failed to check today's quote: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if posted {
		return nil, errors.NewConflictError("you already posted a quote today")
	}

	deptCount, err := s.quoteRepo.CountDepartmentQuotes(ctx, user.Department, today)
	if err != nil {
		log.Error("failed to count department quotes: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// The first quote of the department each day is featured and worth more.
	featured := deptCount == 0
	points := 10
	if featured {
		points = 15
	}

	q := models.DailyQuote{
		Quote:      strings.TrimSpace(quote),
		Author:     strings.TrimSpace(author),
		PostedBy:   userID,
		Department: user.Department,
		PostDate:   today,
		IsFeatured: featured,
	}
	id, err := s.quoteRepo.Insert(ctx, q)
	if err != nil {
		log.Error("failed to insert quote: %v", err)
		return nil, errors.NewInternalError(err)
	}
	q.ID = id

	result, err := s.complete(ctx, userID, models.ModuleWriting, id, scoring.Outcome{
		Score:       100,
		Points:      points,
		Celebration: featured,
	})
	if err != nil {
		return nil, err
	}

	return &models.QuotePostResult{
		Quote:               q,
		Points:              points,
		CurrentStreak:       result.CurrentStreak,
		CertificateUnlocked: result.CertificateUnlocked,
	}, nil
}

func (s *practiceService) RespondToQuote(ctx context.Context, userID, quoteID int64, response string) (*models.SubmissionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("quote response: user_id=%d, quote_id=%d", userID, quoteID)

	if strings.TrimSpace(response) == "" {
		return nil, errors.NewValidationError("response", "cannot be empty")
	}

	if _, err := s.quoteRepo.Get(ctx, quoteID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("quote", quoteID)
		}
		log.Error("failed to get quote: %v", err)
		return nil, errors.NewInternalError(err)
	}

	rating, oracleOK := s.rate(ctx, response)
	outcome := scoring.Score(models.ModuleWriting, response, "", rating, oracleOK)
	return s.complete(ctx, userID, models.ModuleWriting, quoteID, outcome)
}

// rate asks the oracle for a 1-5 quality judgment. Any failure selects the
// deterministic fallback scoring path, never a submission failure.
func (s *practiceService) rate(ctx context.Context, text string) (int, bool) {
	if s.oracle == nil {
		return 0, false
	}
	rating, err := s.oracle.Rate(ctx, text)
	if err != nil {
		logger.FromContext(ctx).Warn("oracle unavailable, using fallback scoring: %v", err)
		return 0, false
	}
	return rating, true
}

// transcribe runs speech-to-text on the uploaded audio and falls back to the
// client-supplied transcript when the transcriber is missing or fails.
func (s *practiceService) transcribe(ctx context.Context, audio []byte, mimeType, clientTranscript string) string {
	log := logger.FromContext(ctx)

	if s.transcriber == nil || len(audio) == 0 {
		return clientTranscript
	}
	transcript, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		log.Warn("transcription failed, using client transcript: %v", err)
		return clientTranscript
	}
	if strings.TrimSpace(transcript) == "" {
		return clientTranscript
	}
	return transcript
}

// complete records the completion atomically and detects the submission that
// unlocks the certificate (the one completing the fourth module kind).
func (s *practiceService) complete(ctx context.Context, userID int64, moduleType string, contentID int64, outcome scoring.Outcome) (*models.SubmissionResult, error) {
	log := logger.FromContext(ctx)

	kindsBefore, err := s.completionRepo.ModuleKinds(ctx, userID)
	if err != nil {
		log.Error("failed to load module kinds: %v", err)
		return nil, errors.NewInternalError(err)
	}
	wasReady := scoring.CertificateReady(kindsBefore)

	today, yesterday := practiceDates()
	state, err := s.completionRepo.Record(ctx, models.Completion{
		UserID:       userID,
		ModuleType:   moduleType,
		ContentID:    contentID,
		Score:        outcome.Score,
		PointsEarned: outcome.Points,
	}, today, yesterday)
	if err != nil {
		if err == repository.ErrDuplicateCompletion {
			return nil, errors.NewDuplicateCompletionError(moduleType, contentID)
		}
		log.Error("failed to record completion: %v", err)
		return nil, errors.NewInternalError(err)
	}

	kindsAfter, err := s.completionRepo.ModuleKinds(ctx, userID)
	if err != nil {
		log.Error("failed to reload module kinds: %v", err)
		return nil, errors.NewInternalError(err)
	}
	unlocked := !wasReady && scoring.CertificateReady(kindsAfter)

	if unlocked && s.jobQueue != nil {
		if err := s.jobQueue.EnqueueCertificateRender(userID); err != nil {
			log.Warn("failed to enqueue certificate render: %v", err)
		}
	}

	log.Info("completion recorded: user_id=%d, module=%s, content_id=%d, score=%d, points=%d, streak=%d",
		userID, moduleType, contentID, outcome.Score, outcome.Points, state.CurrentStreak)

	return &models.SubmissionResult{
		Score:               outcome.Score,
		Points:              outcome.Points,
		Celebration:         outcome.Celebration,
		CurrentStreak:       state.CurrentStreak,
		CertificateUnlocked: unlocked,
	}, nil
}

// practiceDates returns today's and yesterday's server-local calendar dates.
func practiceDates() (today, yesterday string) {
	now := time.Now()
	return now.Format("2006-01-02"), now.AddDate(0, 0, -1).Format("2006-01-02")
}
