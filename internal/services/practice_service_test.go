package services_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/services"
	"github.com/vytor/bardspeak/internal/testutil/mocks"
)

const attemptsPerDay = 3

func TestSubmitSpeaking_OracleScores(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	oracleMock := new(mocks.MockOracle)

	bio := &models.Biography{ID: 1, PersonName: "William Shakespeare", Content: "to be or not to be"}
	content.On("GetBiography", mock.Anything, int64(1)).Return(bio, nil)
	oracleMock.On("Rate", mock.Anything, "to be or not to be").Return(5, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleSpeaking}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 1}, nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, oracleMock, nil, nil, attemptsPerDay)
	result, err := svc.SubmitSpeaking(context.Background(), 7, 1, "to be or not to be")

	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 15, result.Points)
	assert.True(t, result.Celebration)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.False(t, result.CertificateUnlocked)
	comps.AssertExpectations(t)
}

func TestSubmitSpeaking_OracleDownFallsBack(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	oracleMock := new(mocks.MockOracle)

	bio := &models.Biography{ID: 1, Content: "to be or not to be"}
	content.On("GetBiography", mock.Anything, int64(1)).Return(bio, nil)
	oracleMock.On("Rate", mock.Anything, mock.Anything).Return(0, assert.AnError)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleSpeaking}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 1}, nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, oracleMock, nil, nil, attemptsPerDay)
	result, err := svc.SubmitSpeaking(context.Background(), 7, 1, "to be or not to be")

	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 10, result.Points, "fallback scoring caps speaking points at 10")
	assert.True(t, result.Celebration)
}

func TestSubmitSpeaking_EmptyTranscript(t *testing.T) {
	svc := services.NewPracticeService(nil, nil, nil, nil, nil, nil, nil, nil, attemptsPerDay)

	_, err := svc.SubmitSpeaking(context.Background(), 7, 1, "   ")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestSubmitSpeaking_UnknownBiography(t *testing.T) {
	content := new(mocks.MockContentRepository)
	content.On("GetBiography", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	svc := services.NewPracticeService(content, nil, nil, nil, nil, nil, nil, nil, attemptsPerDay)
	_, err := svc.SubmitSpeaking(context.Background(), 7, 99, "some speech")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestSubmitSpeaking_DuplicateCompletion(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)

	bio := &models.Biography{ID: 1, Content: "to be or not to be"}
	content.On("GetBiography", mock.Anything, int64(1)).Return(bio, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleSpeaking}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, repository.ErrDuplicateCompletion)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, nil, nil, nil, attemptsPerDay)
	_, err := svc.SubmitSpeaking(context.Background(), 7, 1, "to be or not to be")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeDuplicateCompletion, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestSubmitSpeaking_FourthKindUnlocksCertificate(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	queue := new(mocks.MockJobQueue)

	bio := &models.Biography{ID: 1, Content: "to be or not to be"}
	content.On("GetBiography", mock.Anything, int64(1)).Return(bio, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).
		Return([]string{models.ModuleListening, models.ModuleWriting, models.ModuleObservation}, nil).Once()
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 4, BestStreak: 4}, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).
		Return(models.ModuleKinds, nil).Once()
	queue.On("EnqueueCertificateRender", int64(7)).Return(nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, nil, nil, queue, attemptsPerDay)
	result, err := svc.SubmitSpeaking(context.Background(), 7, 1, "to be or not to be")

	require.NoError(t, err)
	assert.True(t, result.CertificateUnlocked)
	queue.AssertCalled(t, "EnqueueCertificateRender", int64(7))
}

func TestSubmitSpeaking_AlreadyEligibleDoesNotReunlock(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	queue := new(mocks.MockJobQueue)

	bio := &models.Biography{ID: 2, Content: "all the world's a stage"}
	content.On("GetBiography", mock.Anything, int64(2)).Return(bio, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return(models.ModuleKinds, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 5, BestStreak: 5}, nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, nil, nil, queue, attemptsPerDay)
	result, err := svc.SubmitSpeaking(context.Background(), 7, 2, "all the world's a stage")

	require.NoError(t, err)
	assert.False(t, result.CertificateUnlocked)
	queue.AssertNotCalled(t, "EnqueueCertificateRender", mock.Anything)
}

func TestSubmitSpeakingAudio_RateLimited(t *testing.T) {
	content := new(mocks.MockContentRepository)
	attempts := new(mocks.MockAttemptRepository)

	attempts.On("CountForDate", mock.Anything, int64(7), int64(1), mock.Anything).Return(attemptsPerDay, nil)

	svc := services.NewPracticeService(content, nil, nil, attempts, nil, nil, nil, nil, attemptsPerDay)
	_, err := svc.SubmitSpeakingAudio(context.Background(), 7, 1, []byte("audio"), "audio/webm", "")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeRateLimited, appErr.Code)
	assert.Equal(t, 429, appErr.Status)
	content.AssertNotCalled(t, "GetBiography", mock.Anything, mock.Anything)
}

func TestSubmitSpeakingAudio_TranscriberFailureUsesClientTranscript(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	attempts := new(mocks.MockAttemptRepository)
	transcriber := new(mocks.MockTranscriber)

	bio := &models.Biography{ID: 1, Content: "to be or not to be"}
	attempts.On("CountForDate", mock.Anything, int64(7), int64(1), mock.Anything).Return(0, nil)
	content.On("GetBiography", mock.Anything, int64(1)).Return(bio, nil)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything, "audio/webm").Return("", assert.AnError)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleSpeaking}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 1}, nil)

	svc := services.NewPracticeService(content, comps, nil, attempts, nil, nil, transcriber, nil, attemptsPerDay)
	result, err := svc.SubmitSpeakingAudio(context.Background(), 7, 1, []byte("audio"), "audio/webm", "to be or not to be")

	require.NoError(t, err)
	assert.Equal(t, "to be or not to be", result.Transcript)
	attempts.AssertCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitSpeakingAudio_NoAudioNoTranscript(t *testing.T) {
	svc := services.NewPracticeService(nil, nil, nil, nil, nil, nil, nil, nil, attemptsPerDay)

	_, err := svc.SubmitSpeakingAudio(context.Background(), 7, 1, nil, "", "")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSubmitSpeakingAudio_AttemptCountedOnTranscriptionFailure(t *testing.T) {
	content := new(mocks.MockContentRepository)
	attempts := new(mocks.MockAttemptRepository)
	transcriber := new(mocks.MockTranscriber)

	bio := &models.Biography{ID: 1, Content: "to be or not to be"}
	attempts.On("CountForDate", mock.Anything, int64(7), int64(1), mock.Anything).Return(0, nil)
	content.On("GetBiography", mock.Anything, int64(1)).Return(bio, nil)
	attempts.On("Insert", mock.Anything, mock.Anything).Return(nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

	svc := services.NewPracticeService(content, nil, nil, attempts, nil, nil, transcriber, nil, attemptsPerDay)
	_, err := svc.SubmitSpeakingAudio(context.Background(), 7, 1, []byte("audio"), "audio/webm", "")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	attempts.AssertCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitListening_OracleScores(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	oracleMock := new(mocks.MockOracle)

	clip := &models.ListeningClip{ID: 3, Transcript: "friends romans countrymen lend me your ears"}
	content.On("GetListeningClip", mock.Anything, int64(3)).Return(clip, nil)
	oracleMock.On("Rate", mock.Anything, mock.Anything).Return(4, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleListening}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 2, BestStreak: 2}, nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, oracleMock, nil, nil, attemptsPerDay)
	result, err := svc.SubmitListening(context.Background(), 7, 3, "friends romans countrymen lend me your ears")

	require.NoError(t, err)
	assert.Equal(t, 80, result.Score)
	assert.Equal(t, 10, result.Points)
	assert.True(t, result.Celebration)
	assert.Equal(t, 2, result.CurrentStreak)
}

func TestSubmitListening_FallbackExactMatch(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)

	clip := &models.ListeningClip{ID: 3, Transcript: "Friends, Romans, countrymen"}
	content.On("GetListeningClip", mock.Anything, int64(3)).Return(clip, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleListening}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 1}, nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, nil, nil, nil, attemptsPerDay)
	result, err := svc.SubmitListening(context.Background(), 7, 3, "friends, romans, countrymen")

	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 10, result.Points)
}

func TestSubmitObservation_CorrectAnswer(t *testing.T) {
	content := new(mocks.MockContentRepository)
	comps := new(mocks.MockCompletionRepository)
	oracleMock := new(mocks.MockOracle)

	item := &models.ObservationItem{ID: 5, CorrectAnswers: "the merchant hides the ring"}
	content.On("GetObservationItem", mock.Anything, int64(5)).Return(item, nil)
	oracleMock.On("Rate", mock.Anything, mock.Anything).Return(2, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleObservation}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 1}, nil)

	svc := services.NewPracticeService(content, comps, nil, nil, nil, oracleMock, nil, nil, attemptsPerDay)
	result, err := svc.SubmitObservation(context.Background(), 7, 5, "I saw that the merchant hides the ring under the table")

	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 10, result.Points)
	assert.True(t, result.Celebration)
}

func TestPostQuote_FirstOfDepartmentIsFeatured(t *testing.T) {
	comps := new(mocks.MockCompletionRepository)
	quotes := new(mocks.MockQuoteRepository)
	users := new(mocks.MockUserRepository)

	user := &models.User{ID: 7, Username: "priya", Department: "CSE"}
	users.On("Get", mock.Anything, int64(7)).Return(user, nil)
	quotes.On("UserQuoteExists", mock.Anything, int64(7), mock.Anything).Return(false, nil)
	quotes.On("CountDepartmentQuotes", mock.Anything, "CSE", mock.Anything).Return(0, nil)
	quotes.On("Insert", mock.Anything, mock.Anything).Return(int64(42), nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleWriting}, nil)
	comps.On("Record", mock.Anything, mock.MatchedBy(func(c models.Completion) bool {
		return c.ModuleType == models.ModuleWriting && c.ContentID == 42 && c.Score == 100 && c.PointsEarned == 15
	}), mock.Anything, mock.Anything).Return(&models.StreakState{CurrentStreak: 2, BestStreak: 2}, nil)

	svc := services.NewPracticeService(nil, comps, quotes, nil, users, nil, nil, nil, attemptsPerDay)
	result, err := svc.PostQuote(context.Background(), 7, "Brevity is the soul of wit.", "William Shakespeare")

	require.NoError(t, err)
	assert.True(t, result.Quote.IsFeatured)
	assert.Equal(t, 15, result.Points)
	assert.Equal(t, 2, result.CurrentStreak)
	comps.AssertExpectations(t)
}

func TestPostQuote_LaterQuoteIsNotFeatured(t *testing.T) {
	comps := new(mocks.MockCompletionRepository)
	quotes := new(mocks.MockQuoteRepository)
	users := new(mocks.MockUserRepository)

	user := &models.User{ID: 8, Username: "arun", Department: "ECE"}
	users.On("Get", mock.Anything, int64(8)).Return(user, nil)
	quotes.On("UserQuoteExists", mock.Anything, int64(8), mock.Anything).Return(false, nil)
	quotes.On("CountDepartmentQuotes", mock.Anything, "ECE", mock.Anything).Return(2, nil)
	quotes.On("Insert", mock.Anything, mock.Anything).Return(int64(43), nil)
	comps.On("ModuleKinds", mock.Anything, int64(8)).Return([]string{models.ModuleWriting}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 3}, nil)

	svc := services.NewPracticeService(nil, comps, quotes, nil, users, nil, nil, nil, attemptsPerDay)
	result, err := svc.PostQuote(context.Background(), 8, "All that glitters is not gold.", "William Shakespeare")

	require.NoError(t, err)
	assert.False(t, result.Quote.IsFeatured)
	assert.Equal(t, 10, result.Points)
}

func TestPostQuote_SecondQuoteSameDayConflicts(t *testing.T) {
	quotes := new(mocks.MockQuoteRepository)
	users := new(mocks.MockUserRepository)

	user := &models.User{ID: 7, Username: "priya", Department: "CSE"}
	users.On("Get", mock.Anything, int64(7)).Return(user, nil)
	quotes.On("UserQuoteExists", mock.Anything, int64(7), mock.Anything).Return(true, nil)

	svc := services.NewPracticeService(nil, nil, quotes, nil, users, nil, nil, nil, attemptsPerDay)
	_, err := svc.PostQuote(context.Background(), 7, "Though she be but little, she is fierce.", "William Shakespeare")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
	quotes.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRespondToQuote_GradesWriting(t *testing.T) {
	comps := new(mocks.MockCompletionRepository)
	quotes := new(mocks.MockQuoteRepository)
	oracleMock := new(mocks.MockOracle)

	quote := &models.DailyQuote{ID: 9, Quote: "Brevity is the soul of wit."}
	quotes.On("Get", mock.Anything, int64(9)).Return(quote, nil)
	oracleMock.On("Rate", mock.Anything, mock.Anything).Return(4, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{models.ModuleWriting}, nil)
	comps.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.StreakState{CurrentStreak: 1, BestStreak: 1}, nil)

	svc := services.NewPracticeService(nil, comps, quotes, nil, nil, oracleMock, nil, nil, attemptsPerDay)
	result, err := svc.RespondToQuote(context.Background(), 7, 9, "It reminds us that saying less can often mean much more")

	require.NoError(t, err)
	assert.Equal(t, 48, result.Score)
	assert.Equal(t, 12, result.Points)
	assert.False(t, result.Celebration)
}

func TestRespondToQuote_UnknownQuote(t *testing.T) {
	quotes := new(mocks.MockQuoteRepository)
	quotes.On("Get", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	svc := services.NewPracticeService(nil, nil, quotes, nil, nil, nil, nil, nil, attemptsPerDay)
	_, err := svc.RespondToQuote(context.Background(), 7, 99, "a thoughtful response")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}
