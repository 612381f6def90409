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
	"github.com/vytor/bardspeak/internal/scoring"
	"github.com/vytor/bardspeak/internal/services"
	"github.com/vytor/bardspeak/internal/testutil/mocks"
)

func TestLeaderboard_TopTen(t *testing.T) {
	stats := new(mocks.MockStatsRepository)

	entries := []models.LeaderboardEntry{
		{Rank: 1, Username: "priya", Department: "CSE", TotalPoints: 320},
		{Rank: 2, Username: "arun", Department: "ECE", TotalPoints: 240},
	}
	stats.On("Leaderboard", mock.Anything, 10).Return(entries, nil)

	svc := services.NewStatsService(nil, nil, nil, nil, stats)
	got, err := svc.Leaderboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entries, got)
	stats.AssertExpectations(t)
}

func TestDashboard_AssemblesEverything(t *testing.T) {
	users := new(mocks.MockUserRepository)
	comps := new(mocks.MockCompletionRepository)
	quotes := new(mocks.MockQuoteRepository)
	tasks := new(mocks.MockTaskRepository)

	user := &models.User{ID: 7, Username: "priya", Department: "CSE", TotalPoints: 120, BestStreak: 8}
	users.On("Get", mock.Anything, int64(7)).Return(user, nil)
	comps.On("Count", mock.Anything, int64(7)).Return(12, nil)
	recent := []models.Completion{
		{ID: 31, ModuleType: models.ModuleSpeaking, Score: 90},
		{ID: 30, ModuleType: models.ModuleWriting, Score: 80},
	}
	comps.On("Recent", mock.Anything, int64(7), 5).Return(recent, nil)
	featured := &models.QuoteWithAuthor{
		DailyQuote:   models.DailyQuote{Quote: "Brevity is the soul of wit.", IsFeatured: true},
		PostedByName: "arun",
	}
	quotes.On("FeaturedForDate", mock.Anything, mock.Anything).Return(featured, nil)
	taskList := []models.Task{{ID: 1, Title: "Recite a monologue", Department: "CSE", IsActive: true}}
	tasks.On("List", mock.Anything, models.TaskFilter{Department: "CSE", ActiveOnly: true}).Return(taskList, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return(models.ModuleKinds, nil)

	svc := services.NewStatsService(users, comps, quotes, tasks, nil)
	dash, err := svc.Dashboard(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "priya", dash.User.Username)
	assert.ElementsMatch(t, []string{
		scoring.BadgeCenturyScorer,
		scoring.BadgeWeekWarrior,
		scoring.BadgePracticeChampion,
	}, dash.Badges)
	assert.Equal(t, recent, dash.RecentCompletions)
	require.NotNil(t, dash.FeaturedQuote)
	assert.Equal(t, "arun", dash.FeaturedQuote.PostedByName)
	assert.Equal(t, taskList, dash.Tasks)
	assert.True(t, dash.CertificateReady)
}

func TestDashboard_NoFeaturedQuote(t *testing.T) {
	users := new(mocks.MockUserRepository)
	comps := new(mocks.MockCompletionRepository)
	quotes := new(mocks.MockQuoteRepository)
	tasks := new(mocks.MockTaskRepository)

	user := &models.User{ID: 7, Username: "priya", Department: "CSE"}
	users.On("Get", mock.Anything, int64(7)).Return(user, nil)
	comps.On("Count", mock.Anything, int64(7)).Return(0, nil)
	comps.On("Recent", mock.Anything, int64(7), 5).Return([]models.Completion{}, nil)
	quotes.On("FeaturedForDate", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
	tasks.On("List", mock.Anything, mock.Anything).Return([]models.Task{}, nil)
	comps.On("ModuleKinds", mock.Anything, int64(7)).Return([]string{}, nil)

	svc := services.NewStatsService(users, comps, quotes, tasks, nil)
	dash, err := svc.Dashboard(context.Background(), 7)

	require.NoError(t, err)
	assert.Nil(t, dash.FeaturedQuote)
	assert.False(t, dash.CertificateReady)
	assert.Empty(t, dash.Badges)
}

func TestDashboard_UnknownUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("Get", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	svc := services.NewStatsService(users, nil, nil, nil, nil)
	_, err := svc.Dashboard(context.Background(), 99)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}
