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

func TestRegister_CreatesUser(t *testing.T) {
	users := new(mocks.MockUserRepository)

	created := &models.User{ID: 1, Username: "priya", RegisterNumber: "2024CS101", Department: "CSE"}
	users.On("GetByUsername", mock.Anything, "priya").Return(nil, sql.ErrNoRows)
	users.On("GetByRegisterNumber", mock.Anything, "2024CS101").Return(nil, sql.ErrNoRows)
	users.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	users.On("Get", mock.Anything, int64(1)).Return(created, nil)

	svc := services.NewUserService(users, nil, nil)
	user, err := svc.Register(context.Background(), "priya", "2024CS101", "CSE")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "priya", user.Username)
	users.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := services.NewUserService(nil, nil, nil)

	for _, tc := range []struct {
		name           string
		username       string
		registerNumber string
		department     string
	}{
		{"no username", "", "2024CS101", "CSE"},
		{"no register number", "priya", "", "CSE"},
		{"no department", "priya", "2024CS101", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.registerNumber, tc.department)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	users := new(mocks.MockUserRepository)

	existing := &models.User{ID: 2, Username: "priya"}
	users.On("GetByUsername", mock.Anything, "priya").Return(existing, nil)

	svc := services.NewUserService(users, nil, nil)
	_, err := svc.Register(context.Background(), "priya", "2024CS102", "CSE")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegister_RegisterNumberTaken(t *testing.T) {
	users := new(mocks.MockUserRepository)

	existing := &models.User{ID: 2, RegisterNumber: "2024CS101"}
	users.On("GetByUsername", mock.Anything, "arun").Return(nil, sql.ErrNoRows)
	users.On("GetByRegisterNumber", mock.Anything, "2024CS101").Return(existing, nil)

	svc := services.NewUserService(users, nil, nil)
	_, err := svc.Register(context.Background(), "arun", "2024CS101", "ECE")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestLogin_ByRegisterNumber(t *testing.T) {
	users := new(mocks.MockUserRepository)

	user := &models.User{ID: 1, Username: "priya", RegisterNumber: "2024CS101"}
	users.On("GetByRegisterNumber", mock.Anything, "2024CS101").Return(user, nil)

	svc := services.NewUserService(users, nil, nil)
	got, err := svc.Login(context.Background(), "2024CS101")

	require.NoError(t, err)
	assert.Equal(t, "priya", got.Username)
}

func TestLogin_UnknownRegisterNumber(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByRegisterNumber", mock.Anything, "GHOST").Return(nil, sql.ErrNoRows)

	svc := services.NewUserService(users, nil, nil)
	_, err := svc.Login(context.Background(), "GHOST")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestProfile_ComputesBadges(t *testing.T) {
	users := new(mocks.MockUserRepository)
	comps := new(mocks.MockCompletionRepository)

	user := &models.User{ID: 1, Username: "priya", TotalPoints: 120, BestStreak: 8}
	users.On("Get", mock.Anything, int64(1)).Return(user, nil)
	comps.On("Count", mock.Anything, int64(1)).Return(12, nil)

	svc := services.NewUserService(users, comps, nil)
	profile, err := svc.Profile(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 12, profile.Completions)
	assert.ElementsMatch(t, []string{
		scoring.BadgeCenturyScorer,
		scoring.BadgeWeekWarrior,
		scoring.BadgePracticeChampion,
	}, profile.Badges)
}

func TestUpdateProfile_InvalidatesCachedCertificate(t *testing.T) {
	users := new(mocks.MockUserRepository)
	certs := new(mocks.MockCertificateService)

	before := &models.User{ID: 1, Username: "priya", Department: "CSE"}
	after := &models.User{ID: 1, Username: "priya-s", Department: "ECE"}
	users.On("Get", mock.Anything, int64(1)).Return(before, nil).Once()
	users.On("GetByUsername", mock.Anything, "priya-s").Return(nil, sql.ErrNoRows)
	users.On("UpdateProfile", mock.Anything, int64(1), "priya-s", "ECE").Return(nil)
	users.On("Get", mock.Anything, int64(1)).Return(after, nil).Once()
	certs.On("Invalidate", mock.Anything, int64(1)).Return()

	svc := services.NewUserService(users, nil, certs)
	updated, err := svc.UpdateProfile(context.Background(), 1, "priya-s", "ECE")

	require.NoError(t, err)
	assert.Equal(t, "priya-s", updated.Username)
	assert.Equal(t, "ECE", updated.Department)
	certs.AssertCalled(t, "Invalidate", mock.Anything, int64(1))
}

func TestUpdateProfile_NewUsernameTaken(t *testing.T) {
	users := new(mocks.MockUserRepository)

	before := &models.User{ID: 1, Username: "priya", Department: "CSE"}
	other := &models.User{ID: 2, Username: "arun"}
	users.On("Get", mock.Anything, int64(1)).Return(before, nil)
	users.On("GetByUsername", mock.Anything, "arun").Return(other, nil)

	svc := services.NewUserService(users, nil, nil)
	_, err := svc.UpdateProfile(context.Background(), 1, "arun", "CSE")

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
