package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bardspeak/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CountForDate(ctx context.Context, userID, biographyID int64, attemptDate string) (int, error) {
	args := m.Called(ctx, userID, biographyID, attemptDate)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) Insert(ctx context.Context, a models.SpeakingAttempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
