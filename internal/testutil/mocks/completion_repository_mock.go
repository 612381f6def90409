package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bardspeak/internal/models"
)

// MockCompletionRepository is a mock implementation of repository.CompletionRepository
type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) Record(ctx context.Context, c models.Completion, today, yesterday string) (*models.StreakState, error) {
	args := m.Called(ctx, c, today, yesterday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StreakState), args.Error(1)
}

func (m *MockCompletionRepository) Has(ctx context.Context, userID int64, moduleType string, contentID int64) (bool, error) {
	args := m.Called(ctx, userID, moduleType, contentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompletionRepository) Count(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompletionRepository) ModuleKinds(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCompletionRepository) CompletedContentIDs(ctx context.Context, userID int64, moduleType string) ([]int64, error) {
	args := m.Called(ctx, userID, moduleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCompletionRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.Completion, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Completion), args.Error(1)
}

func (m *MockCompletionRepository) List(ctx context.Context, filter models.CompletionFilter) ([]models.Completion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Completion), args.Error(1)
}

func (m *MockCompletionRepository) CountFiltered(ctx context.Context, filter models.CompletionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
