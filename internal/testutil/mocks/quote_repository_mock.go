package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bardspeak/internal/models"
)

// MockQuoteRepository is a mock implementation of repository.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Get(ctx context.Context, id int64) (*models.DailyQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyQuote), args.Error(1)
}

func (m *MockQuoteRepository) Insert(ctx context.Context, q models.DailyQuote) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) UserQuoteExists(ctx context.Context, userID int64, postDate string) (bool, error) {
	args := m.Called(ctx, userID, postDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) CountDepartmentQuotes(ctx context.Context, department, postDate string) (int, error) {
	args := m.Called(ctx, department, postDate)
	return args.Int(0), args.Error(1)
}

func (m *MockQuoteRepository) ListForDate(ctx context.Context, postDate string) ([]models.QuoteWithAuthor, error) {
	args := m.Called(ctx, postDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuoteWithAuthor), args.Error(1)
}

func (m *MockQuoteRepository) FeaturedForDate(ctx context.Context, postDate string) (*models.QuoteWithAuthor, error) {
	args := m.Called(ctx, postDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteWithAuthor), args.Error(1)
}
