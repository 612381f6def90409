package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bardspeak/internal/models"
)

// MockContentRepository is a mock implementation of repository.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) ListBiographies(ctx context.Context) ([]models.Biography, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Biography), args.Error(1)
}

func (m *MockContentRepository) GetBiography(ctx context.Context, id int64) (*models.Biography, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Biography), args.Error(1)
}

func (m *MockContentRepository) InsertBiography(ctx context.Context, b models.Biography) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContentRepository) UpdateBiography(ctx context.Context, b models.Biography) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockContentRepository) DeleteBiography(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentRepository) ListListeningClips(ctx context.Context) ([]models.ListeningClip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ListeningClip), args.Error(1)
}

func (m *MockContentRepository) GetListeningClip(ctx context.Context, id int64) (*models.ListeningClip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListeningClip), args.Error(1)
}

func (m *MockContentRepository) InsertListeningClip(ctx context.Context, c models.ListeningClip) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContentRepository) UpdateListeningClip(ctx context.Context, c models.ListeningClip) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContentRepository) DeleteListeningClip(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentRepository) ListObservationItems(ctx context.Context) ([]models.ObservationItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ObservationItem), args.Error(1)
}

func (m *MockContentRepository) GetObservationItem(ctx context.Context, id int64) (*models.ObservationItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ObservationItem), args.Error(1)
}

func (m *MockContentRepository) InsertObservationItem(ctx context.Context, o models.ObservationItem) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContentRepository) UpdateObservationItem(ctx context.Context, o models.ObservationItem) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockContentRepository) DeleteObservationItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentRepository) ListWritingTopics(ctx context.Context) ([]models.WritingTopic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WritingTopic), args.Error(1)
}

func (m *MockContentRepository) InsertWritingTopic(ctx context.Context, t models.WritingTopic) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}
