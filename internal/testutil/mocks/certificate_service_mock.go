package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bardspeak/internal/models"
)

// MockCertificateService is a mock implementation of services.CertificateService
type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) Status(ctx context.Context, userID int64) (*models.CertificateStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CertificateStatus), args.Error(1)
}

func (m *MockCertificateService) Certificate(ctx context.Context, userID int64) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCertificateService) WarmCache(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCertificateService) Invalidate(ctx context.Context, userID int64) {
	m.Called(ctx, userID)
}
