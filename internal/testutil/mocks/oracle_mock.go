package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockOracle is a mock implementation of oracle.Oracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Rate(ctx context.Context, text string) (int, error) {
	args := m.Called(ctx, text)
	return args.Int(0), args.Error(1)
}
