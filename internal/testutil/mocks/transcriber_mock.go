package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTranscriber is a mock implementation of speech.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	args := m.Called(ctx, audio, mimeType)
	return args.String(0), args.Error(1)
}
