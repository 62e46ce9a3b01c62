package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of Service using testify/mock.
type MockService struct {
	mock.Mock
}

func (m *MockService) Chat(ctx context.Context, prompt string) (ChatResult, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(ChatResult), args.Error(1)
}

func (m *MockService) Summarize(ctx context.Context, text, prompt string) (string, error) {
	args := m.Called(ctx, text, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockService) TestConnection(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
