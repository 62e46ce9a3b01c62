package app

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of API using testify/mock.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Summarize(ctx context.Context, req SummarizeRequest) SummarizeResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(SummarizeResponse)
}

func (m *MockAPI) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(ChatResponse)
}

func (m *MockAPI) TestConnection(ctx context.Context, req ConnectionRequest) ConnectionResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(ConnectionResponse)
}

func (m *MockAPI) Analyze(ctx context.Context, req AnalyzeRequest) AnalyzeResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(AnalyzeResponse)
}

func (m *MockAPI) ExtractText(ctx context.Context, req AnalyzeRequest) ExtractResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(ExtractResponse)
}
