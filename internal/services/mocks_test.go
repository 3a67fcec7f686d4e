package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/studyflow/back/internal/clients"
)

// MockCanvasClient is a mock for clients.CanvasClient
type MockCanvasClient struct {
	mock.Mock
}

func (m *MockCanvasClient) Get(ctx context.Context, baseURL, accessToken, endpoint string) (*clients.CanvasResponse, error) {
	args := m.Called(ctx, baseURL, accessToken, endpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.CanvasResponse), args.Error(1)
}

// MockLLMClient is a mock for clients.LLMClient
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, req clients.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// lastRequest returns the CompletionRequest of the most recent Complete call
func (m *MockLLMClient) lastRequest() clients.CompletionRequest {
	call := m.Calls[len(m.Calls)-1]
	return call.Arguments.Get(1).(clients.CompletionRequest)
}
