package testutil

import (
	"context"

	"github.com/dimitrije/prompthub/internal/models"
	"github.com/dimitrije/prompthub/pkg/dto"
	"github.com/stretchr/testify/mock"
)

// MockPromptAPI mocks the prompt client
type MockPromptAPI struct {
	mock.Mock
}

func (m *MockPromptAPI) List(ctx context.Context) ([]models.Prompt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Prompt), args.Error(1)
}

func (m *MockPromptAPI) GetByID(ctx context.Context, id int64) (*models.Prompt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptAPI) Create(ctx context.Context, req dto.CreatePromptRequest) (*models.Prompt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptAPI) Update(ctx context.Context, id int64, req dto.UpdatePromptRequest) (*models.Prompt, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptAPI) Remove(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageResponse), args.Error(1)
}

func (m *MockPromptAPI) Health(ctx context.Context) (*dto.HealthResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HealthResponse), args.Error(1)
}
