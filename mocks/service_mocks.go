package mocks

import (
	"context"

	"TodoAPI/models"

	"github.com/stretchr/testify/mock"
)

// AuthServiceMock mocks services.AuthService for handler tests.
type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Signup(ctx context.Context, req models.SignupRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthServiceMock) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskServiceMock mocks services.TaskService.
type TaskServiceMock struct{ mock.Mock }

func (m *TaskServiceMock) Create(ctx context.Context, userID string, req models.TaskCreateRequest) (*models.Task, error) {
	args := m.Called(ctx, userID, req)
	if v := args.Get(0); v != nil {
		return v.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskServiceMock) List(ctx context.Context, userID string, q models.TaskListQuery) ([]models.Task, error) {
	args := m.Called(ctx, userID, q)
	if v := args.Get(0); v != nil {
		return v.([]models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskServiceMock) Get(ctx context.Context, userID string, id uint) (*models.Task, error) {
	args := m.Called(ctx, userID, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskServiceMock) Update(ctx context.Context, userID string, id uint, req models.TaskUpdateRequest) (*models.Task, error) {
	args := m.Called(ctx, userID, id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskServiceMock) Delete(ctx context.Context, userID string, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *TaskServiceMock) ToggleComplete(ctx context.Context, userID string, id uint) (*models.Task, error) {
	args := m.Called(ctx, userID, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskServiceMock) Export(ctx context.Context, userID string) (*models.ExportResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.ExportResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// AssistantServiceMock mocks services.AssistantService.
type AssistantServiceMock struct{ mock.Mock }

func (m *AssistantServiceMock) Chat(ctx context.Context, userID string, req models.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, userID, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ChatResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AssistantServiceMock) ListConversations(ctx context.Context, userID string, page, limit int) (*models.PagedConversations, error) {
	args := m.Called(ctx, userID, page, limit)
	if v := args.Get(0); v != nil {
		return v.(*models.PagedConversations), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AssistantServiceMock) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, userID, conversationID, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.Message), args.Error(1)
	}
	return nil, args.Error(1)
}
