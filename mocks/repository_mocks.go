package mocks

import (
	"context"
	"time"

	"TodoAPI/models"

	"github.com/stretchr/testify/mock"
)

// UserRepositoryMock is a testify/mock for repositories.UserRepository.
type UserRepositoryMock struct{ mock.Mock }

func (m *UserRepositoryMock) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepositoryMock) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepositoryMock) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepositoryMock is a testify/mock for repositories.TaskRepository.
type TaskRepositoryMock struct{ mock.Mock }

func (m *TaskRepositoryMock) Create(ctx context.Context, t *models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TaskRepositoryMock) FindByID(ctx context.Context, userID string, id uint) (*models.Task, error) {
	args := m.Called(ctx, userID, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepositoryMock) List(ctx context.Context, userID string, q models.TaskListQuery) ([]models.Task, error) {
	args := m.Called(ctx, userID, q)
	if v := args.Get(0); v != nil {
		return v.([]models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepositoryMock) ListOldestFirst(ctx context.Context, userID string) ([]models.Task, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepositoryMock) Update(ctx context.Context, t *models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TaskRepositoryMock) Delete(ctx context.Context, userID string, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

// ConversationRepositoryMock is a testify/mock for repositories.ConversationRepository.
type ConversationRepositoryMock struct{ mock.Mock }

func (m *ConversationRepositoryMock) Create(ctx context.Context, c *models.Conversation) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ConversationRepositoryMock) FindByID(ctx context.Context, userID, id string) (*models.Conversation, error) {
	args := m.Called(ctx, userID, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConversationRepositoryMock) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Conversation, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	var items []models.Conversation
	if v := args.Get(0); v != nil {
		items = v.([]models.Conversation)
	}
	var total int64
	if v := args.Get(1); v != nil {
		total = v.(int64)
	}
	return items, total, args.Error(2)
}

func (m *ConversationRepositoryMock) Touch(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *ConversationRepositoryMock) AddMessage(ctx context.Context, msg *models.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *ConversationRepositoryMock) ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.Message), args.Error(1)
	}
	return nil, args.Error(1)
}
