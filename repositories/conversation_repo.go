package repositories

import (
	"context"
	"time"

	"TodoAPI/models"

	"gorm.io/gorm"
)

// ConversationRepository stores assistant chats and their messages.
type ConversationRepository interface {
	Create(ctx context.Context, c *models.Conversation) error
	FindByID(ctx context.Context, userID, id string) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Conversation, int64, error)
	Touch(ctx context.Context, id string, at time.Time) error
	AddMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
}

type conversationRepo struct{ db *gorm.DB }

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *conversationRepo) FindByID(ctx context.Context, userID, id string) (*models.Conversation, error) {
	var c models.Conversation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns one page, most recently active first, plus the total count.
func (r *conversationRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Conversation, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.Conversation{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]models.Conversation, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Touch bumps updated_at and last_message_at.
func (r *conversationRepo) Touch(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]any{"updated_at": at, "last_message_at": at}).Error
}

func (r *conversationRepo) AddMessage(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListMessages returns the latest limit messages in chronological order.
func (r *conversationRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	items := make([]models.Message, 0)
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}
