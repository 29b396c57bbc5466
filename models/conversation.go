package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Conversation is one assistant chat session.
type Conversation struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	UserID        string     `gorm:"size:36;not null;index:idx_conversations_user_id" json:"user_id"`
	Title         string     `gorm:"size:255" json:"title"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastMessageAt *time.Time `gorm:"index:idx_conversations_last_message_at" json:"last_message_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Conversation) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Message is a single chat turn.
type Message struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string    `gorm:"size:36;not null;index:idx_messages_conversation_id" json:"conversation_id"`
	Role           string    `gorm:"size:20;not null;index:idx_messages_role" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Timestamp      time.Time `gorm:"not null;index:idx_messages_timestamp" json:"timestamp"`

	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}

// ChatRequest is the payload for POST /ai/chat/conversation.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response       string `json:"response"`
	UserID         string `json:"user_id"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
	TaskCreated    bool   `json:"task_created"`
	TaskID         *uint  `json:"task_id"`
}

// PagedConversations is the envelope for GET /ai/conversations.
type PagedConversations struct {
	Items   []Conversation `json:"items"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
}
