// GORM models + DTOs used in handlers.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that owns tasks and conversations.
// The ID is a UUID string so it can be carried as the JWT subject as-is.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         *string   `gorm:"size:255" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SignupRequest is the payload for POST /api/auth/signup.
// bcrypt only reads 72 bytes; the service enforces that limit in bytes, binding only in runes.
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToResponse strips credentials from the user.
func (u *User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}
