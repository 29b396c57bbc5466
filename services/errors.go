package services

import "errors"

// Domain errors. handlers.respondError maps them to status codes and client messages.
var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordTooLong      = errors.New("password exceeds 72 bytes")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidTitle         = errors.New("title is required")
	ErrTaskNotFound         = errors.New("task not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message is required")
	ErrExportUnavailable    = errors.New("task export is not configured")
)
