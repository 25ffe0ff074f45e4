// Package api contains the HTTP handlers, request/response models, and
// error mapping for the REST surface.
package api

import (
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common request/response structures

// LoginRequest defines the payload for the login endpoint. Authentication
// is by email only; there is no password credential.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SessionResponse defines the successful response for login and refresh.
type SessionResponse struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	ExpiresIn int64        `json:"expiresIn"`
}

// ClaimsPayload is the decoded token payload returned by verify.
type ClaimsPayload struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyResponse defines the successful response for token verification.
type VerifyResponse struct {
	Valid   bool          `json:"valid"`
	Payload ClaimsPayload `json:"payload"`
	User    *domain.User  `json:"user"`
}

// SuccessResponse is the generic acknowledgment body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreateUserRequest defines the payload for user registration.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserRequest defines the payload for a user update. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// UserExistsResponse defines the response for the email existence check.
type UserExistsResponse struct {
	Exists bool `json:"exists"`
}

// UserListResponse wraps a user listing.
type UserListResponse struct {
	Data  []*domain.User `json:"data"`
	Count int            `json:"count"`
}

// CreateTaskRequest defines the payload for task creation. Status is
// optional and defaults to todo.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	UserEmail   string `json:"userEmail"   validate:"required,email"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
}

// UpdateTaskRequest defines the payload for a task update. Nil fields are
// left unchanged; ownership cannot be changed.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=todo in_progress done"`
}

// TaskListResponse wraps a task listing with its filter echo.
type TaskListResponse struct {
	Data   []*domain.Task `json:"data"`
	Count  int            `json:"count"`
	Filter string         `json:"filter,omitempty"`
}
