package dto

import (
	"time"

	"github.com/dmarkou/arboretum/internal/app/models"
)

// SignInRequest represents login credentials
type SignInRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SignUpRequest represents a registration request
type SignUpRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SessionUser is the sanitized user view returned on sign-in.
// The password hash and email never appear here.
type SessionUser struct {
	ID       int64             `json:"id"`
	Username string            `json:"username"`
	Role     models.Role       `json:"role"`
	Status   models.UserStatus `json:"status"`
}

// SignInResponse carries the session user on success
type SignInResponse struct {
	Envelope
	User *SessionUser `json:"user,omitempty"`
}

// ProfileView is the account profile view. Status is only populated by the
// account-management surface; the auth surface omits it.
type ProfileView struct {
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ProfileResponse wraps a profile view
type ProfileResponse struct {
	Envelope
	User *ProfileView `json:"user,omitempty"`
}
