package dto

import (
	"time"

	"github.com/dmarkou/arboretum/internal/app/models"
)

// UpdateUsernameRequest renames the authenticated account.
// The current password is re-verified before the rename.
type UpdateUsernameRequest struct {
	NewUsername     string `json:"new_username" binding:"required"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// ChangePasswordRequest rotates the account password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// AdminUserView is the roster row admins see
type AdminUserView struct {
	ID        int64             `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Status    models.UserStatus `json:"status"`
	Role      models.Role       `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
}

// UserListResponse wraps the admin roster
type UserListResponse struct {
	Envelope
	Users []AdminUserView `json:"users,omitempty"`
}

// GetUserRequest looks up a public profile by username
type GetUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// PublicProfileView is the public profile with contribution counters
type PublicProfileView struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
	UploadsCount   int64     `json:"uploads_count"`
	FavoritesCount int64     `json:"favorites_count"`
}

// PublicProfileResponse wraps a public profile
type PublicProfileResponse struct {
	Envelope
	User *PublicProfileView `json:"user,omitempty"`
}

// UpdateUserRequest is the admin moderation update (status and role)
type UpdateUserRequest struct {
	UserID int64             `json:"user_id" binding:"required"`
	Status models.UserStatus `json:"status" binding:"required"`
	Role   models.Role       `json:"role" binding:"required"`
}

// ReportUserRequest files a complaint against another account
type ReportUserRequest struct {
	TargetID int64  `json:"target_id" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}
