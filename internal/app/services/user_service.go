package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/auth"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

// UserService handles profile management and admin moderation
type UserService struct {
	userRepo    repositories.IUserRepository
	requestRepo repositories.IRequestRepository
	sessions    session.Store
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	requestRepo repositories.IRequestRepository,
	sessions session.Store,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// requireAdmin re-reads the caller's role from the store so a demoted admin
// loses access immediately, not at next sign-in.
func requireAdmin(ctx context.Context, userRepo repositories.IUserRepository, userID int64) error {
	role, err := userRepo.GetRole(ctx, userID)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// GetProfile returns the caller's own profile, status included
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileView{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateUsername renames the account after re-verifying the password, then
// rewrites the live session so the new name takes effect immediately.
func (s *UserService) UpdateUsername(ctx context.Context, userID int64, token string, req dto.UpdateUsernameRequest) error {
	hash, err := s.userRepo.GetPasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(hash, req.CurrentPassword) {
		return apperrors.ErrWrongPassword
	}

	taken, err := s.userRepo.UsernameTakenByOther(ctx, req.NewUsername, userID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrUsernameTaken
	}

	if err := s.userRepo.UpdateUsername(ctx, userID, req.NewUsername); err != nil {
		return err
	}

	if err := s.sessions.UpdateUsername(ctx, token, req.NewUsername); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to refresh session username")
		return fmt.Errorf("error refreshing session: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Str("newUsername", req.NewUsername).Msg("Username updated")
	return nil
}

// ChangePassword rotates the password after re-verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	hash, err := s.userRepo.GetPasswordHash(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(hash, req.CurrentPassword) {
		return apperrors.ErrWrongPassword
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// GetAllUsers returns the full account roster. Admin only.
func (s *UserService) GetAllUsers(ctx context.Context, callerID int64) ([]dto.AdminUserView, error) {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.AdminUserView, 0, len(users))
	for _, u := range users {
		views = append(views, dto.AdminUserView{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Status:    u.Status,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	return views, nil
}

// GetUser returns the public profile of an active account by username
func (s *UserService) GetUser(ctx context.Context, username string) (*dto.PublicProfileView, error) {
	profile, err := s.userRepo.GetPublicProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	return &dto.PublicProfileView{
		ID:             profile.ID,
		Username:       profile.Username,
		CreatedAt:      profile.CreatedAt,
		UploadsCount:   profile.UploadsCount,
		FavoritesCount: profile.FavoritesCount,
	}, nil
}

// UpdateUser applies an admin moderation update to another account
func (s *UserService) UpdateUser(ctx context.Context, callerID int64, req dto.UpdateUserRequest) error {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}

	switch req.Status {
	case models.StatusPending, models.StatusActive, models.StatusSuspended:
	default:
		return apperrors.NewBadRequestError("Invalid status value")
	}

	switch req.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		return apperrors.NewBadRequestError("Invalid role value")
	}

	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}

	if err := s.userRepo.UpdateStatusRole(ctx, req.UserID, req.Status, req.Role); err != nil {
		return err
	}

	s.logger.Info().
		Int64("adminID", callerID).
		Int64("userID", req.UserID).
		Str("status", string(req.Status)).
		Str("role", string(req.Role)).
		Msg("User updated by admin")
	return nil
}

// ReportUser files a PROFILE request against another account
func (s *UserService) ReportUser(ctx context.Context, userID int64, req dto.ReportUserRequest) error {
	exists, err := s.userRepo.Exists(ctx, req.TargetID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewResourceNotFoundError("Target user not found")
	}

	targetID := req.TargetID
	if err := s.requestRepo.Create(ctx, userID, models.RequestTypeProfile, &targetID, req.Reason); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("targetID", req.TargetID).Msg("User reported")
	return nil
}
