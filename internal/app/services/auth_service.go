package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/auth"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

// AuthService handles sign-in, registration and the session lifecycle
type AuthService struct {
	userRepo repositories.IUserRepository
	sessions session.Store
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessions session.Store,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// SignIn authenticates a user and establishes a session. The account status
// is gated before the password check, so a suspended account learns its
// status even with a wrong password. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SessionUser, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.Status != models.StatusActive {
		switch user.Status {
		case models.StatusPending:
			return nil, "", apperrors.ErrAccountPending
		case models.StatusSuspended:
			return nil, "", apperrors.ErrAccountSuspended
		default:
			return nil, "", apperrors.ErrAccountInactive
		}
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, session.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to create session")
		return nil, "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("User signed in")

	return &dto.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Status:   user.Status,
	}, token, nil
}

// SignUp registers a new account. Accounts start as PENDING regular users
// and stay locked out until an admin activates them.
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) error {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	exists, err := s.userRepo.IdentifierExists(ctx, email, username)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrIdentifierExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: hash,
		Role:     models.RoleUser,
		Status:   models.StatusPending,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("User registered")
	return nil
}

// Logout destroys the session. Destroying an already-gone session succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// GetProfile returns the account profile without the status field
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileView{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}
