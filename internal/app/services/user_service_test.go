package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/auth"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

func newUserService(userRepo *stubUserRepo, requestRepo *stubRequestRepo, sessions session.Store) *UserService {
	if requestRepo == nil {
		requestRepo = &stubRequestRepo{}
	}
	if sessions == nil {
		sessions = &stubSessionStore{}
	}
	return NewUserService(userRepo, requestRepo, sessions, zerolog.Nop())
}

func adminRoleRepo() *stubUserRepo {
	return &stubUserRepo{
		getRoleFn: func(ctx context.Context, id int64) (models.Role, error) {
			return models.RoleAdmin, nil
		},
	}
}

func TestUserService_UpdateUsername(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		renamed := false
		userRepo := &stubUserRepo{
			getPasswordHashFn: func(ctx context.Context, id int64) (string, error) {
				return hash, nil
			},
			updateUsernameFn: func(ctx context.Context, id int64, username string) error {
				renamed = true
				return nil
			},
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.UpdateUsername(ctx, 42, "token-abc", dto.UpdateUsernameRequest{
			NewUsername:     "maria2",
			CurrentPassword: "wrong",
		})
		assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
		assert.False(t, renamed)
	})

	t.Run("username taken by another account", func(t *testing.T) {
		userRepo := &stubUserRepo{
			getPasswordHashFn: func(ctx context.Context, id int64) (string, error) {
				return hash, nil
			},
			usernameTakenFn: func(ctx context.Context, username string, id int64) (bool, error) {
				assert.Equal(t, "maria2", username)
				assert.Equal(t, int64(42), id)
				return true, nil
			},
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.UpdateUsername(ctx, 42, "token-abc", dto.UpdateUsernameRequest{
			NewUsername:     "maria2",
			CurrentPassword: "correct-horse",
		})
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	})

	t.Run("rename rewrites the live session", func(t *testing.T) {
		var storedName string
		userRepo := &stubUserRepo{
			getPasswordHashFn: func(ctx context.Context, id int64) (string, error) {
				return hash, nil
			},
			updateUsernameFn: func(ctx context.Context, id int64, username string) error {
				storedName = username
				return nil
			},
		}
		sessions := &stubSessionStore{}
		svc := newUserService(userRepo, nil, sessions)

		err := svc.UpdateUsername(ctx, 42, "token-abc", dto.UpdateUsernameRequest{
			NewUsername:     "maria2",
			CurrentPassword: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "maria2", storedName)
		assert.Equal(t, "maria2", sessions.renamedSessions["token-abc"])
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("old-password")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		userRepo := &stubUserRepo{
			getPasswordHashFn: func(ctx context.Context, id int64) (string, error) {
				return hash, nil
			},
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.ChangePassword(ctx, 42, dto.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "new-password",
		})
		assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
	})

	t.Run("new password is stored hashed", func(t *testing.T) {
		var storedHash string
		userRepo := &stubUserRepo{
			getPasswordHashFn: func(ctx context.Context, id int64) (string, error) {
				return hash, nil
			},
			updatePasswordFn: func(ctx context.Context, id int64, passwordHash string) error {
				storedHash = passwordHash
				return nil
			},
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.ChangePassword(ctx, 42, dto.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password",
		})
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword(storedHash, "new-password"))
	})
}

func TestUserService_GetAllUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("regular users are denied", func(t *testing.T) {
		svc := newUserService(&stubUserRepo{}, nil, nil)

		_, err := svc.GetAllUsers(ctx, 42)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admins get the roster", func(t *testing.T) {
		userRepo := adminRoleRepo()
		userRepo.getAllFn = func(ctx context.Context) ([]models.User, error) {
			return []models.User{
				{ID: 1, Username: "admin", Role: models.RoleAdmin, Status: models.StatusActive},
				{ID: 2, Username: "maria", Role: models.RoleUser, Status: models.StatusPending},
			}, nil
		}
		svc := newUserService(userRepo, nil, nil)

		users, err := svc.GetAllUsers(ctx, 1)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "maria", users[1].Username)
		assert.Equal(t, models.StatusPending, users[1].Status)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("regular users are denied", func(t *testing.T) {
		svc := newUserService(&stubUserRepo{}, nil, nil)

		err := svc.UpdateUser(ctx, 42, dto.UpdateUserRequest{
			UserID: 7, Status: models.StatusActive, Role: models.RoleUser,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown status value", func(t *testing.T) {
		svc := newUserService(adminRoleRepo(), nil, nil)

		err := svc.UpdateUser(ctx, 1, dto.UpdateUserRequest{
			UserID: 7, Status: "FROZEN", Role: models.RoleUser,
		})
		require.ErrorIs(t, err, apperrors.ErrBadRequest)

		var customErr *apperrors.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Invalid status value", customErr.Message)
	})

	t.Run("unknown role value", func(t *testing.T) {
		svc := newUserService(adminRoleRepo(), nil, nil)

		err := svc.UpdateUser(ctx, 1, dto.UpdateUserRequest{
			UserID: 7, Status: models.StatusActive, Role: "superuser",
		})
		require.ErrorIs(t, err, apperrors.ErrBadRequest)

		var customErr *apperrors.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Invalid role value", customErr.Message)
	})

	t.Run("missing target account", func(t *testing.T) {
		userRepo := adminRoleRepo()
		userRepo.existsFn = func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.UpdateUser(ctx, 1, dto.UpdateUserRequest{
			UserID: 7, Status: models.StatusActive, Role: models.RoleUser,
		})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("valid moderation update is applied", func(t *testing.T) {
		var gotStatus models.UserStatus
		var gotRole models.Role
		userRepo := adminRoleRepo()
		userRepo.updateStatusRoleFn = func(ctx context.Context, id int64, status models.UserStatus, role models.Role) error {
			assert.Equal(t, int64(7), id)
			gotStatus, gotRole = status, role
			return nil
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.UpdateUser(ctx, 1, dto.UpdateUserRequest{
			UserID: 7, Status: models.StatusSuspended, Role: models.RoleUser,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusSuspended, gotStatus)
		assert.Equal(t, models.RoleUser, gotRole)
	})
}

func TestUserService_ReportUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing target account", func(t *testing.T) {
		userRepo := &stubUserRepo{
			existsFn: func(ctx context.Context, id int64) (bool, error) {
				return false, nil
			},
		}
		svc := newUserService(userRepo, nil, nil)

		err := svc.ReportUser(ctx, 42, dto.ReportUserRequest{TargetID: 7, Reason: "spam"})
		require.ErrorIs(t, err, apperrors.ErrResourceNotFound)

		var customErr *apperrors.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Target user not found", customErr.Message)
	})

	t.Run("report files a profile ticket", func(t *testing.T) {
		var gotType models.RequestType
		var gotTarget *int64
		var gotDescription string
		requestRepo := &stubRequestRepo{
			createFn: func(ctx context.Context, userID int64, reqType models.RequestType, targetID *int64, description string) error {
				assert.Equal(t, int64(42), userID)
				gotType, gotTarget, gotDescription = reqType, targetID, description
				return nil
			},
		}
		svc := newUserService(&stubUserRepo{}, requestRepo, nil)

		err := svc.ReportUser(ctx, 42, dto.ReportUserRequest{TargetID: 7, Reason: "spam"})
		require.NoError(t, err)
		assert.Equal(t, models.RequestTypeProfile, gotType)
		require.NotNil(t, gotTarget)
		assert.Equal(t, int64(7), *gotTarget)
		assert.Equal(t, "spam", gotDescription)
	})
}
