package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/dberrors"
	"github.com/dmarkou/arboretum/internal/pkg/logger"
)

// PublicProfile is a public account view with contribution counters
type PublicProfile struct {
	ID             int64
	Username       string
	CreatedAt      time.Time
	UploadsCount   int64
	FavoritesCount int64
}

// IUserRepository defines database operations for user accounts
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetRole(ctx context.Context, id int64) (models.Role, error)
	GetStatus(ctx context.Context, id int64) (models.UserStatus, error)
	GetPasswordHash(ctx context.Context, id int64) (string, error)
	IdentifierExists(ctx context.Context, email, username string) (bool, error)
	UsernameTakenByOther(ctx context.Context, username string, id int64) (bool, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateStatusRole(ctx context.Context, id int64, status models.UserStatus, role models.Role) error
	GetAll(ctx context.Context) ([]models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error)
}

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new account. Role and status are written explicitly
// rather than left to column defaults.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, password, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.Password,
		user.Role,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrIdentifierExists
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves an account by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, status, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves an account by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, role, status, created_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetRole reads the current role straight from the store
func (r *UserRepository) GetRole(ctx context.Context, id int64) (models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("error retrieving user role: %w", err)
	}
	return role, nil
}

// GetStatus reads the current account status straight from the store
func (r *UserRepository) GetStatus(ctx context.Context, id int64) (models.UserStatus, error) {
	var status models.UserStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM users WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("error retrieving user status: %w", err)
	}
	return status, nil
}

// GetPasswordHash reads the stored password hash
func (r *UserRepository) GetPasswordHash(ctx context.Context, id int64) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `SELECT password FROM users WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("error retrieving password hash: %w", err)
	}
	return hash, nil
}

// IdentifierExists reports whether any account holds the email or username
func (r *UserRepository) IdentifierExists(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`
	if err := r.db.QueryRow(ctx, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking identifiers: %w", err)
	}
	return exists, nil
}

// UsernameTakenByOther reports whether a different account holds the username
func (r *UserRepository) UsernameTakenByOther(ctx context.Context, username string, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id != $2)`
	if err := r.db.QueryRow(ctx, query, username, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// UpdateUsername renames an account
func (r *UserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET username = $1 WHERE id = $2`, username, id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUsernameTaken
		}
		return fmt.Errorf("error updating username: %w", err)
	}
	return nil
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// UpdateStatusRole applies an admin moderation update
func (r *UserRepository) UpdateStatusRole(ctx context.Context, id int64, status models.UserStatus, role models.Role) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET status = $1, role = $2 WHERE id = $3`, status, role, id)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// GetAll retrieves every account, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, email, status, role, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.Status,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Exists reports whether an account with the id exists
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// GetPublicProfile retrieves the public profile of an ACTIVE account along
// with its upload and favorite counters. Uploads are matched through the
// denormalized username on trees.
func (r *UserRepository) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	query := `
		SELECT u.id, u.username, u.created_at,
			(SELECT COUNT(*) FROM trees WHERE inserted_by = u.username) AS uploads_count,
			(SELECT COUNT(*) FROM favorites WHERE user_id = u.id) AS favorites_count
		FROM users u
		WHERE u.username = $1 AND u.status = 'ACTIVE'
	`

	var profile PublicProfile
	err := r.db.QueryRow(ctx, query, username).Scan(
		&profile.ID,
		&profile.Username,
		&profile.CreatedAt,
		&profile.UploadsCount,
		&profile.FavoritesCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving public profile: %w", err)
	}

	return &profile, nil
}
