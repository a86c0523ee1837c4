package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
)

const keyPrefix = "session:"

// Identity is the authenticated principal stored against a session token.
// The role is a snapshot taken at sign-in; admin-only paths re-read the
// role from the database before acting on it.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store manages opaque session tokens.
type Store interface {
	Create(ctx context.Context, identity Identity) (string, error)
	Get(ctx context.Context, token string) (*Identity, error)
	Delete(ctx context.Context, token string) error
	UpdateUsername(ctx context.Context, token string, username string) error
}

// RedisStore keeps sessions in Redis under "session:<token>" with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore with the given session lifetime.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create issues a fresh opaque token for the identity.
func (s *RedisStore) Create(ctx context.Context, identity Identity) (string, error) {
	token := uuid.New().String()

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to encode session payload: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get resolves a token to its identity. Returns apperrors.ErrSessionNotFound
// for unknown or expired tokens.
func (s *RedisStore) Get(ctx context.Context, token string) (*Identity, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode session payload: %w", err)
	}

	return &identity, nil
}

// Delete removes a session. Deleting a missing token is not an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// UpdateUsername rewrites the stored identity after a rename,
// keeping the remaining TTL intact.
func (s *RedisStore) UpdateUsername(ctx context.Context, token string, username string) error {
	identity, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	identity.Username = username

	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode session payload: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
