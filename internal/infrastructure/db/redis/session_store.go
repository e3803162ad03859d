package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// SessionStore keeps session records in Redis. Key format: session:<uuid>,
// value is the userId claim. Expiry is enforced by Redis TTL, so no
// application-side sweep is needed.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// A non-positive ttl falls back to the fixed session lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = domain.SessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Issue creates a new session bound to userID.
func (s *SessionStore) Issue(ctx context.Context, userID string) (*domain.Session, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, s.key(id), userID, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session issue: %w", err)
	}
	return &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Resolve returns the userId claim held by sessionID. Missing and expired
// sessions both answer ErrSessionNotFound.
func (s *SessionStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session resolve: %w", err)
	}
	return userID, nil
}

// Destroy invalidates the session. Deleting an already-absent key is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
