package authentication

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionPrefix = "session:"

// SessionStore keeps one Redis key per issued token. Logging out deletes the
// key of the token used, leaving the user's other sessions alone.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create records a session for userID. A zero ttl keeps it until revoked.
func (s *SessionStore) Create(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, sessionPrefix+sessionID, uint64(userID), ttl).Err()
}

// UserID returns the owner of a live session.
func (s *SessionStore) UserID(ctx context.Context, sessionID string) (uint, error) {
	id, err := s.client.Get(ctx, sessionPrefix+sessionID).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

// Ping checks that Redis answers.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
