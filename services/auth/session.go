package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"fitpass/models"
	"fitpass/utils"
)

// SessionStore persists user sessions keyed by bearer token. It is the single
// source of truth for authentication state: only the auth flow writes to it,
// and readers must never cache a session across a login/logout boundary.
type SessionStore interface {
	Save(ctx context.Context, session models.UserSession) error
	// Get returns (nil, nil) when no session exists for the token. Corrupt
	// stored data is discarded and treated as an absent session.
	Get(ctx context.Context, token string) (*models.UserSession, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionStore builds the Redis-backed session store. Sessions carry
// no expiry; they live until explicit logout.
func NewRedisSessionStore(client *redis.Client, logger *zap.Logger) SessionStore {
	return &redisSessionStore{client: client, logger: logger}
}

func sessionKey(token string) string {
	return utils.SessionKeyPrefix + utils.HashToken(token)
}

func (s *redisSessionStore) Save(ctx context.Context, session models.UserSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.Token), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (*models.UserSession, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session models.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		// Corrupt payload: discard it rather than failing every request.
		s.logger.Warn("discarding corrupt session payload", zap.Error(err))
		_ = s.client.Del(ctx, sessionKey(token)).Err()
		return nil, nil
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
